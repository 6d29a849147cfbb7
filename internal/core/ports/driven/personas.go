package driven

// PersonaStore loads persona instructions by name.
// Implementations fall back to embedded defaults for unknown names.
type PersonaStore interface {
	// Load returns the instruction text for the given persona name.
	Load(name string) (string, error)

	// Reload discards any cached instructions, forcing fresh loads.
	Reload()

	// Dir returns the directory persona files are read from.
	Dir() string
}

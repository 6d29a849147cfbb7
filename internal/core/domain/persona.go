package domain

// Persona names select the answer style for a chat session.
// Unknown names fall back to DefaultPersona.
const (
	PersonaArchitect = "the-architect"
	PersonaExecutive = "the-executive"
	PersonaSkeptic   = "the-skeptic"

	DefaultPersona = PersonaArchitect
)

// PersonaDisplayName returns the human-readable label for a persona.
func PersonaDisplayName(name string) string {
	switch name {
	case PersonaExecutive:
		return "The Executive"
	case PersonaSkeptic:
		return "The Skeptic"
	default:
		return "The Architect"
	}
}

// KnownPersonas lists the built-in persona names.
func KnownPersonas() []string {
	return []string{PersonaArchitect, PersonaExecutive, PersonaSkeptic}
}

// IsKnownPersona reports whether name is a built-in persona.
func IsKnownPersona(name string) bool {
	switch name {
	case PersonaArchitect, PersonaExecutive, PersonaSkeptic:
		return true
	}
	return false
}

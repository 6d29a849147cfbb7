package driven

// ConfigStore provides persistent key-value configuration.
// Keys use dot notation, e.g. "ollama.model".
type ConfigStore interface {
	// Get retrieves a raw configuration value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string value, or "" if unset.
	GetString(key string) string

	// GetInt retrieves an integer value, or 0 if unset.
	GetInt(key string) int

	// GetBool retrieves a boolean value, or false if unset.
	GetBool(key string) bool

	// GetStringSlice retrieves a string slice value, or nil if unset.
	GetStringSlice(key string) []string

	// Set stores a value and persists immediately.
	Set(key string, value any) error

	// Save persists the current configuration.
	Save() error

	// Load reads configuration from the backing store.
	Load() error

	// Path returns the backing file path, if any.
	Path() string
}

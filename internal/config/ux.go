package config

// UIConfig holds terminal interface configuration.
type UIConfig struct {
	// Theme is "auto", "light" or "dark".
	Theme string `yaml:"theme"`

	// DarkMode forces the dark palette when set; nil defers to Theme.
	DarkMode *bool `yaml:"dark_mode,omitempty"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Theme: "auto",
	}
}

// ResolveDark reports whether the dark palette should be used.
// detected is the terminal-background guess used for "auto".
func (c *UIConfig) ResolveDark(detected bool) bool {
	if c.DarkMode != nil {
		return *c.DarkMode
	}
	switch c.Theme {
	case "dark":
		return true
	case "light":
		return false
	default:
		return detected
	}
}

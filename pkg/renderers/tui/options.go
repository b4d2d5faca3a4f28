package tui

// Theme captures optional message prefixes the session applies when
// reporting outcomes.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the TUI session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithDoneLabel renames the menu entry that ends the session.
func WithDoneLabel(label string) Option {
	return func(s *Session) {
		if label != "" {
			s.doneLabel = label
		}
	}
}

package validator

// Option configures a validation run.
type Option func(*Validator)

// WithIncludeWarnings enables or disables warnings in the result.
// Default: true
func WithIncludeWarnings(enabled bool) Option {
	return func(v *Validator) {
		v.IncludeWarnings = enabled
	}
}

// WithStrictMode enables or disables checks beyond the document's
// requirements.
// Default: false
func WithStrictMode(enabled bool) Option {
	return func(v *Validator) {
		v.StrictMode = enabled
	}
}

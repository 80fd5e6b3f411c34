package audit

// Config holds configuration for the audit trail.
type Config struct {
	// Enabled switches audit persistence on. When false no database
	// connection is made.
	Enabled bool `mapstructure:"enabled" default:"false"`
}

package database

// Config holds configuration for the PostgreSQL connection.
type Config struct {
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"5432"`
	// User is the database user.
	User string `mapstructure:"user" default:"postgres"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name.
	Name string `mapstructure:"name" default:"integracion"`
	// SSLMode is the sslmode DSN parameter (disable, require, verify-full).
	SSLMode string `mapstructure:"sslmode" default:"disable"`
	// TimeoutSeconds bounds connection setup and the startup ping.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"5"`
	// MaxOpenConns caps the connection pool. Sync runs acquire and release a
	// connection per statement, so a small pool is enough.
	MaxOpenConns int `mapstructure:"max_open_conns" default:"10"`
}

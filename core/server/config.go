package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// Name is the service name reported on the root endpoint.
	Name string `mapstructure:"name" default:"integracion-web-site"`
	// Version is the service version reported on the root endpoint.
	Version string `mapstructure:"version" default:"1.0.0"`
}

package crm

// Config holds credentials and endpoints for the CRM API.
type Config struct {
	// ClientID is the OAuth client id.
	ClientID string `mapstructure:"client_id" default:""`
	// ClientSecret is the OAuth client secret.
	ClientSecret string `mapstructure:"client_secret" default:""`
	// RefreshToken is the long-lived refresh token used to mint access tokens.
	RefreshToken string `mapstructure:"refresh_token" default:""`
	// AccountsURL is the OAuth accounts host.
	AccountsURL string `mapstructure:"accounts_url" default:"https://accounts.zoho.com"`
	// BaseURL is the CRM API root.
	BaseURL string `mapstructure:"base_url" default:"https://www.zohoapis.com/crm/v7"`
	// PageSize is the COQL page size. The CRM caps it at 200.
	PageSize int `mapstructure:"page_size" default:"200"`
	// TimeoutSeconds bounds every HTTP request to the CRM.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

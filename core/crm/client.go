package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// authHeader is the CRM's proprietary bearer scheme.
const authHeader = "Zoho-oauthtoken"

// Page is one COQL result page.
type Page struct {
	Data        []Record
	MoreRecords bool
	Count       int
}

// Querier is the slice of Client that pagination needs. Tests fake it.
type Querier interface {
	Query(ctx context.Context, selectQuery string, offset, limit int) (*Page, error)
}

// Client talks to the CRM API. Access tokens are minted from the configured
// refresh token through an oauth2 token source and cached until expiry; token
// refresh and retry-on-expiry are entirely the oauth2 package's concern.
type Client struct {
	cfg    Config
	http   *http.Client
	tokens oauth2.TokenSource
	logger *zap.Logger
}

// NewClient builds a Client from credentials. The token source is bound to
// the background context because tokens outlive any single request.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	oc := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  cfg.AccountsURL + "/oauth/v2/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: time.Duration(timeout) * time.Second},
		tokens: oc.TokenSource(context.Background(), &oauth2.Token{RefreshToken: cfg.RefreshToken}),
		logger: logger,
	}
}

// Token returns a valid access token, refreshing if needed.
func (c *Client) Token() (string, error) {
	tok, err := c.tokens.Token()
	if err != nil {
		return "", fmt.Errorf("failed to obtain access token: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned an empty access token")
	}
	return tok.AccessToken, nil
}

// Query executes a COQL select with the given window appended as a LIMIT
// clause and returns the page. A 204 response is an empty page.
func (c *Client) Query(ctx context.Context, selectQuery string, offset, limit int) (*Page, error) {
	body, err := json.Marshal(map[string]string{
		"select_query": fmt.Sprintf("%s LIMIT %d, %d", selectQuery, offset, limit),
	})
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data []Record `json:"data"`
		Info struct {
			MoreRecords bool `json:"more_records"`
			Count       int  `json:"count"`
		} `json:"info"`
	}

	if err := c.do(ctx, http.MethodPost, c.cfg.BaseURL+"/coql", bytes.NewReader(body), &envelope); err != nil {
		return nil, fmt.Errorf("coql query failed: %w", err)
	}

	return &Page{Data: envelope.Data, MoreRecords: envelope.Info.MoreRecords, Count: envelope.Info.Count}, nil
}

// Search runs a criteria search against a module. Modules with no matches
// answer 204, which yields an empty slice rather than an error.
func (c *Client) Search(ctx context.Context, module, criteria string) ([]Record, error) {
	u := fmt.Sprintf("%s/%s/search?criteria=%s", c.cfg.BaseURL, module, url.QueryEscape(criteria))

	var envelope struct {
		Data []Record `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, u, nil, &envelope); err != nil {
		return nil, fmt.Errorf("search in %s failed: %w", module, err)
	}
	return envelope.Data, nil
}

// Get fetches a single record by id. A missing record (404) returns nil
// without error; callers decide whether absence matters.
func (c *Client) Get(ctx context.Context, module, id string) (Record, error) {
	u := fmt.Sprintf("%s/%s/%s", c.cfg.BaseURL, module, url.PathEscape(id))

	var envelope struct {
		Data []Record `json:"data"`
	}
	err := c.do(ctx, http.MethodGet, u, nil, &envelope)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) && se.code == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s/%s failed: %w", module, id, err)
	}
	if len(envelope.Data) == 0 {
		return nil, nil
	}
	return envelope.Data[0], nil
}

// do performs one authenticated request and decodes the JSON body into out.
// Numbers are decoded as json.Number so 19-digit CRM identifiers survive
// without float rounding.
func (c *Client) do(ctx context.Context, method, u string, body io.Reader, out any) error {
	token, err := c.Token()
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", authHeader+" "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &statusError{code: resp.StatusCode, detail: string(detail)}
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// statusError carries a non-2xx response.
type statusError struct {
	code   int
	detail string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.code, e.detail)
}

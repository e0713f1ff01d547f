// Package crm is the client for the upstream CRM API that acts as the source
// of truth for every mirrored entity.
//
// Authentication uses the OAuth refresh-token grant via golang.org/x/oauth2;
// the access token is attached to requests with the CRM's proprietary
// Zoho-oauthtoken scheme. Reads go through COQL selects (Query/Pager) for
// full-set enumeration and through module search/get endpoints for
// sub-resource lookups.
//
// Records are decoded with json.Number so that 19-digit identifiers keep
// their exact value; Record's accessors normalize them to canonical strings
// before they are ever compared.
package crm

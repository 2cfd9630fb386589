package jira

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// Credentials selects how requests are authenticated.
// PAT takes precedence over Email/APIToken; all empty means anonymous.
type Credentials struct {
	Email    string
	APIToken string
	PAT      string
}

// NewHTTPClient builds the http.Client used by Client with credentials applied on its transport
func NewHTTPClient(creds Credentials, timeout time.Duration) *http.Client {
	var client *http.Client
	switch {
	case creds.PAT != "":
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: creds.PAT})
		client = oauth2.NewClient(context.Background(), ts)
	case creds.Email != "" && creds.APIToken != "":
		client = &http.Client{
			Transport: &basicAuthTransport{
				base:     http.DefaultTransport,
				username: creds.Email,
				password: creds.APIToken,
			},
		}
	default:
		client = &http.Client{}
	}
	client.Timeout = timeout

	return client
}

type basicAuthTransport struct {
	base     http.RoundTripper
	username string
	password string
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.SetBasicAuth(t.username, t.password)
	return t.base.RoundTrip(r)
}

package github

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v66/github"
)

// NewClient returns a go-github client authenticated with token. An empty
// baseURL targets api.github.com; otherwise every request goes to baseURL
// (GitHub Enterprise Server or a test server).
func NewClient(httpClient *http.Client, baseURL, token string) (*gh.Client, error) {
	client := gh.NewClient(httpClient)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	if baseURL == "" {
		return client, nil
	}

	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL %q: %w", baseURL, err)
	}
	client.BaseURL = base
	return client, nil
}

package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v66/github"
)

// Proposals are always filed against this repository.
const (
	ProposalOwner = "open-ug"
	ProposalRepo  = "cloudnative-kampala"
)

// IssueRef identifies a created issue.
type IssueRef struct {
	Number int
	URL    string
}

// IssueFiler files reports as issues on the proposals repository using a
// GitHub App installation token.
type IssueFiler struct {
	auth       AuthProvider
	httpClient *http.Client
	baseURL    string
	owner      string
	repo       string
}

// NewIssueFiler creates a filer targeting ProposalOwner/ProposalRepo.
// baseURL and httpClient may be empty/nil for api.github.com.
func NewIssueFiler(auth AuthProvider, httpClient *http.Client, baseURL string) *IssueFiler {
	return &IssueFiler{
		auth:       auth,
		httpClient: httpClient,
		baseURL:    baseURL,
		owner:      ProposalOwner,
		repo:       ProposalRepo,
	}
}

// Repo returns the "owner/repo" the filer writes to.
func (f *IssueFiler) Repo() string { return f.owner + "/" + f.repo }

// CreateReport opens an issue and returns its number and public URL.
func (f *IssueFiler) CreateReport(ctx context.Context, title, body string, labels, assignees []string) (*IssueRef, error) {
	if f == nil || f.auth == nil {
		return nil, errors.New("issue filer has no auth provider")
	}

	token, err := f.auth.GetInstallationToken(ctx)
	if err != nil {
		return nil, err
	}

	client, err := NewClient(f.httpClient, f.baseURL, token.Token)
	if err != nil {
		return nil, err
	}

	req := &gh.IssueRequest{
		Title:     gh.String(title),
		Body:      gh.String(body),
		Labels:    nonNil(labels),
		Assignees: nonNil(assignees),
	}

	issue, _, err := client.Issues.Create(ctx, f.owner, f.repo, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create issue on %s: %w", f.Repo(), err)
	}

	return &IssueRef{
		Number: issue.GetNumber(),
		URL:    issue.GetHTMLURL(),
	}, nil
}

func nonNil(values []string) *[]string {
	if values == nil {
		values = []string{}
	}
	return &values
}

// Package gh wraps the GitHub REST API behind a small client interface and an
// envelope-returning service used by callers.
package gh

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	github "github.com/google/go-github/v55/github"
	"golang.org/x/oauth2"
)

const defaultUserAgent = "gitagent"

// NewRESTFactory returns a GitHub client factory backed by the go-github REST
// client. When base and upload URLs are provided, the factory targets a GitHub
// Enterprise instance.
func NewRESTFactory(baseURL, uploadURL string) Factory {
	return &restFactory{
		userAgent: defaultUserAgent,
		baseURL:   strings.TrimSpace(baseURL),
		uploadURL: strings.TrimSpace(uploadURL),
	}
}

type restFactory struct {
	userAgent string
	baseURL   string
	uploadURL string
}

type restClient struct {
	client *github.Client
}

func (f *restFactory) New(ctx context.Context, token string) (Client, error) {
	if token == "" {
		return nil, fmt.Errorf("github token is required")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)

	if f.baseURL == "" && f.uploadURL != "" {
		return nil, fmt.Errorf("github upload url cannot be set without base url")
	}

	var ghClient *github.Client
	if f.baseURL != "" {
		baseURLNormalized, err := normalizeGitHubURL(f.baseURL)
		if err != nil {
			return nil, fmt.Errorf("parse github base url: %w", err)
		}

		uploadURL := f.uploadURL
		if uploadURL == "" {
			return nil, fmt.Errorf("github upload url must be provided when base url is set")
		}

		uploadURLNormalized, err := normalizeGitHubURL(uploadURL)
		if err != nil {
			return nil, fmt.Errorf("parse github upload url: %w", err)
		}

		ghClient, err = github.NewClient(tc).WithEnterpriseURLs(baseURLNormalized, uploadURLNormalized)
		if err != nil {
			return nil, fmt.Errorf("construct enterprise github client: %w", err)
		}
	} else {
		ghClient = github.NewClient(tc)
	}

	if f.userAgent != "" {
		ghClient.UserAgent = f.userAgent
	}

	return &restClient{client: ghClient}, nil
}

func normalizeGitHubURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("url cannot be empty")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	if parsed.Scheme == "" {
		return "", fmt.Errorf("url must include scheme (e.g. https://)")
	}

	if parsed.Host == "" {
		return "", fmt.Errorf("url must include host")
	}

	if parsed.Path == "" {
		parsed.Path = "/"
	} else if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}

	parsed.RawQuery = ""
	parsed.Fragment = ""

	return parsed.String(), nil
}

func (c *restClient) GetRepository(ctx context.Context, owner, repo string) (RepoInfo, error) {
	repository, _, err := c.client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return RepoInfo{}, classifyGitHubError(err)
	}

	info := RepoInfo{
		Owner:         owner,
		Name:          repository.GetName(),
		FullName:      repository.GetFullName(),
		Description:   repository.GetDescription(),
		DefaultBranch: repository.GetDefaultBranch(),
		Private:       repository.GetPrivate(),
		Stars:         repository.GetStargazersCount(),
		Forks:         repository.GetForksCount(),
		OpenIssues:    repository.GetOpenIssuesCount(),
		URL:           repository.GetHTMLURL(),
	}

	if ownerUser := repository.GetOwner(); ownerUser != nil {
		if login := ownerUser.GetLogin(); login != "" {
			info.Owner = login
		}
	}

	return info, nil
}

func (c *restClient) CreatePullRequest(ctx context.Context, owner, repo string, input CreatePROptions) (PullRequest, error) {
	pr, _, err := c.client.PullRequests.Create(ctx, owner, repo, &github.NewPullRequest{
		Title: github.String(input.Title),
		Head:  github.String(input.Head),
		Base:  github.String(input.Base),
		Body:  github.String(input.Body),
	})
	if err != nil {
		return PullRequest{}, classifyGitHubError(err)
	}

	result := PullRequest{
		Number: pr.GetNumber(),
		URL:    pr.GetHTMLURL(),
		Title:  pr.GetTitle(),
		State:  pr.GetState(),
	}
	if head := pr.GetHead(); head != nil {
		result.Head = head.GetRef()
	}
	if base := pr.GetBase(); base != nil {
		result.Base = base.GetRef()
	}

	return result, nil
}

// classifyGitHubError tags responses the service itself produced as remote
// rejections. Everything else (DNS, connection refused, timeouts, malformed
// bodies) is left as-is and treated as a transport failure by callers.
func classifyGitHubError(err error) error {
	if err == nil {
		return nil
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) {
		return &remoteError{err: err}
	}

	var rateLimitErr *github.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &remoteError{err: err}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &remoteError{err: err}
	}

	return err
}

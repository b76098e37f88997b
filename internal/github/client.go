package gh

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// RepoInfo contains the repository metadata surfaced by lookups.
type RepoInfo struct {
	Owner         string
	Name          string
	FullName      string
	Description   string
	DefaultBranch string
	Private       bool
	Stars         int
	Forks         int
	OpenIssues    int
	URL           string
}

// PullRequest represents a pull request created through the API.
type PullRequest struct {
	Number int
	URL    string
	Title  string
	Head   string
	Base   string
	State  string
}

// CreatePROptions defines the metadata required to open a pull request.
type CreatePROptions struct {
	Title string
	Body  string
	Head  string
	Base  string
}

// Client exposes the GitHub operations this module needs. Implementations
// issue one request per call with no retries and no response caching.
type Client interface {
	GetRepository(ctx context.Context, owner, repo string) (RepoInfo, error)
	CreatePullRequest(ctx context.Context, owner, repo string, input CreatePROptions) (PullRequest, error)
}

// Factory builds concrete GitHub clients (e.g., REST-backed) from a token.
type Factory interface {
	New(ctx context.Context, token string) (Client, error)
}

// SplitRepoName parses an "owner/name" slug into its parts.
func SplitRepoName(repoName string) (owner, name string, err error) {
	parts := strings.Split(strings.TrimSpace(repoName), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("repository name must be in owner/name form, got %q", repoName)
	}
	return parts[0], parts[1], nil
}

// remoteError marks a failure reported by the service itself (a non-2xx
// status), as opposed to a transport-level failure reaching it.
type remoteError struct {
	err error
}

func (e *remoteError) Error() string {
	if e == nil || e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e *remoteError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// IsRemoteRejection reports whether the error is a rejection from the remote
// service rather than a network failure.
func IsRemoteRejection(err error) bool {
	if err == nil {
		return false
	}
	var target *remoteError
	return errors.As(err, &target)
}

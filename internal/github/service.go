package gh

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gitagent.dev/gitagent/internal/envelope"
)

// Service wraps a Client and normalizes every call into a result envelope,
// mirroring the contract of the git command executor. One request per call,
// no retries, failures surfaced with the service's own error text.
type Service struct {
	client Client
	log    *slog.Logger
}

// NewService returns an envelope-returning facade over the given client.
// A nil logger silences operation logging.
func NewService(client Client, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{client: client, log: log}
}

// GetRepoInfo looks up repository metadata for an "owner/name" slug.
func (s *Service) GetRepoInfo(ctx context.Context, repoName string) envelope.Envelope {
	owner, name, err := SplitRepoName(repoName)
	if err != nil {
		return envelope.Failure(envelope.KindRemote, err.Error())
	}

	s.log.Info("fetching repository info", "repo", repoName)
	info, err := s.client.GetRepository(ctx, owner, name)
	if err != nil {
		s.log.Error("repository info failed", "repo", repoName, "error", err)
		return failureEnvelope(err)
	}

	s.log.Info("fetched repository info", "repo", info.FullName)
	return envelope.Success(formatRepoInfo(info))
}

// CreatePR opens a pull request merging featureBranch into baseBranch. Calling
// it twice with identical arguments issues two independent requests; any
// deduplication is the remote service's own behavior.
func (s *Service) CreatePR(ctx context.Context, repoName, baseBranch, featureBranch, title, body string) envelope.Envelope {
	owner, name, err := SplitRepoName(repoName)
	if err != nil {
		return envelope.Failure(envelope.KindRemote, err.Error())
	}
	if strings.TrimSpace(baseBranch) == "" || strings.TrimSpace(featureBranch) == "" {
		return envelope.Failure(envelope.KindRemote, "base and feature branches are required")
	}

	s.log.Info("creating pull request", "repo", repoName, "base", baseBranch, "head", featureBranch)
	pr, err := s.client.CreatePullRequest(ctx, owner, name, CreatePROptions{
		Title: title,
		Body:  body,
		Head:  featureBranch,
		Base:  baseBranch,
	})
	if err != nil {
		s.log.Error("pull request creation failed", "repo", repoName, "error", err)
		return failureEnvelope(err)
	}

	s.log.Info("created pull request", "repo", repoName, "number", pr.Number, "url", pr.URL)
	return envelope.Success(fmt.Sprintf("created pull request #%d: %s", pr.Number, pr.URL))
}

func formatRepoInfo(info RepoInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (default branch %s", info.FullName, info.DefaultBranch)
	if info.Private {
		b.WriteString(", private")
	}
	fmt.Fprintf(&b, ", %d stars, %d forks, %d open issues)", info.Stars, info.Forks, info.OpenIssues)
	if info.Description != "" {
		fmt.Fprintf(&b, ": %s", info.Description)
	}
	if info.URL != "" {
		fmt.Fprintf(&b, " %s", info.URL)
	}
	return b.String()
}

// failureEnvelope maps a client error to the envelope taxonomy: rejections the
// service reported keep their payload as remote failures, everything else is a
// transport failure.
func failureEnvelope(err error) envelope.Envelope {
	if IsRemoteRejection(err) {
		return envelope.Failure(envelope.KindRemote, err.Error())
	}
	return envelope.Failure(envelope.KindTransport, err.Error())
}

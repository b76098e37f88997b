package gh

import "context"

// NewNoopFactory returns a Factory whose clients perform no real API calls.
// All operations succeed with placeholder data, useful for dry runs and tests.
func NewNoopFactory() Factory {
	return &noopFactory{}
}

type noopFactory struct{}

func (*noopFactory) New(ctx context.Context, token string) (Client, error) {
	return &noopClient{}, nil
}

type noopClient struct{}

func (*noopClient) GetRepository(ctx context.Context, owner, repo string) (RepoInfo, error) {
	return RepoInfo{Owner: owner, Name: repo, FullName: owner + "/" + repo, DefaultBranch: "main"}, nil
}

func (*noopClient) CreatePullRequest(ctx context.Context, owner, repo string, input CreatePROptions) (PullRequest, error) {
	return PullRequest{Head: input.Head, Base: input.Base, Title: input.Title}, nil
}

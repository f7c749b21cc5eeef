package storage

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v66/github"
	"github.com/pkg/errors"

	"tearoomcms/internal/config"
)

// NewGitHubClient creates an authenticated GitHub API client for the configured repository host.
// cfg.APIBase may carry the "/repos" segment, e.g. https://api.github.com/repos.
func NewGitHubClient(cfg *config.RepoConfig, client *http.Client) (*github.Client, error) {
	gh := github.NewClient(client).WithAuthToken(cfg.Token)

	base := strings.TrimSuffix(strings.TrimRight(cfg.APIBase, "/"), "/repos")
	if base != "" {
		u, err := url.Parse(base + "/")
		if err != nil {
			return nil, errors.Wrapf(err, "parse repository api base %q", cfg.APIBase)
		}
		gh.BaseURL = u
	}
	return gh, nil
}

// APIError turns a GitHub error response into "GitHub API error: <message>".
func APIError(err error) error {
	var ge *github.ErrorResponse
	if errors.As(err, &ge) {
		msg := ge.Message
		if msg == "" && ge.Response != nil {
			msg = ge.Response.Status
		}
		return errors.Errorf("GitHub API error: %s", msg)
	}
	return err
}

// GitHub stores files in a repository through the GitHub contents API.
type GitHub struct {
	client *github.Client
	owner  string
	repo   string
	branch string
}

var _ FileStore = (*GitHub)(nil)

// NewGitHub creates a GitHub file store. client carries timeouts and tracing.
func NewGitHub(cfg *config.RepoConfig, client *http.Client) (*GitHub, error) {
	gh, err := NewGitHubClient(cfg, client)
	if err != nil {
		return nil, err
	}
	return &GitHub{
		client: gh,
		owner:  cfg.Owner,
		repo:   cfg.Repo,
		branch: cfg.Branch,
	}, nil
}

func (g *GitHub) branchRef() *string {
	if g.branch == "" {
		return nil
	}
	return github.String(g.branch)
}

func (g *GitHub) Get(ctx context.Context, path string) (FileInfo, error) {
	var opts *github.RepositoryContentGetOptions
	if g.branch != "" {
		opts = &github.RepositoryContentGetOptions{Ref: g.branch}
	}

	file, _, resp, err := g.client.Repositories.GetContents(ctx, g.owner, g.repo, strings.TrimPrefix(path, "/"), opts)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return FileInfo{}, ErrNotFound
		}
		return FileInfo{}, APIError(err)
	}
	if file == nil {
		return FileInfo{}, errors.Errorf("%s is a directory", path)
	}

	return FileInfo{
		Path:        file.GetPath(),
		SHA:         file.GetSHA(),
		Size:        int64(file.GetSize()),
		DownloadURL: file.GetDownloadURL(),
	}, nil
}

func (g *GitHub) Put(ctx context.Context, path string, r io.Reader, opt PutOptions) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Wrap(err, "read upload")
	}

	path = strings.TrimPrefix(path, "/")
	opts := &github.RepositoryContentFileOptions{
		Message: github.String(updateMessage(path, opt)),
		Content: raw,
		Branch:  g.branchRef(),
	}

	// A failed lookup means the file does not exist yet.
	if existing, err := g.Get(ctx, path); err == nil {
		opts.SHA = github.String(existing.SHA)
	}

	res, _, err := g.client.Repositories.CreateFile(ctx, g.owner, g.repo, path, opts)
	if err != nil {
		return "", APIError(err)
	}
	if res == nil || res.Content == nil {
		return "", errors.New("GitHub API error: response carries no content")
	}
	return res.Content.GetDownloadURL(), nil
}

func (g *GitHub) Delete(ctx context.Context, path string) error {
	existing, err := g.Get(ctx, path)
	if err != nil {
		return errors.Wrapf(err, "look up %s", path)
	}

	path = strings.TrimPrefix(path, "/")
	_, _, err = g.client.Repositories.DeleteFile(ctx, g.owner, g.repo, path, &github.RepositoryContentFileOptions{
		Message: github.String(deleteMessage(path)),
		SHA:     github.String(existing.SHA),
		Branch:  g.branchRef(),
	})
	return APIError(err)
}

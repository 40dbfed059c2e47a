package github

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	gh "github.com/google/go-github/v68/github"

	"github.com/byte4ever/forgebridge/forge"
	"github.com/byte4ever/forgebridge/forge/session"
)

// Config holds the settings needed to create a GitHub
// metadata backend.
type Config struct {
	// RepositoryPath is the full "owner/name" path of
	// the repository the backend answers for.
	RepositoryPath string
	// APIRoot overrides the REST API base URL. Leave
	// empty for https://api.github.com.
	APIRoot string
	// Session supplies the credential read on each
	// call.
	Session *session.Store
}

// Backend answers metadata queries against a GitHub-style
// REST API.
//
// Pattern: Strategy -- implements forge.Backend.
type Backend struct {
	owner   string
	name    string
	apiRoot string
	session *session.Store
}

// NewBackend validates cfg and returns a Backend ready to
// answer metadata queries.
func NewBackend(cfg Config) (*Backend, error) {
	const errCtx = "creating github backend"

	if cfg.RepositoryPath == "" {
		return nil, fmt.Errorf(
			"%s: repository path must be set", errCtx,
		)
	}

	owner, name, ok := strings.Cut(
		cfg.RepositoryPath, "/",
	)
	if !ok || owner == "" || name == "" {
		return nil, fmt.Errorf(
			"%s: repository path %q must be owner/name",
			errCtx, cfg.RepositoryPath,
		)
	}

	if cfg.Session == nil {
		return nil, fmt.Errorf(
			"%s: session must be set", errCtx,
		)
	}

	return &Backend{
		owner:   owner,
		name:    name,
		apiRoot: cfg.APIRoot,
		session: cfg.Session,
	}, nil
}

// Kind reports which provider this backend talks to.
func (b *Backend) Kind() forge.Kind {
	return forge.KindGitHub
}

// client builds a GitHub client around the current session
// credential. Reading the credential per call means a
// credential swap takes effect on the next request.
func (b *Backend) client() (*gh.Client, error) {
	const errCtx = "creating github client"

	cred := b.session.Credential()
	if cred == "" {
		return nil, fmt.Errorf(
			"%s: %w",
			errCtx, forge.ErrNotAuthenticated,
		)
	}

	client := gh.NewClient(nil).WithAuthToken(cred)

	if b.apiRoot != "" {
		base, err := url.Parse(b.apiRoot)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: parse api root: %w", errCtx, err,
			)
		}

		// The client requires a trailing slash on the
		// base URL.
		if !strings.HasSuffix(base.Path, "/") {
			base.Path += "/"
		}

		client.BaseURL = base
	}

	return client, nil
}

// CurrentUser fetches the user owning the session
// credential.
func (b *Backend) CurrentUser(
	ctx context.Context,
) (forge.Identity, error) {
	const errCtx = "fetching github current user"

	client, err := b.client()
	if err != nil {
		return forge.Identity{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	user, _, err := client.Users.Get(ctx, "")
	if err != nil {
		return forge.Identity{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	return identityFromUser(user), nil
}

// DefaultBranch fetches the repository metadata and
// extracts the default branch name. A missing field
// normalizes to the empty string, not an error.
func (b *Backend) DefaultBranch(
	ctx context.Context,
) (string, error) {
	const errCtx = "fetching github default branch"

	client, err := b.client()
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	repo, _, err := client.Repositories.Get(
		ctx, b.owner, b.name,
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return branchFromRepository(repo), nil
}

// CanWrite reports whether the credential's owner may push
// to the repository.
func (b *Backend) CanWrite(
	ctx context.Context,
) (bool, error) {
	const errCtx = "checking github write permission"

	client, err := b.client()
	if err != nil {
		return false, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	repo, _, err := client.Repositories.Get(
		ctx, b.owner, b.name,
	)
	if err != nil {
		return false, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	return canWriteFromRepository(repo), nil
}

// identityFromUser maps a GitHub user response onto the
// canonical identity record. Only the numeric id is
// available in this contract.
func identityFromUser(user *gh.User) forge.Identity {
	return forge.Identity{
		ID: strconv.FormatInt(user.GetID(), 10),
	}
}

// branchFromRepository extracts the default_branch field
// from the repository metadata.
func branchFromRepository(repo *gh.Repository) string {
	return repo.GetDefaultBranch()
}

// canWriteFromRepository derives write access from the
// permissions.push field. A missing permissions block
// normalizes to false.
func canWriteFromRepository(repo *gh.Repository) bool {
	return repo.GetPermissions()["push"]
}

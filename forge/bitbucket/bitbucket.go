package bitbucket

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/byte4ever/forgebridge/forge"
	"github.com/byte4ever/forgebridge/forge/endpoint"
	"github.com/byte4ever/forgebridge/forge/session"
)

// defaultAPIRoot is the public Bitbucket REST API base
// URL.
const defaultAPIRoot = "https://api.bitbucket.org"

// Config holds the settings needed to create a Bitbucket
// metadata backend.
type Config struct {
	// RepositoryPath is the full "workspace/name" path
	// of the repository the backend answers for.
	RepositoryPath string
	// APIRoot overrides the REST API base URL. Leave
	// empty for https://api.bitbucket.org.
	APIRoot string
	// Session supplies the credential read on each
	// call.
	Session *session.Store
}

// Backend answers metadata queries against a
// Bitbucket-style REST API.
//
// Pattern: Strategy -- implements forge.Backend.
type Backend struct {
	repoPath string
	apiRoot  string
	session  *session.Store
}

type mainBranch struct {
	Name string `json:"name,omitempty"`
}

type repoMetadata struct {
	MainBranch mainBranch `json:"mainbranch"`
}

type avatarLink struct {
	Href string `json:"href,omitempty"`
}

type userLinks struct {
	Avatar avatarLink `json:"avatar"`
}

type userIdentity struct {
	ID          int64     `json:"id,omitempty"`
	Username    string    `json:"username,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	Links       userLinks `json:"links"`
}

// NewBackend validates cfg and returns a Backend ready to
// answer metadata queries.
func NewBackend(cfg Config) (*Backend, error) {
	const errCtx = "creating bitbucket backend"

	if cfg.RepositoryPath == "" {
		return nil, fmt.Errorf(
			"%s: repository path must be set", errCtx,
		)
	}

	if cfg.Session == nil {
		return nil, fmt.Errorf(
			"%s: session must be set", errCtx,
		)
	}

	apiRoot := cfg.APIRoot
	if apiRoot == "" {
		apiRoot = defaultAPIRoot
	}

	return &Backend{
		repoPath: cfg.RepositoryPath,
		apiRoot:  apiRoot,
		session:  cfg.Session,
	}, nil
}

// Kind reports which provider this backend talks to.
func (b *Backend) Kind() forge.Kind {
	return forge.KindBitbucket
}

// CurrentUser fetches the user owning the session
// credential. Bitbucket is the only provider exposing a
// full identity.
func (b *Backend) CurrentUser(
	ctx context.Context,
) (forge.Identity, error) {
	const errCtx = "fetching bitbucket current user"

	var user userIdentity

	if err := b.get(
		ctx, endpoint.OpCurrentUser, &user,
	); err != nil {
		return forge.Identity{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	return identityFromUser(user), nil
}

// DefaultBranch fetches the repository metadata and
// extracts mainbranch.name. A missing field normalizes to
// the empty string, not an error.
func (b *Backend) DefaultBranch(
	ctx context.Context,
) (string, error) {
	const errCtx = "fetching bitbucket default branch"

	var meta repoMetadata

	if err := b.get(
		ctx, endpoint.OpRepository, &meta,
	); err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return branchFromMetadata(meta), nil
}

// CanWrite fails with forge.ErrWriteRuleUnspecified: no
// permission rule is specified for this provider.
func (b *Backend) CanWrite(
	_ context.Context,
) (bool, error) {
	const errCtx = "checking bitbucket write permission"

	return false, fmt.Errorf(
		"%s: %w",
		errCtx, forge.ErrWriteRuleUnspecified,
	)
}

// get issues an authenticated GET against the operation's
// endpoint path and decodes the JSON response into out.
func (b *Backend) get(
	ctx context.Context,
	op endpoint.Operation,
	out any,
) error {
	const errCtx = "querying bitbucket"

	cred := b.session.Credential()
	if cred == "" {
		return fmt.Errorf(
			"%s: %w",
			errCtx, forge.ErrNotAuthenticated,
		)
	}

	path, err := endpoint.Path(
		forge.KindBitbucket, op, b.repoPath,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		b.apiRoot+path,
		nil,
	)
	if err != nil {
		return fmt.Errorf(
			"%s: build request: %w", errCtx, err,
		)
	}

	req.Header.Set("Authorization", "Bearer "+cred)
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf(
			"%s: send request: %w", errCtx, err,
		)
	}

	defer resp.Body.Close() //nolint:errcheck

	rb, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf(
			"%s: read response: %w", errCtx, err,
		)
	}

	if resp.StatusCode != http.StatusOK {
		slog.Warn(
			"bitbucket response",
			"status", resp.Status,
			"body", string(rb),
		)

		return fmt.Errorf(
			"%s: unexpected status %d",
			errCtx, resp.StatusCode,
		)
	}

	if err := json.Unmarshal(rb, out); err != nil {
		return fmt.Errorf(
			"%s: parse response: %w", errCtx, err,
		)
	}

	return nil
}

// identityFromUser maps a Bitbucket user response onto the
// canonical identity record.
func identityFromUser(user userIdentity) forge.Identity {
	return forge.Identity{
		ID:          strconv.FormatInt(user.ID, 10),
		Username:    user.Username,
		DisplayName: user.DisplayName,
		AvatarURL:   user.Links.Avatar.Href,
	}
}

// branchFromMetadata extracts mainbranch.name from the
// repository metadata.
func branchFromMetadata(meta repoMetadata) string {
	return meta.MainBranch.Name
}

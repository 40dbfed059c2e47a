package gitlab

import (
	"context"
	"fmt"
	"strconv"

	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/byte4ever/forgebridge/forge"
	"github.com/byte4ever/forgebridge/forge/session"
)

// Config holds the settings needed to create a GitLab
// metadata backend.
type Config struct {
	// RepositoryPath is the full project path
	// (e.g. "group/project").
	RepositoryPath string
	// APIRoot overrides the instance base URL. Leave
	// empty for https://gitlab.com.
	APIRoot string
	// Session supplies the credential read on each
	// call.
	Session *session.Store
}

// Backend answers metadata queries against a GitLab-style
// REST API.
//
// Pattern: Strategy -- implements forge.Backend.
type Backend struct {
	repoPath string
	apiRoot  string
	session  *session.Store
}

// NewBackend validates cfg and returns a Backend ready to
// answer metadata queries.
func NewBackend(cfg Config) (*Backend, error) {
	const errCtx = "creating gitlab backend"

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

	return &Backend{
		repoPath: cfg.RepositoryPath,
		apiRoot:  cfg.APIRoot,
		session:  cfg.Session,
	}, nil
}

// Kind reports which provider this backend talks to.
func (b *Backend) Kind() forge.Kind {
	return forge.KindGitLab
}

// client builds a GitLab client around the current session
// credential. Reading the credential per call means a
// credential swap takes effect on the next request.
func (b *Backend) client() (*gl.Client, error) {
	const errCtx = "creating gitlab client"

	cred := b.session.Credential()
	if cred == "" {
		return nil, fmt.Errorf(
			"%s: %w",
			errCtx, forge.ErrNotAuthenticated,
		)
	}

	var opts []gl.ClientOptionFunc

	if b.apiRoot != "" {
		opts = append(opts, gl.WithBaseURL(b.apiRoot))
	}

	client, err := gl.NewClient(cred, opts...)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: new client: %w", errCtx, err,
		)
	}

	return client, nil
}

// CurrentUser fetches the user owning the session
// credential.
func (b *Backend) CurrentUser(
	ctx context.Context,
) (forge.Identity, error) {
	const errCtx = "fetching gitlab current user"

	client, err := b.client()
	if err != nil {
		return forge.Identity{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	user, _, err := client.Users.CurrentUser(
		gl.WithContext(ctx),
	)
	if err != nil {
		return forge.Identity{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	return identityFromUser(user), nil
}

// DefaultBranch fetches the project metadata and extracts
// the default branch name. A missing field normalizes to
// the empty string, not an error.
func (b *Backend) DefaultBranch(
	ctx context.Context,
) (string, error) {
	const errCtx = "fetching gitlab default branch"

	client, err := b.client()
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	project, _, err := client.Projects.GetProject(
		b.repoPath, nil, gl.WithContext(ctx),
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return branchFromProject(project), nil
}

// CanWrite reports whether the credential's owner may push
// to the project.
func (b *Backend) CanWrite(
	ctx context.Context,
) (bool, error) {
	const errCtx = "checking gitlab write permission"

	client, err := b.client()
	if err != nil {
		return false, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	project, _, err := client.Projects.GetProject(
		b.repoPath, nil, gl.WithContext(ctx),
	)
	if err != nil {
		return false, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	return canWriteFromProject(project), nil
}

// identityFromUser maps a GitLab user response onto the
// canonical identity record. Only the numeric id is
// available in this contract.
func identityFromUser(user *gl.User) forge.Identity {
	return forge.Identity{
		ID: strconv.Itoa(user.ID),
	}
}

// branchFromProject extracts the default_branch field from
// the project metadata.
func branchFromProject(project *gl.Project) string {
	return project.DefaultBranch
}

// canWriteFromProject derives write access from
// permissions.project_access.access_level. A missing
// permissions block normalizes to false.
func canWriteFromProject(project *gl.Project) bool {
	perms := project.Permissions
	if perms == nil || perms.ProjectAccess == nil {
		return false
	}

	return perms.ProjectAccess.AccessLevel >=
		gl.DeveloperPermissions
}

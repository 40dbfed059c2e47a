package lookup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/byte4ever/forgebridge/forge"
	"github.com/byte4ever/forgebridge/forge/endpoint"
	"github.com/byte4ever/forgebridge/forge/session"
)

// Config holds the settings needed to create a lookup
// service.
type Config struct {
	// RepositoryPath is the full "owner/name" path of
	// the repository the service answers for.
	RepositoryPath string
	// Backend is the provider adapter queries go
	// through.
	Backend forge.Backend
	// Session is the authentication state shared with
	// the backend.
	Session *session.Store
}

// Service is the unified lookup surface over one
// authenticated backend.
type Service struct {
	repoPath string
	backend  forge.Backend
	session  *session.Store
}

// NewService validates cfg and returns a Service ready to
// authenticate and answer lookups.
func NewService(cfg Config) (*Service, error) {
	const errCtx = "creating lookup service"

	if cfg.RepositoryPath == "" {
		return nil, fmt.Errorf(
			"%s: repository path must be set", errCtx,
		)
	}

	if cfg.Backend == nil {
		return nil, fmt.Errorf(
			"%s: backend must be set", errCtx,
		)
	}

	if cfg.Session == nil {
		return nil, fmt.Errorf(
			"%s: session must be set", errCtx,
		)
	}

	return &Service{
		repoPath: cfg.RepositoryPath,
		backend:  cfg.Backend,
		session:  cfg.Session,
	}, nil
}

// Kind reports which provider the service talks to.
func (s *Service) Kind() forge.Kind {
	return s.backend.Kind()
}

// Repository returns the repository path the service
// answers for.
func (s *Service) Repository() string {
	return s.repoPath
}

// Identity returns the identity recorded by the last
// successful Authenticate. The bool is false before that.
func (s *Service) Identity() (forge.Identity, bool) {
	return s.session.Identity()
}

// Authenticate stores the credential in the session,
// resolves the credential owner's identity, and verifies
// repository access with a single default branch lookup.
// The identity is recorded in the session only when both
// steps succeed.
func (s *Service) Authenticate(
	ctx context.Context,
	credential string,
) (forge.Identity, error) {
	const errCtx = "authenticating"

	s.session.SetCredential(credential)

	identity, err := s.backend.CurrentUser(ctx)
	if err != nil {
		return forge.Identity{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	branch, err := s.DefaultBranchName(ctx)
	if err != nil {
		return forge.Identity{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	s.session.SetIdentity(identity)

	slog.Info(
		"authenticated",
		"kind", s.backend.Kind(),
		"repository", s.repoPath,
		"user", identity.ID,
		"default_branch", branch,
	)

	return identity, nil
}

// DefaultBranchName issues one authenticated metadata read
// and returns the normalized default branch name. An empty
// name is a lookup failure, never a valid result.
func (s *Service) DefaultBranchName(
	ctx context.Context,
) (string, error) {
	const errCtx = "looking up default branch"

	path, pathErr := endpoint.Path(
		s.backend.Kind(),
		endpoint.OpRepository,
		s.repoPath,
	)
	if pathErr == nil {
		slog.Debug(
			"default branch lookup",
			"kind", s.backend.Kind(),
			"path", path,
		)
	}

	branch, err := s.backend.DefaultBranch(ctx)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	if branch == "" {
		return "", fmt.Errorf(
			"%s: %w",
			errCtx, forge.ErrEmptyDefaultBranch,
		)
	}

	return branch, nil
}

// CanWrite reports whether the credential's owner may
// write to the repository.
func (s *Service) CanWrite(
	ctx context.Context,
) (bool, error) {
	const errCtx = "checking write permission"

	ok, err := s.backend.CanWrite(ctx)
	if err != nil {
		return false, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	return ok, nil
}

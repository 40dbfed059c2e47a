package forge

import "context"

// Pattern: Strategy -- swap git hosting platform without
// changing metadata lookup logic.

// Identity is the canonical shape of an authenticated
// user across all backends. GitHub and GitLab expose only
// the user id in this contract; Bitbucket additionally
// carries the username, display name and avatar. The
// asymmetry is provider-driven: each upstream API exposes
// different identity fields.
type Identity struct {
	// ID is the provider-assigned user identifier,
	// rendered as a string.
	ID string
	// Username is the login name (Bitbucket only).
	Username string
	// DisplayName is the human-readable name
	// (Bitbucket only).
	DisplayName string
	// AvatarURL points at the user's avatar image
	// (Bitbucket only).
	AvatarURL string
}

// Backend reads repository metadata from a git hosting
// platform using the credential held by a shared session
// store.
type Backend interface {
	// Kind identifies the backend's platform.
	Kind() Kind

	// CurrentUser returns the canonical identity of
	// the authenticated user.
	CurrentUser(ctx context.Context) (Identity, error)

	// DefaultBranch returns the repository's default
	// branch name. A missing field in the provider
	// response yields an empty string, not an error;
	// callers treat empty as a lookup failure.
	DefaultBranch(ctx context.Context) (string, error)

	// CanWrite reports whether the authenticated user
	// may push to the repository.
	CanWrite(ctx context.Context) (bool, error)
}

// BackendFuncs adapts plain functions to the Backend
// interface. A nil function makes the corresponding
// method return zero values.
type BackendFuncs struct {
	KindValue         Kind
	CurrentUserFunc   func(context.Context) (Identity, error)
	DefaultBranchFunc func(context.Context) (string, error)
	CanWriteFunc      func(context.Context) (bool, error)
}

// Kind returns the configured kind value.
func (f BackendFuncs) Kind() Kind {
	return f.KindValue
}

// CurrentUser delegates to CurrentUserFunc.
func (f BackendFuncs) CurrentUser(
	ctx context.Context,
) (Identity, error) {
	if f.CurrentUserFunc == nil {
		return Identity{}, nil
	}

	return f.CurrentUserFunc(ctx)
}

// DefaultBranch delegates to DefaultBranchFunc.
func (f BackendFuncs) DefaultBranch(
	ctx context.Context,
) (string, error) {
	if f.DefaultBranchFunc == nil {
		return "", nil
	}

	return f.DefaultBranchFunc(ctx)
}

// CanWrite delegates to CanWriteFunc.
func (f BackendFuncs) CanWrite(
	ctx context.Context,
) (bool, error) {
	if f.CanWriteFunc == nil {
		return false, nil
	}

	return f.CanWriteFunc(ctx)
}

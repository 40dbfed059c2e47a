package forge

import "errors"

// ErrEmptyDefaultBranch reports a well-formed provider
// response whose default branch field was missing or
// empty. An empty branch name is never a valid lookup
// result.
var ErrEmptyDefaultBranch = errors.New(
	"default branch name is empty",
)

// ErrNotAuthenticated reports a metadata call issued
// before a credential was stored in the session.
var ErrNotAuthenticated = errors.New(
	"no credential in session",
)

// ErrWriteRuleUnspecified reports a write permission
// probe against a backend whose upstream permission
// contract is unconfirmed. Bitbucket has no evidenced
// rule; the probe fails rather than guessing one.
var ErrWriteRuleUnspecified = errors.New(
	"write permission rule unspecified for this backend",
)

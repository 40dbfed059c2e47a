// Package bitbucket adapts a Bitbucket-style REST API to the
// forge.Backend interface. The default branch lives under
// mainbranch.name in the repository metadata, and the user endpoint is
// the only one returning a full identity (display name, username,
// avatar). No write permission rule is specified for this provider:
// CanWrite fails with forge.ErrWriteRuleUnspecified until the upstream
// contract is confirmed.
package bitbucket

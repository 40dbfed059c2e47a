// Package github adapts a GitHub-style REST API to the forge.Backend
// interface. Default branch and write permission come from the
// repository metadata endpoint; identity comes from the authenticated
// user endpoint. GitHub's minimal identity contract exposes only the
// numeric user id.
package github

// Package gitlab adapts a GitLab-style REST API to the forge.Backend
// interface. The repository is addressed by its full "owner/name"
// path, which the client percent-encodes as a single segment. Write
// permission derives from the project access level: 30 (developer) is
// the minimum tier granting write access.
package gitlab

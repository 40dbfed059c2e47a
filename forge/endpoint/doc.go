// Package endpoint holds the static table mapping a provider kind and
// operation onto a REST URL path template. Templates use single-brace
// {repository} placeholders expanded with valyala/fasttemplate.
//
// The table encodes one provider quirk: GitLab's REST routing disallows
// literal slashes in the project position, so the full "owner/name"
// repository path is percent-encoded as a single segment. GitHub and
// Bitbucket take the literal path.
package endpoint

package endpoint

import (
	"fmt"
	"net/url"

	"github.com/valyala/fasttemplate"

	"github.com/byte4ever/forgebridge/forge"
)

// Operation names a REST call the table knows a path for.
type Operation string

const (
	// OpRepository fetches a single repository's metadata.
	OpRepository Operation = "repository"

	// OpCurrentUser fetches the user owning the credential.
	OpCurrentUser Operation = "current-user"
)

// route describes how one provider exposes one operation.
type route struct {
	// template is the URL path with an optional
	// {repository} placeholder.
	template string

	// encodeRepository percent-encodes the repository
	// path as a single segment before expansion.
	encodeRepository bool
}

// table is pure data: provider kind and operation to path
// template.
var table = map[forge.Kind]map[Operation]route{
	forge.KindGitHub: {
		OpRepository: {
			template: "/repos/{repository}",
		},
		OpCurrentUser: {
			template: "/user",
		},
	},
	forge.KindGitLab: {
		OpRepository: {
			template:         "/api/v4/projects/{repository}",
			encodeRepository: true,
		},
		OpCurrentUser: {
			template: "/api/v4/user",
		},
	},
	forge.KindBitbucket: {
		OpRepository: {
			template: "/2.0/repositories/{repository}",
		},
		OpCurrentUser: {
			template: "/2.0/user",
		},
	},
}

// Path renders the URL path the given provider serves op
// under. repoPath is the "owner/name" repository path; it
// is percent-encoded as a single segment when the provider
// requires it. Unknown kinds and operations are errors.
func Path(
	kind forge.Kind,
	op Operation,
	repoPath string,
) (string, error) {
	const errCtx = "building endpoint path"

	routes, ok := table[kind]
	if !ok {
		return "", fmt.Errorf(
			"%s: %w",
			errCtx,
			&forge.UnknownKindError{Name: string(kind)},
		)
	}

	rt, ok := routes[op]
	if !ok {
		return "", fmt.Errorf(
			"%s: no %q operation for %s",
			errCtx,
			op,
			kind,
		)
	}

	repo := repoPath
	if rt.encodeRepository {
		repo = url.PathEscape(repoPath)
	}

	return fasttemplate.ExecuteStringStd(
		rt.template,
		"{",
		"}",
		map[string]interface{}{
			"repository": repo,
		},
	), nil
}

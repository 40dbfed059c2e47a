package lookup_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/forgebridge/config"
	"github.com/byte4ever/forgebridge/forge"
	"github.com/byte4ever/forgebridge/forge/lookup"
)

func TestResolve_known_backends(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want forge.Kind
	}{
		{name: "github", want: forge.KindGitHub},
		{name: "gitlab", want: forge.KindGitLab},
		{name: "bitbucket", want: forge.KindBitbucket},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, err := lookup.Resolve(
				config.Backend{
					Name: tt.name,
					Repo: "foo/bar",
				},
			)

			require.NoError(t, err)
			assert.Equal(t, tt.want, svc.Kind())
			assert.Equal(
				t, "foo/bar", svc.Repository(),
			)
		})
	}
}

func TestResolve_unknown_name_is_error(t *testing.T) {
	t.Parallel()

	svc, err := lookup.Resolve(config.Backend{
		Name: "gitbucket",
		Repo: "foo/bar",
	})

	assert.Nil(t, svc)

	var unknownErr *forge.UnknownKindError

	require.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, "gitbucket", unknownErr.Name)
}

func TestResolve_unknown_name_fallback(t *testing.T) {
	t.Parallel()

	svc, err := lookup.Resolve(config.Backend{
		Name:             "gitbucket",
		Repo:             "foo/bar",
		FallbackToGitHub: true,
	})

	require.NoError(t, err)
	assert.Equal(t, forge.KindGitHub, svc.Kind())
}

func TestResolve_missing_repo(t *testing.T) {
	t.Parallel()

	svc, err := lookup.Resolve(config.Backend{
		Name: "github",
	})

	assert.Nil(t, svc)
	assert.ErrorContains(
		t, err, "repository path must be set",
	)
}

func TestResolve_bitbucket_end_to_end(t *testing.T) {
	t.Parallel()

	var (
		repoCalls int
		gotAuth   string
	)

	ts := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")

			w.Header().Set(
				"Content-Type", "application/json",
			)

			switch r.URL.Path {
			case "/2.0/user":
				fmt.Fprint(
					w,
					`{"id":42,"username":"jdoe",`+
						`"display_name":"Jane Doe",`+
						`"links":{"avatar":{"href":`+
						`"https://bb.example.com/a.png"`+
						`}}}`,
				)
			case "/2.0/repositories/foo/bar":
				repoCalls++

				fmt.Fprint(
					w,
					`{"mainbranch":{"name":"master"}}`,
				)
			default:
				http.NotFound(w, r)
			}
		},
	))
	defer ts.Close()

	svc, err := lookup.Resolve(config.Backend{
		Name:    "bitbucket",
		Repo:    "foo/bar",
		APIRoot: ts.URL,
	})
	require.NoError(t, err)

	identity, err := svc.Authenticate(
		context.Background(), "app-pass-123",
	)

	require.NoError(t, err)
	assert.Equal(
		t,
		forge.Identity{
			ID:          "42",
			Username:    "jdoe",
			DisplayName: "Jane Doe",
			AvatarURL:   "https://bb.example.com/a.png",
		},
		identity,
	)
	assert.Equal(t, 1, repoCalls)
	assert.Equal(t, "Bearer app-pass-123", gotAuth)

	branch, err := svc.DefaultBranchName(
		context.Background(),
	)

	require.NoError(t, err)
	assert.Equal(t, "master", branch)
	assert.Equal(t, 2, repoCalls)
}

func TestResolve_gitlab_end_to_end(t *testing.T) {
	t.Parallel()

	var repoCalls int

	ts := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(
				"Content-Type", "application/json",
			)

			switch r.URL.Path {
			case "/api/v4/user":
				fmt.Fprint(w, `{"id":7}`)
			case "/api/v4/projects/foo/bar":
				repoCalls++

				fmt.Fprint(
					w,
					`{"id":1,"default_branch":"main"}`,
				)
			default:
				http.NotFound(w, r)
			}
		},
	))
	defer ts.Close()

	svc, err := lookup.Resolve(config.Backend{
		Name:    "gitlab",
		Repo:    "foo/bar",
		APIRoot: ts.URL,
	})
	require.NoError(t, err)

	identity, err := svc.Authenticate(
		context.Background(), "glpat-123",
	)

	require.NoError(t, err)
	assert.Equal(t, forge.Identity{ID: "7"}, identity)
	assert.Equal(t, 1, repoCalls)

	recorded, ok := svc.Identity()
	require.True(t, ok)
	assert.Equal(t, identity, recorded)
}

func TestResolve_github_end_to_end(t *testing.T) {
	t.Parallel()

	var repoCalls int

	ts := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(
				"Content-Type", "application/json",
			)

			switch r.URL.Path {
			case "/user":
				fmt.Fprint(w, `{"id":42}`)
			case "/repos/foo/bar":
				repoCalls++

				fmt.Fprint(
					w,
					`{"default_branch":"master",`+
						`"permissions":{"push":true}}`,
				)
			default:
				http.NotFound(w, r)
			}
		},
	))
	defer ts.Close()

	svc, err := lookup.Resolve(config.Backend{
		Name:    "github",
		Repo:    "foo/bar",
		APIRoot: ts.URL,
	})
	require.NoError(t, err)

	identity, err := svc.Authenticate(
		context.Background(), "tok-123",
	)

	require.NoError(t, err)
	assert.Equal(t, forge.Identity{ID: "42"}, identity)
	assert.Equal(t, 1, repoCalls)

	canWrite, err := svc.CanWrite(context.Background())

	require.NoError(t, err)
	assert.True(t, canWrite)
}

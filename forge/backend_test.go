package forge_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/forgebridge/forge"
)

func TestBackendFuncs_delegates(t *testing.T) {
	t.Parallel()

	identity := forge.Identity{ID: "42"}

	fn := forge.BackendFuncs{
		KindValue: forge.KindGitLab,
		CurrentUserFunc: func(
			_ context.Context,
		) (forge.Identity, error) {
			return identity, nil
		},
		DefaultBranchFunc: func(
			_ context.Context,
		) (string, error) {
			return "main", nil
		},
		CanWriteFunc: func(
			_ context.Context,
		) (bool, error) {
			return true, nil
		},
	}

	assert.Equal(t, forge.KindGitLab, fn.Kind())

	got, err := fn.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, identity, got)

	branch, err := fn.DefaultBranch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "main", branch)

	ok, err := fn.CanWrite(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBackendFuncs_nil_funcs(t *testing.T) {
	t.Parallel()

	var fn forge.BackendFuncs

	got, err := fn.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, forge.Identity{}, got)

	branch, err := fn.DefaultBranch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, branch)

	ok, err := fn.CanWrite(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBackendFuncs_propagates_errors(t *testing.T) {
	t.Parallel()

	errTest := errors.New("test error")

	fn := forge.BackendFuncs{
		DefaultBranchFunc: func(
			_ context.Context,
		) (string, error) {
			return "", errTest
		},
	}

	_, err := fn.DefaultBranch(context.Background())

	assert.ErrorIs(t, err, errTest)
}

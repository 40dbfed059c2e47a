package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/forgebridge/forge"
	"github.com/byte4ever/forgebridge/forge/session"
)

func TestStore_starts_empty(t *testing.T) {
	t.Parallel()

	store := session.NewStore()

	assert.Empty(t, store.Credential())

	_, ok := store.Identity()
	assert.False(t, ok)
}

func TestStore_set_credential(t *testing.T) {
	t.Parallel()

	store := session.NewStore()

	store.SetCredential("token-one")
	assert.Equal(t, "token-one", store.Credential())

	store.SetCredential("token-two")
	assert.Equal(t, "token-two", store.Credential())
}

func TestStore_set_identity(t *testing.T) {
	t.Parallel()

	store := session.NewStore()

	want := forge.Identity{
		ID:          "42",
		Username:    "octocat",
		DisplayName: "The Octocat",
	}

	store.SetIdentity(want)

	got, ok := store.Identity()
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestStore_clear(t *testing.T) {
	t.Parallel()

	store := session.NewStore()

	store.SetCredential("token")
	store.SetIdentity(forge.Identity{ID: "42"})

	store.Clear()

	assert.Empty(t, store.Credential())

	_, ok := store.Identity()
	assert.False(t, ok)
}

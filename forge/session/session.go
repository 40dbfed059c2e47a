package session

import (
	"sync"

	"github.com/byte4ever/forgebridge/forge"
)

// Store is the mutable authentication state of one
// session. Safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	credential  string
	identity    forge.Identity
	hasIdentity bool
}

// NewStore returns an empty store: no credential and no
// identity.
func NewStore() *Store {
	return &Store{}
}

// SetCredential replaces the session credential.
func (s *Store) SetCredential(credential string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.credential = credential
}

// Credential returns the current credential. Empty means
// the session never authenticated, or was cleared.
func (s *Store) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.credential
}

// SetIdentity records the identity the credential resolved
// to.
func (s *Store) SetIdentity(identity forge.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.identity = identity
	s.hasIdentity = true
}

// Identity returns the recorded identity. The bool is
// false until SetIdentity has been called.
func (s *Store) Identity() (forge.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.identity, s.hasIdentity
}

// Clear drops the credential and identity, returning the
// store to its unauthenticated state.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.credential = ""
	s.identity = forge.Identity{}
	s.hasIdentity = false
}

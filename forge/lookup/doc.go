// Package lookup wires a configured backend, a session store, and the
// endpoint table into the operations the content layer consumes:
// Authenticate, DefaultBranchName, and the CanWrite probe. Resolve is
// the factory selecting the backend implementation from configuration.
package lookup

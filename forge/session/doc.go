// Package session holds per-session authentication state: the raw
// credential handed to Authenticate and, once the credential has been
// verified, the normalized identity of its owner. Backends read the
// credential from the store on every call, so swapping it takes effect
// without rebuilding clients.
package session

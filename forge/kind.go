package forge

import "fmt"

// Kind identifies one of the supported git hosting
// services.
type Kind string

// The set of kinds is closed: adding a provider means
// adding a backend package and extending the dispatch in
// lookup.Resolve.
const (
	KindGitHub    Kind = "github"
	KindGitLab    Kind = "gitlab"
	KindBitbucket Kind = "bitbucket"
)

// String returns the configuration name of the kind.
func (k Kind) String() string {
	return string(k)
}

// UnknownKindError reports a backend name that matches
// none of the supported kinds.
type UnknownKindError struct {
	// Name is the unrecognized backend name.
	Name string
}

// Error implements the error interface.
func (e *UnknownKindError) Error() string {
	return fmt.Sprintf(
		"unknown backend kind %q", e.Name,
	)
}

// ParseKind maps a configuration name onto a Kind. Names
// outside the three supported values yield an
// *UnknownKindError.
func ParseKind(name string) (Kind, error) {
	switch name {
	case string(KindGitHub):
		return KindGitHub, nil
	case string(KindGitLab):
		return KindGitLab, nil
	case string(KindBitbucket):
		return KindBitbucket, nil
	default:
		return "", &UnknownKindError{Name: name}
	}
}

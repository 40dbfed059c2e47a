// Package forge defines the canonical types shared by all git hosting
// backends: the closed Kind enumeration, the Backend strategy interface,
// the normalized Identity record, and the error taxonomy of the metadata
// adapter layer.
//
// Concrete backends live in sub-packages (github, gitlab, bitbucket) and
// are selected by configuration name via lookup.Resolve. BackendFuncs is
// a convenience adapter that lets plain functions satisfy the Backend
// interface.
package forge

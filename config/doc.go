// Package config loads the YAML file that selects and parameterizes a
// git hosting backend. The credential field supports ${ENV_VAR}
// expansion and file indirection: when the expanded value names an
// existing file, the credential is read from that file instead.
package config

package lookup

import (
	"fmt"
	"log/slog"

	"github.com/byte4ever/forgebridge/config"
	"github.com/byte4ever/forgebridge/forge"
	"github.com/byte4ever/forgebridge/forge/bitbucket"
	"github.com/byte4ever/forgebridge/forge/github"
	"github.com/byte4ever/forgebridge/forge/gitlab"
	"github.com/byte4ever/forgebridge/forge/session"
)

// Resolve builds the backend named by cfg and wraps it
// with a fresh session and lookup service. An unknown name
// is an error unless cfg.FallbackToGitHub restores the
// legacy behavior of defaulting to the github backend.
//
// Pattern: Factory -- selects the backend implementation
// at runtime.
func Resolve(cfg config.Backend) (*Service, error) {
	const errCtx = "resolving backend"

	kind, err := forge.ParseKind(cfg.Name)
	if err != nil {
		if !cfg.FallbackToGitHub {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		slog.Warn(
			"unknown backend name, falling back to "+
				"github",
			"name", cfg.Name,
		)

		kind = forge.KindGitHub
	}

	store := session.NewStore()

	backend, err := newBackend(kind, cfg, store)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	svc, err := NewService(Config{
		RepositoryPath: cfg.Repo,
		Backend:        backend,
		Session:        store,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return svc, nil
}

// newBackend constructs the concrete adapter for the given
// kind, sharing the session store with the service.
func newBackend(
	kind forge.Kind,
	cfg config.Backend,
	store *session.Store,
) (forge.Backend, error) {
	const errCtx = "creating backend"

	switch kind {
	case forge.KindGitHub:
		b, err := github.NewBackend(github.Config{
			RepositoryPath: cfg.Repo,
			APIRoot:        cfg.APIRoot,
			Session:        store,
		})
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		return b, nil

	case forge.KindGitLab:
		b, err := gitlab.NewBackend(gitlab.Config{
			RepositoryPath: cfg.Repo,
			APIRoot:        cfg.APIRoot,
			Session:        store,
		})
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		return b, nil

	case forge.KindBitbucket:
		b, err := bitbucket.NewBackend(
			bitbucket.Config{
				RepositoryPath: cfg.Repo,
				APIRoot:        cfg.APIRoot,
				Session:        store,
			},
		)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		return b, nil

	default:
		return nil, fmt.Errorf(
			"%s: %w",
			errCtx,
			&forge.UnknownKindError{
				Name: string(kind),
			},
		)
	}
}

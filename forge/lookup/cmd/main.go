// Command forge_lookup authenticates against a git
// hosting backend and reports the repository's default
// branch, the credential owner's identity, and optionally
// whether that identity may write to the repository.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/byte4ever/forgebridge/config"
	"github.com/byte4ever/forgebridge/forge"
	"github.com/byte4ever/forgebridge/forge/endpoint"
	"github.com/byte4ever/forgebridge/forge/lookup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // CLI flag setup is inherently long
func run() error {
	const errCtx = "running forge_lookup"

	// Configuration file.
	configPath := flag.String(
		"config", "",
		"Path to the YAML configuration file",
	)

	// Backend flags override the file.
	backendName := flag.String(
		"backend", "",
		"Backend name: github, gitlab, or bitbucket",
	)
	repo := flag.String(
		"repo", "",
		"Repository path (owner/name)",
	)
	credential := flag.String(
		"credential", "",
		"Access token presented to the backend",
	)
	apiRoot := flag.String(
		"api_root", "",
		"Backend API base URL override",
	)
	fallback := flag.Bool(
		"fallback_to_github", false,
		"Treat an unknown backend name as github",
	)

	// Behavior flags.
	checkWrite := flag.Bool(
		"check_write", false,
		"Also probe write permission",
	)
	dryRun := flag.Bool(
		"dry_run", false,
		"Print endpoint paths without issuing requests",
	)
	verbose := flag.Bool(
		"verbose", false,
		"Enable debug logging",
	)

	flag.Parse()

	if *verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	cfg, err := loadBackendConfig(*configPath)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	applyOverrides(cfg, flagOverrides{
		name:       *backendName,
		repo:       *repo,
		credential: *credential,
		apiRoot:    *apiRoot,
		fallback:   *fallback,
	})

	if *dryRun {
		if err := printEndpoints(*cfg); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		return nil
	}

	if cfg.Credential == "" {
		return fmt.Errorf(
			"%s: credential must be set", errCtx,
		)
	}

	svc, err := lookup.Resolve(*cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	ctx := context.Background()

	identity, err := svc.Authenticate(
		ctx, cfg.Credential,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	branch, err := svc.DefaultBranchName(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Info(
		"lookup result",
		"kind", svc.Kind(),
		"repository", svc.Repository(),
		"user", identity.ID,
		"default_branch", branch,
	)

	if *checkWrite {
		if err := reportWritePermission(
			ctx, svc,
		); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	return nil
}

// loadBackendConfig reads the backend section from the
// configuration file, or returns an empty config when no
// file is given.
func loadBackendConfig(
	path string,
) (*config.Backend, error) {
	if path == "" {
		return &config.Backend{}, nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	return &cfg.Backend, nil
}

// flagOverrides bundles flag values overriding the
// configuration file.
type flagOverrides struct {
	name       string
	repo       string
	credential string
	apiRoot    string
	fallback   bool
}

// applyOverrides lets non-empty flag values win over the
// configuration file.
func applyOverrides(
	cfg *config.Backend,
	ov flagOverrides,
) {
	if ov.name != "" {
		cfg.Name = ov.name
	}

	if ov.repo != "" {
		cfg.Repo = ov.repo
	}

	if ov.credential != "" {
		cfg.Credential = ov.credential
	}

	if ov.apiRoot != "" {
		cfg.APIRoot = ov.apiRoot
	}

	if ov.fallback {
		cfg.FallbackToGitHub = true
	}
}

// printEndpoints resolves the backend kind and logs the
// endpoint paths a lookup would hit, without issuing any
// request.
func printEndpoints(cfg config.Backend) error {
	const errCtx = "printing endpoints"

	if cfg.Repo == "" {
		return fmt.Errorf(
			"%s: repo must be set", errCtx,
		)
	}

	kind, err := forge.ParseKind(cfg.Name)
	if err != nil {
		if !cfg.FallbackToGitHub {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		kind = forge.KindGitHub
	}

	ops := []endpoint.Operation{
		endpoint.OpRepository,
		endpoint.OpCurrentUser,
	}

	for _, op := range ops {
		path, err := endpoint.Path(kind, op, cfg.Repo)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		slog.Info(
			"endpoint",
			"kind", kind,
			"operation", string(op),
			"path", path,
		)
	}

	return nil
}

// reportWritePermission probes write permission, treating
// an unspecified provider rule as a warning rather than a
// failure.
func reportWritePermission(
	ctx context.Context,
	svc *lookup.Service,
) error {
	const errCtx = "reporting write permission"

	ok, err := svc.CanWrite(ctx)
	if err != nil {
		if errors.Is(
			err, forge.ErrWriteRuleUnspecified,
		) {
			slog.Warn(
				"write permission rule unspecified",
				"kind", svc.Kind(),
			)

			return nil
		}

		return fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Info(
		"write permission",
		"kind", svc.Kind(),
		"can_write", ok,
	)

	return nil
}

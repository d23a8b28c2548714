package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/forcelabs/pkglineage/internal/cli/config"
	"github.com/forcelabs/pkglineage/internal/cli/output"
	"github.com/forcelabs/pkglineage/internal/release"
	"github.com/forcelabs/pkglineage/internal/salesforce"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext assembles the shared dependencies from the command.
// The renderer set up by the root command's pre-run is reused when present;
// commands executed standalone (tests) get one built from config.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	r := output.FromContext(cmd.Context())
	if r == nil {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	return &config.Config{
		Org:          os.Getenv("PKGLINEAGE_ORG"),
		Bin:          getEnvOrDefault("PKGLINEAGE_SF_BIN", config.DefaultBin),
		PackagesFile: os.Getenv("PKGLINEAGE_PACKAGES_FILE"),
		VersionsFile: os.Getenv("PKGLINEAGE_VERSIONS_FILE"),
		Verbose:      os.Getenv("PKGLINEAGE_VERBOSE") == "true",
		OutputFormat: getEnvOrDefault("PKGLINEAGE_OUTPUT", config.DefaultOutput),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// loadInputs obtains the two input documents: from saved envelope files when
// configured, otherwise live from the Dev Hub. Both documents are fully
// materialized before tree construction; ancestor resolution needs random
// lookup by id.
func loadInputs(ctx context.Context, cmdCtx *CommandContext) (managed []string, records []release.Record, err error) {
	cfg := cmdCtx.Cfg

	if cfg.Offline() {
		cmdCtx.Logger.Debug("reading saved envelopes",
			"packages", cfg.PackagesFile, "versions", cfg.VersionsFile)

		pkgDoc, err := os.ReadFile(cfg.PackagesFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read packages file: %w", err)
		}
		verDoc, err := os.ReadFile(cfg.VersionsFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read versions file: %w", err)
		}

		managed, err = salesforce.ParsePackageList(pkgDoc)
		if err != nil {
			return nil, nil, err
		}
		records, err = salesforce.ParseVersionList(verDoc)
		if err != nil {
			return nil, nil, err
		}
		return managed, records, nil
	}

	client := salesforce.NewClient(cfg.Bin, cfg.Org, cmdCtx.Logger)
	managed, err = client.FetchManagedPackages(ctx)
	if err != nil {
		return nil, nil, err
	}
	records, err = client.FetchVersions(ctx)
	if err != nil {
		return nil, nil, err
	}
	return managed, records, nil
}

// buildForest loads the inputs and links them into per-family trees.
func buildForest(ctx context.Context, cmdCtx *CommandContext) (*release.Forest, error) {
	managed, records, err := loadInputs(ctx, cmdCtx)
	if err != nil {
		return nil, err
	}

	cmdCtx.Logger.Debug("building release forest",
		"managed_families", len(managed), "records", len(records))

	return release.BuildForest(records, managed), nil
}

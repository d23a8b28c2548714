package salesforce

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/forcelabs/pkglineage/internal/release"
)

// DefaultBin is the Salesforce CLI binary looked up on PATH.
const DefaultBin = "sf"

// runFunc executes the CLI and returns its stdout. Swappable in tests.
type runFunc func(ctx context.Context, bin string, args ...string) ([]byte, error)

// Client fetches lineage input documents from a Dev Hub through the sf CLI.
type Client struct {
	bin    string
	org    string
	logger *slog.Logger
	run    runFunc
}

// NewClient returns a client for the given org alias. An empty bin falls back
// to DefaultBin; a nil logger discards.
func NewClient(bin, org string, logger *slog.Logger) *Client {
	if bin == "" {
		bin = DefaultBin
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{bin: bin, org: org, logger: logger, run: runCLI}
}

// runCLI invokes the binary and returns stdout. The CLI exits non-zero on
// failures but still writes a parseable envelope, so stdout is returned even
// on error and the envelope's status decides.
func runCLI(ctx context.Context, bin string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stdout.Len() > 0 {
			return stdout.Bytes(), nil
		}
		return nil, fmt.Errorf("%s %s: %w: %s", bin, args[0], err, bytes.TrimSpace(stderr.Bytes()))
	}
	return stdout.Bytes(), nil
}

// FetchManagedPackages runs `sf package list` against the org and returns the
// managed family allow-list.
func (c *Client) FetchManagedPackages(ctx context.Context) ([]string, error) {
	c.logger.Debug("fetching package list", "org", c.org)
	out, err := c.run(ctx, c.bin, "package", "list", "--target-dev-hub", c.org, "--json")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch package list: %w", err)
	}
	return ParsePackageList(out)
}

// FetchVersions runs `sf package version list` against the org and returns
// every version row. Filtering to released, managed records is the builder's
// job, not the fetcher's.
func (c *Client) FetchVersions(ctx context.Context) ([]release.Record, error) {
	c.logger.Debug("fetching package version list", "org", c.org)
	out, err := c.run(ctx, c.bin, "package", "version", "list", "--target-dev-hub", c.org, "--json")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch package version list: %w", err)
	}
	return ParseVersionList(out)
}

package commands

import (
	"fmt"

	"github.com/forcelabs/pkglineage/internal/cli/output"
	"github.com/forcelabs/pkglineage/internal/release"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ValidateOptions holds options for the validate command.
type ValidateOptions struct {
	Format   string // Output format: text, markdown, json
	Severity string // Threshold: report findings at or above this severity
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check every managed package for a single upgrade path",
		Long: `Rebuild each managed package's release tree and check its lineage.

Every released version must continue exactly one line: patch releases may
coexist freely on a minor line, but at most one non-patch release may follow
any given ancestor. Violations across all packages are collected and reported
in a single pass.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Validate against the configured Dev Hub
  pkglineage validate --org my-devhub

  # Validate saved envelopes (no org required)
  pkglineage validate --packages-file pkgs.json --versions-file vers.json

  # Output as JSON
  pkglineage validate --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().StringVarP(&opts.Severity, "severity", "s", "", "Report findings at or above this severity: error, warning (default warning)")

	return cmd
}

// ValidateOutput is the JSON output for the validate command.
type ValidateOutput struct {
	RunID    string          `json:"run_id"`
	Families []FamilyOutput  `json:"families"`
	Findings []FindingOutput `json:"findings"`
	Summary  ValidateSummary `json:"summary"`
}

// FamilyOutput summarizes one package family's result.
type FamilyOutput struct {
	Name     string `json:"name"`
	Releases int    `json:"releases"`
	Status   string `json:"status"` // "pass", "fail", "fatal"
	Findings int    `json:"findings"`
}

// FindingOutput is one diagnostic in machine-readable form.
type FindingOutput struct {
	RuleID   string `json:"rule_id"`
	Family   string `json:"family"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// ValidateSummary holds whole-run counts.
type ValidateSummary struct {
	Families int `json:"families"`
	Findings int `json:"findings"`
	BadForks int `json:"bad_forks"`
}

func runValidate(cmd *cobra.Command, opts *ValidateOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	// Lower severities are filtered out of the report and the exit status.
	threshold := release.SeverityWarning
	if opts.Severity != "" {
		sev, ok := release.ParseSeverity(opts.Severity)
		if !ok {
			return fmt.Errorf("invalid severity %q (want error or warning)", opts.Severity)
		}
		threshold = sev
	}

	forest, err := buildForest(cmd.Context(), cmdCtx)
	if err != nil {
		return err
	}

	report := release.ValidateAll(cmd.Context(), forest)
	out := buildValidateOutput(report, threshold)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		if err := r.JSON(out); err != nil {
			return err
		}
	case output.ModeMarkdown:
		renderValidateMarkdown(r, out)
	default:
		renderValidateText(r, out)
	}

	// Any finding fails the run so CI and release scripts can gate on it.
	if out.Summary.Findings > 0 {
		return fmt.Errorf("lineage validation failed: %d finding(s) across %d package(s)",
			out.Summary.Findings, len(brokenFamilies(out.Families)))
	}
	return nil
}

// buildValidateOutput flattens a report into output form. Diagnostics below
// the severity threshold are dropped entirely; a family whose findings all
// fall below it counts as passing.
func buildValidateOutput(report *release.Report, threshold release.Severity) *ValidateOutput {
	out := &ValidateOutput{RunID: report.RunID}

	for _, fam := range report.Families {
		var kept []release.Diagnostic
		for _, d := range fam.Diagnostics {
			// Severity values order from most to least severe.
			if d.Severity > threshold {
				continue
			}
			kept = append(kept, d)
		}

		status := "pass"
		switch {
		case fam.Fatal:
			status = "fatal"
		case len(kept) > 0:
			status = "fail"
		}
		out.Families = append(out.Families, FamilyOutput{
			Name:     fam.Family,
			Releases: fam.Releases,
			Status:   status,
			Findings: len(kept),
		})

		for _, d := range kept {
			out.Findings = append(out.Findings, FindingOutput{
				RuleID:   d.RuleID,
				Family:   d.Family,
				Severity: d.Severity.String(),
				Message:  d.Message,
			})
			if d.RuleID == release.RuleBadFork {
				out.Summary.BadForks++
			}
		}
	}

	out.Summary.Families = len(out.Families)
	out.Summary.Findings = len(out.Findings)
	return out
}

func brokenFamilies(families []FamilyOutput) []string {
	var broken []string
	for _, f := range families {
		if f.Findings > 0 {
			broken = append(broken, f.Name)
		}
	}
	return broken
}

func renderValidateText(r *output.Renderer, out *ValidateOutput) {
	styles := r.Styles()

	r.Header(1, "Release Lineage Report")
	r.Println("")

	for _, fam := range out.Families {
		icon := styles.Success.Render("ok  ")
		switch fam.Status {
		case "fail":
			icon = styles.Error.Render("fail")
		case "fatal":
			icon = styles.Error.Render("fatal")
		}
		r.Printf("  %s  %s  %s\n",
			icon,
			styles.FamilyName.Render(fam.Name),
			styles.Muted.Render(fmt.Sprintf("%d releases", fam.Releases)),
		)
	}
	r.Println("")

	for _, f := range out.Findings {
		sevStyle := styles.Error
		if f.Severity == "warning" {
			sevStyle = styles.Warning
		}
		r.Printf("  %s  %s  %s\n",
			sevStyle.Render(fmt.Sprintf("%-7s", f.Severity)),
			styles.Bold.Render(f.RuleID),
			f.Message,
		)
	}
	if len(out.Findings) > 0 {
		r.Println("")
	}

	if out.Summary.Findings == 0 {
		r.Success(fmt.Sprintf("All %d packages have a single upgrade path", out.Summary.Families))
		return
	}
	r.Printf("Summary: %d findings (%d bad forks) across %d packages\n",
		out.Summary.Findings, out.Summary.BadForks, out.Summary.Families)
}

func renderValidateMarkdown(r *output.Renderer, out *ValidateOutput) {
	r.Println(output.FormatHeader(1, "Release Lineage Report"))
	r.Println("")

	caser := cases.Title(language.English)
	r.Println(output.FormatHeader(2, "Packages"))
	r.Println("")
	for _, fam := range out.Families {
		r.Printf("- **[%s]** %s (%d releases)\n", caser.String(fam.Status), fam.Name, fam.Releases)
	}
	r.Println("")

	if len(out.Findings) > 0 {
		r.Println(output.FormatHeader(2, "Findings"))
		r.Println("")
		for _, f := range out.Findings {
			r.Printf("- **%s** (%s): %s\n", f.RuleID, f.Severity, f.Message)
		}
		r.Println("")
	}

	r.Printf("**%d findings across %d packages**\n", out.Summary.Findings, out.Summary.Families)
}

package commands

import (
	"fmt"

	"github.com/forcelabs/pkglineage/internal/cli/output"
	"github.com/forcelabs/pkglineage/internal/release"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// ListOptions holds options for the list command.
type ListOptions struct {
	Format  string // Output format: text, markdown, json
	Package string // Restrict output to one package family
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	opts := &ListOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the retained released versions per package",
		Long: `List every version that survives filtering: managed packages only,
released versions only, nothing flagged DO NOT USE. These are exactly
the records the validate and tree commands operate on.`,
		Example: `  # List all retained versions
  pkglineage list --org my-devhub

  # Only one package
  pkglineage list --package CorePlatform`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().StringVarP(&opts.Package, "package", "p", "", "Limit output to a single package")

	return cmd
}

// ListRow is one retained release in the JSON list output.
type ListRow struct {
	Family     string `json:"family"`
	Version    string `json:"version"`
	Label      string `json:"label"`
	ID         string `json:"id"`
	AncestorID string `json:"ancestor_id,omitempty"`
}

func runList(cmd *cobra.Command, opts *ListOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	forest, err := buildForest(cmd.Context(), cmdCtx)
	if err != nil {
		return err
	}

	families, err := selectFamilies(forest, opts.Package)
	if err != nil {
		return err
	}

	rows := buildListRows(forest, families)

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(rows)
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Package", "Version", "Label", "Id", "Ancestor"})
	for _, row := range rows {
		ancestor := row.AncestorID
		if ancestor == "" {
			ancestor = "(root)"
		}
		t.AppendRow(table.Row{row.Family, row.Version, row.Label, row.ID, ancestor})
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
	} else {
		t.SetStyle(table.StyleLight)
		t.Render()
	}

	r.Printf("\n%d retained releases across %d packages\n", len(rows), len(families))
	return nil
}

func buildListRows(f *release.Forest, families []string) []ListRow {
	var rows []ListRow
	for _, fam := range families {
		var walk func(i int)
		walk = func(i int) {
			rec := f.Rec(i)
			ancestor := rec.AncestorID
			if rec.IsRoot() {
				ancestor = ""
			}
			rows = append(rows, ListRow{
				Family:     rec.Family,
				Version:    rec.Version.String(),
				Label:      rec.Name,
				ID:         rec.SubscriberID,
				AncestorID: ancestor,
			})
			for _, c := range f.Children(i) {
				walk(c)
			}
		}
		for _, root := range f.Roots(fam) {
			walk(root)
		}
		// Releases whose ancestor pointer never resolved still belong in
		// the listing even though no tree position exists for them.
		for _, u := range f.Unresolved(fam) {
			rows = append(rows, ListRow{
				Family:     fam,
				Version:    "?",
				Label:      fmt.Sprintf("unresolved ancestor %s", u.AncestorID),
				ID:         u.ChildID,
				AncestorID: u.AncestorID,
			})
		}
	}
	return rows
}

package commands

import (
	"fmt"

	"github.com/forcelabs/pkglineage/internal/cli/output"
	"github.com/forcelabs/pkglineage/internal/release"
	"github.com/spf13/cobra"
)

// TreeOptions holds options for the tree command.
type TreeOptions struct {
	Format  string // Output format: text, markdown, json
	Package string // Restrict output to one package family
}

// NewTreeCommand creates the tree command.
func NewTreeCommand() *cobra.Command {
	opts := &TreeOptions{}
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show each package's release tree",
		Long: `Rebuild and print the ancestry tree of every managed package.

Each released version hangs under the version its AncestorId points at.
Patch releases of their parent's minor line are marked so branch points
stand out. The tree is purely descriptive; use validate to check it.`,
		Example: `  # Print all release trees
  pkglineage tree --org my-devhub

  # Only one package
  pkglineage tree --package CorePlatform

  # Machine-readable form
  pkglineage tree --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTree(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().StringVarP(&opts.Package, "package", "p", "", "Limit output to a single package")

	return cmd
}

// TreeNode is one release in the JSON tree output.
type TreeNode struct {
	ID       string     `json:"id"`
	Version  string     `json:"version"`
	Label    string     `json:"label"`
	Patch    bool       `json:"patch"`
	Children []TreeNode `json:"children,omitempty"`
}

// TreeOutput is the JSON output for the tree command.
type TreeOutput struct {
	Families []TreeFamily `json:"families"`
}

// TreeFamily is one package's tree plus its unresolved pointers.
type TreeFamily struct {
	Name       string     `json:"name"`
	Releases   int        `json:"releases"`
	Roots      []TreeNode `json:"roots"`
	Unresolved []string   `json:"unresolved,omitempty"`
}

func runTree(cmd *cobra.Command, opts *TreeOptions) error {
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

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(buildTreeOutput(forest, families))
	}

	renderTreeText(r, forest, families)
	return nil
}

// selectFamilies narrows the forest's families to the requested package,
// or returns all of them when pkg is empty.
func selectFamilies(f *release.Forest, pkg string) ([]string, error) {
	if pkg == "" {
		return f.Families(), nil
	}
	for _, fam := range f.Families() {
		if fam == pkg {
			return []string{fam}, nil
		}
	}
	return nil, fmt.Errorf("no released versions found for package %q", pkg)
}

func buildTreeOutput(f *release.Forest, families []string) *TreeOutput {
	out := &TreeOutput{}
	for _, fam := range families {
		tf := TreeFamily{Name: fam, Releases: f.Size(fam)}
		for _, root := range f.Roots(fam) {
			tf.Roots = append(tf.Roots, buildTreeNode(f, root, false))
		}
		for _, u := range f.Unresolved(fam) {
			tf.Unresolved = append(tf.Unresolved, u.Error())
		}
		out.Families = append(out.Families, tf)
	}
	return out
}

func buildTreeNode(f *release.Forest, i int, patch bool) TreeNode {
	rec := f.Rec(i)
	node := TreeNode{
		ID:      rec.SubscriberID,
		Version: rec.Version.String(),
		Label:   rec.Name,
		Patch:   patch,
	}
	for _, c := range f.Children(i) {
		node.Children = append(node.Children,
			buildTreeNode(f, c, f.Rec(c).Version.IsPatchOf(rec.Version)))
	}
	return node
}

func renderTreeText(r *output.Renderer, f *release.Forest, families []string) {
	styles := r.Styles()
	markdown := r.EffectiveMode() == output.ModeMarkdown

	for _, fam := range families {
		if markdown {
			r.Println(output.FormatHeader(2, fmt.Sprintf("%s (%d releases)", fam, f.Size(fam))))
		} else {
			r.Printf("%s %s\n",
				styles.FamilyName.Render(fam),
				styles.Muted.Render(fmt.Sprintf("(%d releases)", f.Size(fam))),
			)
		}
		r.Println("")

		for _, root := range f.Roots(fam) {
			printTreeNode(r, f, root, "", "", false)
		}
		for _, u := range f.Unresolved(fam) {
			r.Printf("  %s %s\n", styles.Error.Render("unresolved:"), u.Error())
		}
		r.Println("")
	}
}

// printTreeNode prints one release and recurses into its children with
// box-drawing connectors. prefix is the indentation already owed to this
// depth; connector is the branch glyph for this node itself.
func printTreeNode(r *output.Renderer, f *release.Forest, i int, prefix, connector string, patch bool) {
	rec := f.Rec(i)
	styles := r.Styles()

	marker := ""
	if patch {
		marker = styles.Muted.Render(" [patch]")
	}
	r.Printf("%s%s%s %s%s\n",
		prefix,
		connector,
		styles.Bold.Render(rec.Version.String()),
		rec.SubscriberID,
		marker,
	)

	childPrefix := prefix
	if connector != "" {
		childPrefix = prefix + "    "
		if connector == "├── " {
			childPrefix = prefix + "│   "
		}
	}

	kids := f.Children(i)
	for n, c := range kids {
		next := "├── "
		if n == len(kids)-1 {
			next = "└── "
		}
		printTreeNode(r, f, c, childPrefix, next,
			f.Rec(c).Version.IsPatchOf(rec.Version))
	}
}

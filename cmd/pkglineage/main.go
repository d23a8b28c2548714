// Command pkglineage validates the release lineage of a Dev Hub's
// managed packages.
package main

import (
	"os"

	"github.com/forcelabs/pkglineage/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

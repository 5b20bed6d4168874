// Command merge_edges sums the attributes of parallel edges in an edge list.

package main

import (
	"os"

	"github.com/janelia-flyem/gprep/cli"
	"github.com/janelia-flyem/gprep/pipeline"
)

const helpMessage = `
merge_edges collapses every group of edges with the same (src, dst) into one edge
whose attributes are the element-wise sum of the group.

Usage: merge_edges [options] <src edge file> <dest edge file>

Example: merge_edges edges.txt.gz merged_edges.txt.gz

Lines are "src dst a0" or "src dst a0 a1 a2".  Output is sorted by (src, dst).
` + cli.OptionsHelp

var command = &cli.Command{
	Name:  "merge_edges",
	Help:  helpMessage,
	NArgs: 2,
	Run: func(args []string, opts pipeline.Options) error {
		_, err := pipeline.MergeEdges(args[0], args[1], opts)
		return err
	},
}

func main() {
	os.Exit(command.Main(os.Args[1:], os.Stdout, os.Stderr))
}

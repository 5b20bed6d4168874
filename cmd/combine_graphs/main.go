// Command combine_graphs joins several graphs into one, unifying nodes by their key.

package main

import (
	"flag"
	"os"

	"github.com/janelia-flyem/gprep/cli"
	"github.com/janelia-flyem/gprep/pipeline"
)

const helpMessage = `
combine_graphs reads a list file with one "<node file> <edge file>" pair per line.
Nodes with the same key text are the same node.  The first graph keeps its ids and
new nodes from later graphs are numbered after the largest id seen so far.  Edges
are relabeled and merged unless -skip-merge is given.

Usage: combine_graphs [options] <list file> <output node file> <output edge file>

Example: combine_graphs graphs.txt combined_nodes.txt.gz combined_edges.txt.gz

      -skip-merge (flag)    Write relabeled edges in input order without merging.
` + cli.OptionsHelp

var skipMerge bool

var command = &cli.Command{
	Name:  "combine_graphs",
	Help:  helpMessage,
	NArgs: 3,
	Flags: func(fs *flag.FlagSet) {
		fs.BoolVar(&skipMerge, "skip-merge", false, "")
	},
	Run: func(args []string, opts pipeline.Options) error {
		graphs, err := pipeline.ReadGraphList(args[0])
		if err != nil {
			return err
		}
		_, err = pipeline.CombineGraphs(pipeline.CombineConfig{
			Graphs:      graphs,
			OutNodeFile: args[1],
			OutEdgeFile: args[2],
			SkipMerge:   skipMerge,
		}, opts)
		return err
	},
}

func main() {
	os.Exit(command.Main(os.Args[1:], os.Stdout, os.Stderr))
}

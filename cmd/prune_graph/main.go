// Command prune_graph drops nodes whose total degree weight does not exceed a threshold.

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/janelia-flyem/gprep/cli"
	"github.com/janelia-flyem/gprep/pipeline"
)

const helpMessage = `
prune_graph keeps the nodes whose in + out weight is strictly greater than the
threshold, and the edges whose endpoints are both kept.  Kept lines are copied
unchanged.

Usage: prune_graph [options] <node file> <edge file> <node degree file> <output node file> <output edge file> <weight threshold>

Example: prune_graph nodes.txt.gz edges.txt.gz degree.txt.gz pruned_nodes.txt.gz pruned_edges.txt.gz 10
` + cli.OptionsHelp

var command = &cli.Command{
	Name:  "prune_graph",
	Help:  helpMessage,
	NArgs: 6,
	Run: func(args []string, opts pipeline.Options) error {
		threshold, err := strconv.ParseInt(args[5], 10, 64)
		if err != nil {
			return fmt.Errorf("bad weight threshold %q: %w", args[5], err)
		}
		_, err = pipeline.PruneGraph(pipeline.PruneConfig{
			NodeFile:    args[0],
			EdgeFile:    args[1],
			DegreeFile:  args[2],
			OutNodeFile: args[3],
			OutEdgeFile: args[4],
			Threshold:   threshold,
		}, opts)
		return err
	},
}

func main() {
	os.Exit(command.Main(os.Args[1:], os.Stdout, os.Stderr))
}

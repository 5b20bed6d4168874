// Command node_degree writes the weighted in and out degree of every node.

package main

import (
	"os"

	"github.com/janelia-flyem/gprep/cli"
	"github.com/janelia-flyem/gprep/pipeline"
)

const helpMessage = `
node_degree sums the weight of each node's incoming and outgoing edges.  The weight of
an edge is its first attribute.  One "id in out" line is written for every id from 0
up to the largest node id, with zeros for ids that never appear in the edge file.

Usage: node_degree [options] <edge file> <degree file>

Example: node_degree merged_edges.txt.gz degree.txt.gz
` + cli.OptionsHelp

var command = &cli.Command{
	Name:  "node_degree",
	Help:  helpMessage,
	NArgs: 2,
	Run: func(args []string, opts pipeline.Options) error {
		_, err := pipeline.NodeDegree(args[0], args[1], opts)
		return err
	},
}

func main() {
	os.Exit(command.Main(os.Args[1:], os.Stdout, os.Stderr))
}

/*
Package cli supports command line level interaction with the gprep batch tools.

Every command takes positional file arguments, in the following documentation the
type of brackets designate <required parameter> and [optional parameter]:

	merge_edges    [options] <src edge file> <dest edge file>
	node_degree    [options] <edge file> <degree file>
	prune_graph    [options] <node file> <edge file> <node degree file> <output node file> <output edge file> <weight threshold>
	combine_graphs [options] <list file> <output node file> <output edge file>

Input files may be gzip, zstd, snappy-framed or plain text and are detected
automatically.  Output files are compressed, by default with gzip or with the codec
implied by the file extension.

A command given the wrong number of arguments prints its usage and exits with status
0.  Bad input lines, invariant violations and I/O failures print an error and exit
with status 1.  Output written before a failure is left in place, finalized so it can
be inspected, and the command should simply be rerun.
*/
package cli

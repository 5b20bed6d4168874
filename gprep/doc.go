/*
	Package gprep provides types, constants, and functions that have no other dependencies
	and can be used by all packages within gprep.  This includes the line formats for
	edge, degree and node records, the error taxonomy shared by all batch operations,
	logging, TOML configuration, and progress reporting.  The batch operations themselves
	live in the pipeline package and the compressed stream codecs in the stream package.
*/
package gprep

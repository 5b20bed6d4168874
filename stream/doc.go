/*
	Package stream reads and writes the line-oriented graph files used by all gprep
	commands.  Input streams are decompressed transparently based on their leading magic
	bytes.  Output streams are compressed with gzip, zstd, or snappy framing and must be
	closed to write the codec trailer; WithWriter guarantees that.
*/
package stream

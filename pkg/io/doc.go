// Package io reads pairwise measurement files and keep lists, and writes
// reduced name sets.
//
// # Pair Format
//
// Input files hold one measurement per line, three whitespace-separated
// fields:
//
//	seqA  seqB  0.93
//	seqA  seqC  0.12
//	seqB  seqC  0.40
//
// Names are arbitrary tokens without whitespace; the value is any number
// strconv.ParseFloat accepts. Blank lines and lines starting with '#' are
// skipped. Order does not matter and both directions of a pair may appear.
//
// Lines with the wrong field count or a non-numeric value produce a
// *neighbor.FormatError carrying the line number. Whether such lines abort
// the read or are skipped is the caller's choice (see [ReadOptions]).
//
// # Keep Lists
//
// Keep files hold one name per line. Surrounding whitespace is trimmed and
// blank lines are ignored.
//
// # Output
//
// [WriteNames] writes one name per line, the format the keep reader accepts,
// so a reduced set can be fed back as a keep list.
//
// The path "-" means standard input for readers and standard output for
// writers.
package io

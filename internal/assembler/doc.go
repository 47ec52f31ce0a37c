// Package assembler drives a full fixture run: skeleton, tools, bootstrap
// team, then every package in sequence.
//
// Lifecycle order:
// - scaffold -> tools -> bootstrap team -> packages
//
// - the first failure aborts the run; files already written stay on disk
package assembler

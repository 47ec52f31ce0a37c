// Package packs builds one synthetic package: its team, its ownership
// artifact and its fan-out of generated source files.
//
// Ownership boundary:
// - package directory layout under packs/
//
// - scheme-specific ownership artifacts (.codeowner, package.yml, @team headers)
//
// - generated source stubs under app/services/<letter>/
package packs

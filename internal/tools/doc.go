// Package tools provides process execution helpers shared by the installer.
//
// Ownership boundary:
// - command execution
//
// - command failure reporting
package tools

// Package install prepares the application skeleton a fixture is generated
// into.
//
// Ownership boundary:
// - scaffold command execution and the default code_ownership.yml
//
// - fetching helper executables into the tools dir and marking them executable
//
// Nothing here retries. Every failure is returned to the caller as fatal.
package install

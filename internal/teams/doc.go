// Package teams owns team directories and descriptors under config/teams.
//
// Ownership boundary:
// - team directory provisioning (first writer wins)
//
// - team descriptor YAML, including owned_globs for team-config ownership
//
// - the fixed bootstrap team
//
// A team directory that already exists is reported as AlreadyExists, never
// as an error. Callers treat it as "package already provisioned".
package teams

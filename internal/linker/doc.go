// Package linker reconciles a project directory with its environment in the
// shared store. A run checks that the store exists, asks before clearing a
// stale environment directory or an existing .venv entry, then asks the
// external tool to create the environment, links .venv to it and, when the
// project carries a dependency manifest, runs the sync command.
//
// The filesystem, the command runner and the confirmation prompt are all
// injected, so the state machine runs against an in-memory filesystem in
// tests.
package linker

// Package runner executes the external tools venvlink delegates to (the
// environment creator and the dependency sync). Every command is echoed as
// "$ <command line>" before it runs, and runs with inherited standard
// streams in the project directory.
package runner

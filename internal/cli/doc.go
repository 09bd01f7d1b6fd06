// Package cli defines the Cobra command tree for the venvlink CLI. The root
// command reconciles the current project; status and version register
// themselves from their own files. Commands delegate to internal packages
// and only handle I/O formatting and error reporting.
package cli

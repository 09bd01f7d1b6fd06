// Package interpreter resolves the Python major.minor version that goes into
// environment identifiers, either from a pinned value or by asking the
// configured interpreter for its version.
package interpreter

// Package naming derives the environment identifier for a project directory.
// The identifier combines the lower-cased project basename, the first eight
// characters of the URL-safe base64 encoding of the SHA-256 digest of the
// absolute project path, and the interpreter's major.minor version:
//
//	myapp-OCC-Zq_6-py3.11
//
// Everything in this package is pure: no filesystem access, no errors for
// non-empty input.
package naming

// Package filesystem abstracts the handful of filesystem primitives the
// linker uses (lstat, stat, readdir, readlink, remove, remove-tree, symlink)
// behind an interface, with an OS implementation and an in-memory mock.
package filesystem

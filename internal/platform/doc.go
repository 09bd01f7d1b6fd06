// Package platform wraps the OS-specific parts of link handling. On Unix
// systems directory symlinks are native; on Windows they need developer
// mode or elevation, and creation errors say so.
package platform

// Package config manages user-level settings stored at ~/.venvlink/config.yaml.
// The file is optional; every key has a default that reproduces the plain
// "uv venv" + symlink behavior. The file is validated against an embedded
// JSON schema before it is decoded.
package config

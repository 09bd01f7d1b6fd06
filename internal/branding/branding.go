// Package branding provides compile-time identity values for the CLI.
//
// branding.yaml is embedded with //go:embed; editing it and rebuilding is
// enough to rename the binary, its dot-directory or the shared store.
package branding

import (
	_ "embed"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	StoreDir    string `yaml:"store_dir"`
	LinkName    string `yaml:"link_name"`
	GoModule    string `yaml:"go_module"`
	GitHubRepo  string `yaml:"github_repo"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:     "venvlink",
			DisplayName: "venvlink",
			Description: "Keep project virtual environments in ~/.virtualenvs and link them as .venv",
			HomeDir:     ".venvlink",
			StoreDir:    ".virtualenvs",
			LinkName:    ".venv",
			GoModule:    "github.com/venvlink/venvlink",
			GitHubRepo:  "venvlink/venvlink",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "venvlink").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the tool's own dot-directory under $HOME (e.g., ".venvlink").
func HomeDir() string { load(); return defaults.HomeDir }

// StoreDir returns the shared store directory name under $HOME (e.g., ".virtualenvs").
func StoreDir() string { load(); return defaults.StoreDir }

// LinkName returns the name of the project-local link (e.g., ".venv").
func LinkName() string { load(); return defaults.LinkName }

// GoModule returns the Go module path. Not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// GitHubRepo returns the "owner/repo" string.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

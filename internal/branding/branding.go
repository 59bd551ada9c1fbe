// Package branding provides compile-time identity values for the CLI.
//
// branding.yaml is embedded into the binary. It names the tool and the
// packages it installs by default, so a fork only needs to edit that file.
package branding

import (
	_ "embed"
	"strings"
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
	CLIName             string   `yaml:"cli_name"`
	DisplayName         string   `yaml:"display_name"`
	Description         string   `yaml:"description"`
	HomeDir             string   `yaml:"home_dir"`
	EnvPrefix           string   `yaml:"env_prefix"`
	GoModule            string   `yaml:"go_module"`
	DefaultPackage      string   `yaml:"default_package"`
	DefaultTemplate     string   `yaml:"default_template"`
	LegacyPackage       string   `yaml:"legacy_package"`
	RuntimeDependencies []string `yaml:"runtime_dependencies"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:             "create-react-app",
			DisplayName:         "Create React App",
			Description:         "Set up a modern React web app by running one command",
			HomeDir:             ".create-react-app",
			EnvPrefix:           "CRA",
			GoModule:            "github.com/cra-labs/create-react-app",
			DefaultPackage:      "react-scripts",
			DefaultTemplate:     "cra-template",
			LegacyPackage:       "react-scripts@0.9.x",
			RuntimeDependencies: []string{"react", "react-dom"},
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "create-react-app").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME.
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "CRA").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// DefaultPackage returns the scripts package installed when no version is given.
func DefaultPackage() string { load(); return defaults.DefaultPackage }

// DefaultTemplate returns the template package name and the prefix every
// shorthand template name is expanded with.
func DefaultTemplate() string { load(); return defaults.DefaultTemplate }

// LegacyPackage returns the pinned reference used when the host toolchain is
// too old for the current scripts package.
func LegacyPackage() string { load(); return defaults.LegacyPackage }

// RuntimeDependencies returns the packages installed next to the scripts
// package. The returned slice is a copy.
func RuntimeDependencies() []string {
	load()
	return append([]string(nil), defaults.RuntimeDependencies...)
}

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "CRA_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}

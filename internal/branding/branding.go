// Package branding names the product: the command, its dot-directory, its
// environment prefix and the files it reads and writes. Everything else in
// the module asks this package instead of spelling "bush" itself.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var embedded []byte

// Identity is the set of product names.
type Identity struct {
	CLIName      string `yaml:"cli_name"`
	DisplayName  string `yaml:"display_name"`
	Description  string `yaml:"description"`
	HomeDir      string `yaml:"home_dir"`
	EnvPrefix    string `yaml:"env_prefix"`
	ConfigFile   string `yaml:"config_file"`
	ManifestFile string `yaml:"manifest_file"`
}

var fallback = Identity{
	CLIName:      "bush",
	DisplayName:  "Bush",
	Description:  "Scaffold multi-package repositories from a declarative tree",
	HomeDir:      ".bush",
	EnvPrefix:    "BUSH",
	ConfigFile:   "bush.yaml",
	ManifestFile: "package.json",
}

var current = sync.OnceValue(func() Identity { return parse(embedded) })

type overlay struct {
	dst *string
	src string
}

// parse overlays the non-empty values of data on the fallback identity.
// Unreadable data yields the fallback unchanged.
func parse(data []byte) Identity {
	var doc Identity
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fallback
	}
	id := fallback
	for _, f := range []overlay{
		{&id.CLIName, doc.CLIName},
		{&id.DisplayName, doc.DisplayName},
		{&id.Description, doc.Description},
		{&id.HomeDir, doc.HomeDir},
		{&id.EnvPrefix, doc.EnvPrefix},
		{&id.ConfigFile, doc.ConfigFile},
		{&id.ManifestFile, doc.ManifestFile},
	} {
		if v := strings.TrimSpace(f.src); v != "" {
			*f.dst = v
		}
	}
	return id
}

// Current returns the identity baked into the binary.
func Current() Identity { return current() }

// CLIName is the root command name.
func CLIName() string { return current().CLIName }

// DisplayName is the product name used in help titles.
func DisplayName() string { return current().DisplayName }

func Description() string { return current().Description }

// HomeDir is the settings directory under $HOME.
func HomeDir() string { return current().HomeDir }

func EnvPrefix() string { return current().EnvPrefix }

// ConfigFile is the default repository document name.
func ConfigFile() string { return current().ConfigFile }

// ManifestFile is the per-package manifest name.
func ManifestFile() string { return current().ManifestFile }

// EnvVar turns a setting name into its environment variable:
// "fill-gaps" becomes BUSH_FILL_GAPS.
func EnvVar(setting string) string {
	return current().EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(setting, "-", "_"))
}

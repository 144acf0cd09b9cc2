package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bushkit/bush/internal/branding"
	"github.com/bushkit/bush/internal/bushfile"
	"github.com/bushkit/bush/internal/platform"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys. They double as flag names and, upper-cased with the
// branding prefix, as environment variables.
const (
	KeyRoot      = "root"
	KeyConfig    = "config"
	KeyManager   = "manager"
	KeyFillGaps  = "fill-gaps"
	KeyPrune     = "prune"
	KeyNoInstall = "no-install"
	KeyVerbose   = "verbose"
)

var boolKeys = map[string]bool{
	KeyFillGaps:  true,
	KeyPrune:     true,
	KeyNoInstall: true,
	KeyVerbose:   true,
}

// Keys lists every recognized setting.
func Keys() []string {
	return []string{KeyRoot, KeyConfig, KeyManager, KeyFillGaps, KeyPrune, KeyNoInstall, KeyVerbose}
}

// Settings are the resolved options of one invocation.
type Settings struct {
	Root      string
	Config    string
	Manager   string
	FillGaps  bool
	Prune     bool
	NoInstall bool
	Verbose   bool
}

// Dir returns the user config directory (~/.bush/). BUSH_HOME overrides it.
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("home")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the user config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// Loader layers flags, environment and the user config file.
type Loader struct {
	fs   afero.Fs
	path string
	v    *viper.Viper
}

// NewLoader returns a Loader reading the user config file at path on fsys.
func NewLoader(fsys afero.Fs, path string) *Loader {
	v := viper.New()
	v.SetFs(fsys)
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault(KeyConfig, branding.ConfigFile())
	return &Loader{fs: fsys, path: path, v: v}
}

// Path returns the user config file location.
func (l *Loader) Path() string { return l.path }

// BindFlags binds every flag in flags whose name is a setting key.
func (l *Loader) BindFlags(flags *pflag.FlagSet) error {
	for _, key := range Keys() {
		f := flags.Lookup(key)
		if f == nil {
			continue
		}
		if err := l.v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %s: %w", key, err)
		}
	}
	return nil
}

// Load reads the user config file, if present, and resolves Settings.
func (l *Loader) Load() (*Settings, error) {
	if err := l.read(l.v); err != nil {
		return nil, err
	}

	s := &Settings{
		Root:    l.v.GetString(KeyRoot),
		Config:  l.v.GetString(KeyConfig),
		Manager: l.v.GetString(KeyManager),
	}
	var err error
	for key, dst := range map[string]*bool{
		KeyFillGaps:  &s.FillGaps,
		KeyPrune:     &s.Prune,
		KeyNoInstall: &s.NoInstall,
		KeyVerbose:   &s.Verbose,
	} {
		if *dst, err = l.flag(key); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// flag reads a boolean setting with the document's yes/no vocabulary.
func (l *Loader) flag(key string) (bool, error) {
	raw := l.v.GetString(key)
	value, _, err := bushfile.ParseFlag(raw)
	if err != nil {
		return false, fmt.Errorf("setting %s: %w", key, err)
	}
	return value, nil
}

// Get returns a resolved setting as a string.
func (l *Loader) Get(key string) (string, error) {
	if err := checkKey(key); err != nil {
		return "", err
	}
	if err := l.read(l.v); err != nil {
		return "", err
	}
	return l.v.GetString(key), nil
}

// Set stores key in the user config file. Only the file's own contents are
// written; flags and environment are not persisted.
func (l *Loader) Set(key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}

	file := viper.New()
	file.SetFs(l.fs)
	file.SetConfigFile(l.path)
	file.SetConfigType(fileType)
	if err := l.read(file); err != nil {
		return err
	}

	if boolKeys[key] {
		b, _, err := bushfile.ParseFlag(value)
		if err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
		file.Set(key, b)
	} else {
		file.Set(key, value)
	}

	if err := platform.EnsureDir(l.fs, filepath.Dir(l.path)); err != nil {
		return err
	}
	if err := file.WriteConfigAs(l.path); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// List returns the settings stored in the user config file, sorted by key.
func (l *Loader) List() ([][2]string, error) {
	file := viper.New()
	file.SetFs(l.fs)
	file.SetConfigFile(l.path)
	file.SetConfigType(fileType)
	if err := l.read(file); err != nil {
		return nil, err
	}

	keys := file.AllKeys()
	sort.Strings(keys)
	out := make([][2]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, [2]string{k, file.GetString(k)})
	}
	return out, nil
}

func (l *Loader) read(v *viper.Viper) error {
	exists, err := platform.Exists(l.fs, l.path)
	if err != nil || !exists {
		return err
	}
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config file %s: %w", l.path, err)
	}
	return nil
}

func checkKey(key string) error {
	for _, k := range Keys() {
		if k == key {
			return nil
		}
	}
	return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(Keys(), ", "))
}

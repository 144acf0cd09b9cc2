// Package config resolves run settings from command-line flags, BUSH_*
// environment variables and the user config file at ~/.bush/config.yaml,
// in that order of precedence.
package config

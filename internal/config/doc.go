// Package config loads the application configuration from environment
// variables, command-line flags, and an optional JSON file, merges the
// sources, applies defaults, and validates the result.
//
// The merged configuration is injected into services at construction time;
// no package reads configuration ad hoc at request time.
package config

// Package config loads and validates YAML configuration with
// environment variable expansion.
package config

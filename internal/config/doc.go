// Package config defines the application configuration structure and loads
// it from environment variables (CURRICULA_ prefix) and an optional YAML
// config file. Loaded configuration is validated before use.
package config

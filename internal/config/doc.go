// Package config loads glide's layered configuration: built-in
// defaults overridden by an optional per-user YAML file at
// ~/.config/glide/config.yaml.
package config

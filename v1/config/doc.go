// Package config assembles the service configuration.
//
// Values are resolved in three layers: package defaults, an optional YAML
// file named by CONFIG_FILE, and environment variables. A .env file in the
// working directory is read first, so local development needs no exported
// variables. Durations accept either Go syntax ("15m") or whole seconds.
//
// Empty variables are treated as unset. Malformed values are collected and
// returned together from Load.
package config

// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win for non-zero fields):
//  1. Environment variables, seeded from a .env file when one exists
//  2. Command-line flags
//  3. YAML config file
//  4. Built-in defaults
//
// The main entry points are [GetStructuredConfig] for the API server and
// [LoadToolConfig] for command-line tools.
package config

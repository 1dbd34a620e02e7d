// Package config loads, merges, and validates the vault server configuration.
//
// Sources, from highest to lowest precedence (the first non-zero value of a
// field wins):
//  1. Command-line flags (spf13/pflag)
//  2. Environment variables, after loading an optional .env file
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry point is [GetStructuredConfig].
package config

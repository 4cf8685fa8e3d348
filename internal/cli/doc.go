// Package cli provides command-line interface setup and configuration
// for the newscast application. It handles flag parsing, command
// creation, and configuration management using cobra and viper, and
// resolves everything into a single Config passed to the pipeline.
package cli

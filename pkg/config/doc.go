// Package config loads application configuration from environment variables
// into tagged structs, with optional .env file support. Each configuration
// type is parsed once per process and cached, so components can declare and
// load their own config structs independently without re-reading the
// environment.
package config

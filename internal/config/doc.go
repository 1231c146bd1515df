// Package config defines the format-agnostic configuration model of a
// scheduling problem instance, along with the Loader interface for reading it
// from various sources.
//
// The `config.Model` is the single source of truth for the `dag` package.
// Concrete implementations of the interface, such as for HCL and YAML, are
// provided in separate packages.
package config

// Package cli turns command-line arguments into an app.Config. It owns the
// flag surface of the burstplan binary (problem path, input format, strategy
// overrides, report and logging options) and reports bad input as an
// ExitError carrying the process exit code.
package cli

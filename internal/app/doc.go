// Package app wires one scheduling run together: it loads a problem through a
// config.Loader, builds the task graph and resource pool, runs the selected
// planner and matcher, and renders the outcome as a Report. It knows nothing
// about flags or process exit codes; see the cli package for that.
package app

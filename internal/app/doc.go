// Package app wires application dependencies for the CLI.
//
// It loads the wallet Config, builds the concrete stores, the envelope codec,
// the proof suite and the high-level services from it, and exposes them via
// the Wire struct for commands to use.
package app

// Package app contains the core application logic. It wires configuration,
// the creator registry and the plan creation engine together and defines the
// lifecycle of a single plan creation run, decoupled from any specific
// entrypoint like a CLI or server.
package app

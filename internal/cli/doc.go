// Package cli turns the plancreator command line into an app.Config. It owns
// flag parsing, flag validation and the exit code of a failed invocation.
package cli

// Package config defines the format-agnostic configuration model of the
// plan creator, along with the Loader interface that concrete formats
// implement.
//
// The Model only carries settings. Command-line flags are merged on top of it
// by the app package.
package config

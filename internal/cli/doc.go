// Package cli defines the cobra command tree. Commands stay thin: they load
// settings, call into the naming/scaffold/settings packages, and report the
// outcome, so all generation logic lives behind plain function boundaries.
package cli

// Package cli turns command-line arguments into an app.Config. It owns flag
// parsing, usage text and the exit codes reported for bad input.
package cli

// Package cli parses command-line arguments into an app.Config,
// keeping flag handling out of the application logic.
package cli

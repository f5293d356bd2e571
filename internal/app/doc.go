// Package app composes the synthesis pipeline into a runnable
// application: configuration, logger setup, schema loading, the
// synthesis session, and payload decoding.
package app

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestRun_SynthesizesSchema(t *testing.T) {
	t.Parallel()

	schemaPath := writeTempFile(t, "types.hcl", `
type "party" {
  field "name" { type = string }
}

type "trade" {
  field "buyer" { type = party }
}
`)

	out := &bytes.Buffer{}
	err := run(out, []string{schemaPath})

	require.NoError(t, err)
	require.Contains(t, out.String(), "party:")
	require.Contains(t, out.String(), "trade:")
}

func TestRun_DecodesPayload(t *testing.T) {
	t.Parallel()

	schemaPath := writeTempFile(t, "types.hcl", `
type "party" {
  field "name"   { type = string }
  field "active" { type = bool }
}
`)
	payloadPath := writeTempFile(t, "payload.json", `{"name": "alice", "active": true}`)

	out := &bytes.Buffer{}
	err := run(out, []string{"-payload", payloadPath, "-type", "party", schemaPath})

	require.NoError(t, err)
	require.Contains(t, out.String(), `"alice"`)
}

func TestRun_InvalidSchemaFails(t *testing.T) {
	t.Parallel()

	schemaPath := writeTempFile(t, "types.hcl", `
type "trade" {
  field "buyer" { type = party }
`)

	out := &bytes.Buffer{}
	err := run(out, []string{schemaPath})
	require.Error(t, err)
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}
	err := run(out, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

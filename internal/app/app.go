package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/typesmith/internal/ctxlog"
	"github.com/specialistvlad/typesmith/internal/session"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// App drives one synthesis run from configuration: load the schema,
// synthesize every type it describes, and optionally decode a payload
// against one of them.
type App struct {
	out io.Writer
	cfg *Config
}

// NewApp creates an App writing its report to out.
func NewApp(out io.Writer, cfg *Config) *App {
	return &App{out: out, cfg: cfg}
}

// Run executes the synthesis run described by the App's configuration.
func (a *App) Run(ctx context.Context) error {
	logger := newLogger(a.cfg.LogLevel, a.cfg.LogFormat, os.Stderr)
	ctx = ctxlog.WithLogger(ctx, logger)

	src, err := os.ReadFile(a.cfg.SchemaPath)
	if err != nil {
		return fmt.Errorf("reading schema document: %w", err)
	}

	sess := session.New()
	if err := sess.Seed(ctx, a.cfg.SchemaPath, src); err != nil {
		return err
	}
	if err := sess.Synthesize(ctx); err != nil {
		return err
	}

	names := sess.Registry().Names()
	logger.Info("Synthesis complete.", "type_count", len(names))
	for _, name := range names {
		handle, _ := sess.Registry().Lookup(name)
		fmt.Fprintf(a.out, "%s: %s\n", name, handle.Type().FriendlyName())
	}

	if a.cfg.PayloadPath == "" {
		return nil
	}

	payload, err := os.ReadFile(a.cfg.PayloadPath)
	if err != nil {
		return fmt.Errorf("reading payload: %w", err)
	}
	record, err := sess.Decode(ctx, a.cfg.TypeName, payload)
	if err != nil {
		return err
	}

	encoded, err := ctyjson.Marshal(record.Value(), record.Handle().Type())
	if err != nil {
		return fmt.Errorf("re-encoding decoded record: %w", err)
	}
	fmt.Fprintf(a.out, "%s\n", encoded)
	return nil
}

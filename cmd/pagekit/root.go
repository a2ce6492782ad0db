package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/goliatone/go-pagekit"
	"github.com/spf13/cobra"
)

// moduleBuilder is swapped in tests.
var moduleBuilder = pagekit.New

type app struct {
	cfg    pagekit.Config
	pretty bool
	out    io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: pagekit.DefaultConfig()}

	cmd := &cobra.Command{
		Use:          "pagekit",
		Short:        "Edit personal page documents and preview rich text",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Show the stored document
  pagekit doc show --handle ada --local-driver sqlite --local-dsn ./pagekit.db

  # Append a skills block and move it to the top
  pagekit doc add skills chips
  pagekit doc move 2 0

  # Preview markup
  pagekit parse "Built with **Go** #go" --logo go=https://go.dev/logo.png
`),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.out = cmd.OutOrStdout()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfg.Handle, "handle", a.cfg.Handle, "document handle")
	flags.DurationVar(&a.cfg.Persistence.Debounce, "debounce", a.cfg.Persistence.Debounce, "save debounce")
	flags.IntVar(&a.cfg.History.Limit, "history-limit", a.cfg.History.Limit, "undo history depth")
	flags.StringVar(&a.cfg.Local.Driver, "local-driver", a.cfg.Local.Driver, "local cache driver (memory|sqlite)")
	flags.StringVar(&a.cfg.Local.DSN, "local-dsn", a.cfg.Local.DSN, "local cache DSN")
	flags.StringVar(&a.cfg.Remote.Provider, "remote", a.cfg.Remote.Provider, "remote store (none|memory|http|redis|sql|object)")
	flags.StringVar(&a.cfg.Remote.URL, "remote-url", "", "remote URL for http and redis stores")
	flags.StringVar(&a.cfg.Remote.Token, "remote-token", "", "bearer token for the http store")
	flags.StringVar(&a.cfg.Remote.Driver, "remote-driver", "", "sql store driver (sqlite|postgres)")
	flags.StringVar(&a.cfg.Remote.DSN, "remote-dsn", "", "sql store DSN")
	flags.StringVar(&a.cfg.Remote.Endpoint, "remote-endpoint", "", "object store endpoint")
	flags.StringVar(&a.cfg.Remote.Bucket, "remote-bucket", "", "object store bucket")
	flags.StringVar(&a.cfg.Remote.AccessKey, "remote-access-key", "", "object store access key")
	flags.StringVar(&a.cfg.Remote.SecretKey, "remote-secret-key", "", "object store secret key")
	flags.BoolVar(&a.cfg.Remote.Secure, "remote-secure", false, "use TLS for the object store")
	flags.DurationVar(&a.cfg.Remote.Timeout, "remote-timeout", a.cfg.Remote.Timeout, "remote call timeout")
	flags.StringVar(&a.cfg.Logging.Provider, "log-provider", a.cfg.Logging.Provider, "logger (console|gologger)")
	flags.StringVar(&a.cfg.Logging.Level, "log-level", "warn", "log level")
	flags.BoolVar(&a.pretty, "pretty", true, "indent JSON output")

	cmd.AddCommand(
		newDocCmd(a),
		newParseCmd(a),
		newImportCmd(a),
		newBlocksCmd(a),
	)
	return cmd
}

// withSession opens the document, runs fn and flushes edits on the way out.
func (a *app) withSession(ctx context.Context, fn func(mod *pagekit.Module) error) (err error) {
	mod, err := moduleBuilder(ctx, a.cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if closeErr := mod.Close(closeCtx); closeErr != nil && err == nil {
			err = fmt.Errorf("save: %w", closeErr)
		}
	}()

	if _, err := mod.Open(ctx); err != nil {
		return err
	}
	return fn(mod)
}

func (a *app) writeJSON(v any) error {
	enc := json.NewEncoder(a.out)
	if a.pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

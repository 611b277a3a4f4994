package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/hpark/clipvault/internal/classify"
	"github.com/hpark/clipvault/internal/clipboard"
	"github.com/hpark/clipvault/internal/config"
	"github.com/hpark/clipvault/internal/errors"
	"github.com/hpark/clipvault/internal/events"
	"github.com/hpark/clipvault/internal/monitor"
	"github.com/hpark/clipvault/internal/ops"
	"github.com/hpark/clipvault/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "clipvault",
		Usage:   "Clipboard history with automatic classification",
		Version: Version,
		Commands: []*cli.Command{
			watchCmd(db, cfg),
			listCmd(db),
			filterCmd(db),
			searchCmd(db),
			showCmd(db),
			copyCmd(db),
			clearCmd(db),
			countCmd(db),
			exportCmd(db),
			serveCmd(db, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// watchCmd creates the watch command.
func watchCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Monitor the OS clipboard and record history until interrupted",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "Do not print captured entries"},
		},
		Action: func(c *cli.Context) error {
			bus := events.NewBus(cfg.EventBufferSize)
			m := monitor.New(clipboard.NewSystem(), db, classify.New(), bus, cfg, nil)

			if !c.Bool("quiet") {
				sub := bus.Subscribe()
				defer sub.Close()
				go func() {
					for e := range sub.C() {
						fmt.Printf("[%s] %s (%d chars) %s\n", e.Category, e.ID, e.CharCount, firstLine(e.Content))
					}
				}()
			}

			if err := m.Start(); err != nil {
				return outputError(err)
			}
			fmt.Fprintln(os.Stderr, "watching clipboard, press Ctrl+C to stop")

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh

			m.Stop()
			fmt.Fprintf(os.Stderr, "stopped: %d captured, %d read failures, %d append failures\n",
				m.Accepted(), m.ReadFailures(), m.AppendFailures())
			return nil
		},
	}
}

// listCmd creates the list command.
func listCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List history entries, most recent first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum entries to return (default: all)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.List(c.Context, db, ops.ListInput{
				Limit: c.Int("limit"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// filterCmd creates the filter command.
func filterCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "filter",
		Usage:     "List history entries of a single category",
		ArgsUsage: "<category>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum entries to return (default: all)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("category argument is required"))
			}
			output, err := ops.Filter(c.Context, db, ops.FilterInput{
				Category: c.Args().First(),
				Limit:    c.Int("limit"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// searchCmd creates the search command.
func searchCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search history by substring, case-insensitive",
		ArgsUsage: "<term>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum entries to return (default: all)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("search term argument is required"))
			}
			output, err := ops.Search(c.Context, db, ops.SearchInput{
				Term:  c.Args().First(),
				Limit: c.Int("limit"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// showCmd creates the show command.
func showCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a single history entry by ID",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("id argument is required"))
			}
			output, err := ops.Fetch(c.Context, db, ops.FetchInput{
				ID: c.Args().First(),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// copyCmd creates the copy command.
func copyCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "copy",
		Usage:     "Restore an entry's content to the OS clipboard",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("id argument is required"))
			}
			output, err := ops.Recopy(c.Context, db, clipboard.NewSystem(), ops.RecopyInput{
				ID: c.Args().First(),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// clearCmd creates the clear command.
func clearCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "Remove ALL history entries",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "Skip confirmation"},
		},
		Action: func(c *cli.Context) error {
			if !c.Bool("force") {
				return outputError(errors.NewInvalidRequest("pass --force to clear all history"))
			}
			output, err := ops.Clear(c.Context, db)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// countCmd creates the count command.
func countCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "count",
		Usage: "Count history entries",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "by-category", Usage: "Break the count down per category"},
		},
		Action: func(c *cli.Context) error {
			if c.Bool("by-category") {
				output, err := ops.Stats(c.Context, db)
				if err != nil {
					return outputError(err)
				}
				return outputJSON(output)
			}
			output, err := ops.CountEntries(c.Context, db)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export history as JSONL",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Export file path (default: stdout)"},
		},
		Action: func(c *cli.Context) error {
			path := c.String("path")
			if path == "" {
				_, err := ops.Export(c.Context, db, os.Stdout)
				if err != nil {
					return outputError(err)
				}
				return nil
			}

			f, err := os.Create(path)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			output, err := ops.Export(c.Context, db, f)
			if cerr := f.Close(); err == nil && cerr != nil {
				err = errors.NewInternal(cerr)
			}
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Address to bind to"},
			&cli.IntFlag{Name: "port", Value: 8123, Usage: "Port to listen on"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(db, cfg, clipboard.NewSystem(), Version, c.String("bind"), c.Int("port"))
			return web.Run(srv)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if vErr, ok := err.(*errors.VaultError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", vErr.Code, vErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// firstLine returns content up to the first newline, truncated for display.
func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			s = s[:i]
			break
		}
	}
	runes := []rune(s)
	if len(runes) > 80 {
		return string(runes[:80]) + "…"
	}
	return s
}

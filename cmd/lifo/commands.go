package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/mholzen/lifo/pkg/collections"
	"github.com/mholzen/lifo/pkg/mcp"
	"github.com/mholzen/lifo/pkg/script"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func getRootCommand() *cli.Command {
	var closeLog func() error
	return &cli.Command{
		Name:  "lifo",
		Usage: "Run operations against a linked LIFO stack of 32-bit integers",
		Flags: getLoggingFlags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			var err error
			closeLog, err = setupLogging(cmd.String("log-level"), cmd.String("log-file"))
			return ctx, err
		},
		After: func(ctx context.Context, cmd *cli.Command) error {
			if closeLog == nil {
				return nil
			}
			return closeLog()
		},
		Commands: getCommands(),
	}
}

func getCommands() []*cli.Command {
	return []*cli.Command{
		getRunCommand(),
		getTeardownCommand(),
		getMcpCommand(),
		getServeCommand(),
		getVersionCommand(),
	}
}

func getRunCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Apply a script of stack operations to a fresh stack",
		UsageText: "lifo run [<file>] [options]",
		Description: `Reads one operation per line: push <n> [<n>...], pop, peek, empty, clear.
Blank lines and lines starting with # are ignored.

Examples:
  printf 'push 1 2 3\npop\npeek\n' | lifo run
  lifo run ops.txt --format=json`,
		Arguments: getScriptArguments(),
		Flags:     []cli.Flag{getFormatFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format := cmd.String("format")
			if err := validateFormat(format); err != nil {
				return err
			}

			var r io.Reader = cmd.Root().Reader
			if path := cmd.StringArg("file"); path != "-" && path != "" {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("cannot open script: %w", err)
				}
				defer f.Close()
				r = f
			}

			return runScript(r, cmd.Root().Writer, format)
		},
	}
}

func runScript(r io.Reader, w io.Writer, format string) error {
	ops, err := script.Parse(r)
	if err != nil {
		return fmt.Errorf("cannot parse script: %w", err)
	}
	slog.Info("parsed script", "operations", len(ops))

	stack := collections.New[int32]()
	defer stack.Clear()

	return printResults(w, script.Run(stack, ops), format)
}

func getTeardownCommand() *cli.Command {
	return &cli.Command{
		Name:      "teardown",
		Usage:     "Build a long chain and clear it one node at a time",
		UsageText: "lifo teardown [--count N]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Value:   1_000_000,
				Usage:   "Number of elements to push before clearing",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			count := cmd.Int("count")
			if count < 0 {
				return fmt.Errorf("count must be a non-negative integer")
			}
			elapsed := teardown(count)
			fmt.Fprintf(cmd.Root().Writer, "cleared %d elements in %s\n", count, elapsed)
			return nil
		},
	}
}

func teardown(count int) time.Duration {
	stack := collections.New[int32]()
	for i := 0; i < count; i++ {
		stack.Push(int32(i))
	}

	start := time.Now()
	stack.Clear()
	elapsed := time.Since(start)
	slog.Info("cleared stack", "count", count, "elapsed", elapsed)
	return elapsed
}

func getMcpCommand() *cli.Command {
	return &cli.Command{
		Name:      "mcp",
		Usage:     "Run as MCP server (stdio transport)",
		UsageText: "lifo mcp [options]",
		Description: `Start an MCP server holding one stack for the lifetime of the process.

Tool groups:
  read   Peek, Empty
  write  Push, Pop, Clear
  all    All available tools (default)

Examples:
  lifo mcp                   # All tools
  lifo mcp --expose=read     # Inspect only
  lifo mcp --expose=push,pop # Specific tools only`,
		Flags: []cli.Flag{getExposeFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return mcp.RunServer(ctx, mcp.Config{
				Expose:  cmd.String("expose"),
				Version: version,
			})
		},
	}
}

func getServeCommand() *cli.Command {
	return &cli.Command{
		Name:      "serve",
		Usage:     "Run as MCP server (streamable HTTP transport)",
		UsageText: "lifo serve [options]",
		Description: `Start an MCP server over HTTP. Every client shares the same stack.

Examples:
  lifo serve --addr=:8080
  lifo serve --addr=localhost:8080 --cors --allowed-origins=http://localhost:3000`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Value: ":8080",
				Usage: "Address to listen on (e.g., :8080 or localhost:8080)",
			},
			&cli.StringFlag{
				Name:  "endpoint",
				Value: "/mcp",
				Usage: "Path of the MCP endpoint",
			},
			getExposeFlag(),
			&cli.BoolFlag{
				Name:  "cors",
				Usage: "Enable CORS headers for browser-based clients",
			},
			&cli.StringSliceFlag{
				Name:  "allowed-origins",
				Usage: "Allowed CORS origins (default: all)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return mcp.RunHTTPServer(ctx, mcp.HTTPConfig{
				Config: mcp.Config{
					Expose:  cmd.String("expose"),
					Version: version,
				},
				Addr:           cmd.String("addr"),
				EndpointPath:   cmd.String("endpoint"),
				EnableCORS:     cmd.Bool("cors"),
				AllowedOrigins: cmd.StringSlice("allowed-origins"),
			})
		},
	}
}

func getVersionCommand() *cli.Command {
	return &cli.Command{
		Name:      "version",
		Usage:     "Show version information",
		UsageText: "lifo version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			w := cmd.Root().Writer
			fmt.Fprintf(w, "lifo version %s\n", version)
			fmt.Fprintf(w, "commit: %s\n", commit)
			fmt.Fprintf(w, "built: %s\n", date)
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/urfave/cli/v3"
)

func getLoggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "warn",
			Usage:   "Log level: debug, info, warn, error",
			Sources: cli.EnvVars("LIFO_LOG_LEVEL"),
		},
		&cli.StringFlag{
			Name:    "log-file",
			Usage:   "Write logs to this file instead of stderr",
			Sources: cli.EnvVars("LIFO_LOG_FILE"),
		},
	}
}

func getFormatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: text or json",
	}
}

func validateFormat(format string) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("format must be 'text' or 'json'")
	}
	return nil
}

func getExposeFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "expose",
		Value:   "all",
		Usage:   "Tools to expose: read, write, all, or comma-separated tool names",
		Sources: cli.EnvVars("LIFO_EXPOSE"),
	}
}

func getScriptArguments() []cli.Argument {
	return []cli.Argument{
		&cli.StringArg{
			Name:      "file",
			Value:     "-",
			UsageText: "<file> (default: stdin)",
		},
	}
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
)

const usage = `Usage: %s <command> [flags] [args]

Commands:
  to-schema      translate form declarations into JSON Schema documents
  to-form        translate a JSON Schema document into a form declaration
  check          check a schema document for invalid properties
  validate       validate a JSON value against one schema property
  fill           prompt for every property of a schema and print the answers
  config-schema  print the JSON Schema of the environment configuration
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	name := filepath.Base(os.Args[0])
	if len(args) == 0 {
		fmt.Fprintf(stderr, usage, name)
		return 2
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	level, err := cfg.level()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	app := &app{cfg: cfg, logger: logger, stdout: stdout, stderr: stderr}

	var cmdErr error
	switch args[0] {
	case "to-schema":
		cmdErr = app.toSchema(ctx, args[1:])
	case "to-form":
		cmdErr = app.toForm(ctx, args[1:])
	case "check":
		cmdErr = app.check(ctx, args[1:])
	case "validate":
		cmdErr = app.validate(ctx, args[1:])
	case "fill":
		cmdErr = app.fill(ctx, args[1:])
	case "config-schema":
		cmdErr = app.configSchema()
	case "-h", "-help", "--help", "help":
		fmt.Fprintf(stdout, usage, name)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		fmt.Fprintf(stderr, usage, name)
		return 2
	}

	switch {
	case cmdErr == nil:
		return 0
	case errors.Is(cmdErr, flag.ErrHelp):
		return 0
	case errors.Is(cmdErr, errFailed):
		return 1
	default:
		logger.Error("formschema: command failed", slog.String("command", args[0]), slog.Any("err", cmdErr))
		return 1
	}
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-formschema/internal/loader"
	"github.com/goliatone/go-formschema/pkg/formspec"
	"github.com/goliatone/go-formschema/pkg/orchestrator"
	"github.com/goliatone/go-formschema/pkg/prompt"
	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/validation"
)

// errFailed reports a command that already printed its own diagnostics.
var errFailed = errors.New("failed")

type app struct {
	cfg    Config
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func (a *app) loader() schema.Loader {
	return loader.New(schema.NewLoaderOptions(schema.WithHTTPFallback(a.cfg.HTTPTimeout)))
}

func (a *app) orchestrator(extra ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	options, err := a.cfg.orchestratorOptions(a.logger)
	if err != nil {
		return nil, err
	}
	return orchestrator.New(append(options, extra...)...), nil
}

func (a *app) loadSchema(ctx context.Context, arg string) (schema.Source, schema.Document, error) {
	src, err := schema.SourceFromArg(arg)
	if err != nil {
		return nil, schema.Document{}, err
	}
	doc, err := a.loader().Load(ctx, src)
	if err != nil {
		return nil, schema.Document{}, err
	}
	return src, doc, nil
}

func (a *app) toSchema(ctx context.Context, args []string) error {
	fs := a.flagSet("to-schema")
	out := fs.String("out", "", "output file for one input, or directory for several (stdout if empty)")
	format := fs.String("format", "json", "output encoding: json or yaml")
	preset := fs.String("preset", "", "JSON preset applied to every generated schema")
	watch := fs.Bool("watch", false, "regenerate when an input file changes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	inputs := fs.Args()
	if len(inputs) == 0 {
		return errors.New("to-schema: at least one form declaration is required")
	}
	encoding, err := parseEncoding(*format)
	if err != nil {
		return err
	}

	var extra []orchestrator.Option
	if *preset != "" {
		transformer, err := orchestrator.NewJSONPresetTransformerFromFS(os.DirFS(filepath.Dir(*preset)), filepath.Base(*preset))
		if err != nil {
			return err
		}
		extra = append(extra, orchestrator.WithSchemaTransformer(transformer))
	}
	orch, err := a.orchestrator(extra...)
	if err != nil {
		return err
	}

	convert := func(ctx context.Context) error {
		return a.convertAll(ctx, orch, inputs, *out, encoding)
	}
	if !*watch {
		return convert(ctx)
	}
	if err := convert(ctx); err != nil {
		a.logger.Error("formschema: conversion failed", slog.Any("err", err))
	}
	return watchFiles(ctx, a.logger, inputs, convert)
}

func (a *app) convertAll(ctx context.Context, orch *orchestrator.Orchestrator, inputs []string, out string, encoding schema.Encoding) error {
	results := make([][]byte, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for idx, input := range inputs {
		idx, input := idx, input
		g.Go(func() error {
			raw, err := a.convertOne(gctx, orch, input, encoding)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			results[idx] = raw
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	switch {
	case out == "":
		for _, raw := range results {
			if _, err := a.stdout.Write(raw); err != nil {
				return err
			}
		}
		return nil
	case len(inputs) == 1:
		return writeFile(out, results[0])
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return err
	}
	for idx, input := range inputs {
		target := filepath.Join(out, stem(input)+".schema."+string(encoding))
		if err := writeFile(target, results[idx]); err != nil {
			return err
		}
		a.logger.Info("formschema: schema written", slog.String("input", input), slog.String("output", target))
	}
	return nil
}

func (a *app) convertOne(ctx context.Context, orch *orchestrator.Orchestrator, input string, encoding schema.Encoding) ([]byte, error) {
	src, err := schema.SourceFromArg(input)
	if err != nil {
		return nil, err
	}
	doc, err := formspec.Load(ctx, a.loader(), src)
	if err != nil {
		return nil, err
	}
	form, err := formspec.Build(doc, orch.Registry())
	if err != nil {
		return nil, err
	}
	s, err := orch.FormToSchema(form)
	if err != nil {
		return nil, err
	}
	return schema.Marshal(s, encoding)
}

func (a *app) toForm(ctx context.Context, args []string) error {
	fs := a.flagSet("to-form")
	library := fs.String("library", a.cfg.Library, "destination form library")
	interactive := fs.Bool("interactive", false, "choose the destination library with a prompt when none is set")
	format := fs.String("format", "yaml", "output: yaml, json or dump")
	out := fs.String("out", "", "output file (stdout if empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("to-form: exactly one schema source is required")
	}

	orch, err := a.orchestrator()
	if err != nil {
		return err
	}
	destination := strings.TrimSpace(*library)
	if destination == "" && *interactive {
		destination, err = chooseLibrary(ctx, prompt.NewSurveyDriver(a.stderr), orch.Registry().List())
		if err != nil {
			return err
		}
	}
	if destination == "" {
		return errors.New("to-form: -library or FORMSCHEMA_LIBRARY is required")
	}

	_, doc, err := a.loadSchema(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	s, err := schema.ParseDocument(doc)
	if err != nil {
		return err
	}
	form, err := orch.SchemaToForm(s, destination)
	if err != nil {
		return err
	}

	var raw []byte
	switch strings.ToLower(*format) {
	case "dump":
		dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
		raw = []byte(dumper.Sdump(form.Fields()))
	default:
		encoding, err := parseEncoding(*format)
		if err != nil {
			return err
		}
		declared, err := formspec.FromForm(form, orch.Registry())
		if err != nil {
			return err
		}
		if raw, err = formspec.Marshal(declared, encoding); err != nil {
			return err
		}
	}
	if *out != "" {
		return writeFile(*out, raw)
	}
	_, err = a.stdout.Write(raw)
	return err
}

func chooseLibrary(ctx context.Context, driver prompt.Driver, libraries []string) (string, error) {
	if len(libraries) == 0 {
		return "", errors.New("to-form: no libraries registered")
	}
	idx, err := driver.Select(ctx, prompt.SelectConfig{
		Message: "Destination library",
		Options: libraries,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(libraries) {
		return "", errors.New("to-form: no library selected")
	}
	return libraries[idx], nil
}

func (a *app) check(ctx context.Context, args []string) error {
	fs := a.flagSet("check")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("check: at least one schema source is required")
	}

	failed := false
	for _, arg := range fs.Args() {
		src, doc, err := a.loadSchema(ctx, arg)
		if err != nil {
			return err
		}
		result := validation.ValidateJSONSchema(ctx, src, doc.Raw())
		if result.Valid {
			fmt.Fprintf(a.stdout, "%s: ok\n", arg)
			continue
		}
		failed = true
		for _, issue := range result.Issues {
			location := issue.Path
			if location == "" {
				location = "#"
			}
			fmt.Fprintf(a.stderr, "%s: %s -> %s\n", arg, location, issue.Message)
		}
	}
	if failed {
		return errFailed
	}
	return nil
}

func (a *app) validate(ctx context.Context, args []string) error {
	fs := a.flagSet("validate")
	field := fs.String("field", "", "schema property to validate against")
	value := fs.String("value", "null", "JSON encoded value")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 || *field == "" {
		return errors.New("validate: -field and one schema source are required")
	}

	_, doc, err := a.loadSchema(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	s, err := schema.ParseDocument(doc)
	if err != nil {
		return err
	}
	frag, ok := s.Property(*field)
	if !ok {
		return fmt.Errorf("validate: property %q not found", *field)
	}
	var decoded any
	if err := json.Unmarshal([]byte(*value), &decoded); err != nil {
		return fmt.Errorf("validate: value is not JSON: %w", err)
	}
	if err := validation.ValidateValue(frag, decoded); err != nil {
		fmt.Fprintf(a.stderr, "%s: %v\n", *field, err)
		return errFailed
	}
	fmt.Fprintf(a.stdout, "%s: ok\n", *field)
	return nil
}

func (a *app) fill(ctx context.Context, args []string) error {
	fs := a.flagSet("fill")
	format := fs.String("format", "json", "output: json, form or pretty")
	prefill := fs.String("prefill", "", "JSON object with suggested answers")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("fill: exactly one schema source is required")
	}

	var suggested map[string]any
	if *prefill != "" {
		if err := json.Unmarshal([]byte(*prefill), &suggested); err != nil {
			return fmt.Errorf("fill: prefill is not a JSON object: %w", err)
		}
	}
	_, doc, err := a.loadSchema(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	s, err := schema.ParseDocument(doc)
	if err != nil {
		return err
	}

	filler := prompt.New(
		prompt.WithDriver(prompt.NewSurveyDriver(a.stderr)),
		prompt.WithOutputFormat(prompt.OutputFormat(*format)),
		prompt.WithMarkerResolver(orchestrator.DefaultRegistry()),
	)
	raw, err := filler.Render(ctx, s, suggested)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, string(raw))
	return err
}

func (a *app) configSchema() error {
	raw, err := configSchema()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, string(raw))
	return err
}

func parseEncoding(value string) (schema.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "json", "":
		return schema.EncodingJSON, nil
	case "yaml", "yml":
		return schema.EncodingYAML, nil
	}
	return "", fmt.Errorf("unsupported format %q", value)
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// Package prompt fills a schema interactively: each property becomes a
// terminal prompt chosen from its kind and widget, and every answer is
// checked against the property's fragment before it is accepted.
package prompt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/goliatone/go-formschema/pkg/model"
	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/validation"
	"github.com/goliatone/go-formschema/pkg/widgets"
)

// OutputFormat controls how collected values are serialised.
type OutputFormat string

const (
	OutputFormatJSON           OutputFormat = "json"
	OutputFormatFormURLEncoded OutputFormat = "form"
	OutputFormatPrettyText     OutputFormat = "pretty"
)

// Values holds answers in schema property order.
type Values = orderedmap.OrderedMap[string, any]

// Option configures a Filler.
type Option func(*Filler)

// WithDriver overrides the terminal driver.
func WithDriver(driver Driver) Option {
	return func(f *Filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithOutputFormat selects the Render serialisation.
func WithOutputFormat(format OutputFormat) Option {
	return func(f *Filler) {
		if format != "" {
			f.format = format
		}
	}
}

// WithMarkerResolver lets origin markers pick the kind, as when decoding
// into a library.
func WithMarkerResolver(resolver model.MarkerResolver) Option {
	return func(f *Filler) {
		f.resolver = resolver
	}
}

// WithTables overrides the resolution tables.
func WithTables(tables *model.Tables) Option {
	return func(f *Filler) {
		if tables != nil {
			f.tables = tables
		}
	}
}

// WithWidgetRegistry overrides the registry that picks a widget when the
// fragment carries none.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(f *Filler) {
		if registry != nil {
			f.widgets = registry
		}
	}
}

// Filler prompts for every property of a schema.
type Filler struct {
	driver   Driver
	format   OutputFormat
	resolver model.MarkerResolver
	tables   *model.Tables
	widgets  *widgets.Registry
}

// New constructs a Filler using the survey driver and JSON output.
func New(options ...Option) *Filler {
	f := &Filler{
		format:  OutputFormatJSON,
		tables:  model.DefaultTables(),
		widgets: widgets.Default(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	if f.driver == nil {
		f.driver = NewSurveyDriver(nil)
	}
	return f
}

// Fill prompts for each property in order. prefill values replace schema
// defaults as the suggested answers.
func (f *Filler) Fill(ctx context.Context, s *schema.Schema, prefill map[string]any) (*Values, error) {
	if ctx == nil {
		return nil, errors.New("prompt: context is required")
	}
	if s == nil {
		return nil, errors.New("prompt: schema is nil")
	}

	values := orderedmap.New[string, any]()
	err := s.Range(func(name string, frag *schema.Fragment) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		desc, err := model.Decode(frag, f.tables, f.resolver)
		if err != nil {
			return fmt.Errorf("prompt: %s: %w", name, err)
		}
		if value, ok := prefill[name]; ok {
			desc.Default = value
		}
		widget, _ := f.widgets.Resolve(desc)

		value, err := f.ask(ctx, field{name: name, frag: frag, desc: desc, widget: widget})
		if err != nil {
			return err
		}
		values.Set(name, value)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}

// Render fills s and serialises the answers in the configured format.
func (f *Filler) Render(ctx context.Context, s *schema.Schema, prefill map[string]any) ([]byte, error) {
	values, err := f.Fill(ctx, s, prefill)
	if err != nil {
		return nil, err
	}
	return Serialize(values, f.format)
}

type field struct {
	name   string
	frag   *schema.Fragment
	desc   model.Descriptor
	widget string
}

func (fd field) label() string {
	if fd.desc.Title != "" {
		return fd.desc.Title
	}
	return fd.name
}

func (f *Filler) ask(ctx context.Context, fd field) (any, error) {
	for {
		value, err := f.askOnce(ctx, fd)
		if err != nil {
			return nil, err
		}
		if err := f.check(fd, value); err != nil {
			_ = f.driver.Info(ctx, fmt.Sprintf("Invalid %s: %v", fd.name, err))
			continue
		}
		return value, nil
	}
}

func (f *Filler) check(fd field, value any) error {
	items, multiple := value.([]any)
	if !multiple {
		return validation.ValidateValue(fd.frag, value)
	}
	if len(items) == 0 && !fd.desc.Optional {
		return errors.New("select at least one choice")
	}
	for _, item := range items {
		if err := validation.ValidateValue(fd.frag, item); err != nil {
			return err
		}
	}
	return nil
}

func (f *Filler) askOnce(ctx context.Context, fd field) (any, error) {
	desc := fd.desc
	help := desc.Description

	switch {
	case desc.Kind == model.KindBoolean:
		current, _ := desc.Default.(bool)
		return f.driver.Confirm(ctx, ConfirmConfig{Message: fd.label(), Default: current, Help: help})

	case isMultiple(fd):
		options := stringify(desc.Constraints.Choices)
		indices, err := f.driver.MultiSelect(ctx, SelectConfig{
			Message:  fd.label(),
			Options:  options,
			Defaults: defaultIndices(options, desc.Default),
			Help:     help,
		})
		if err != nil {
			return nil, err
		}
		picked := make([]any, 0, len(indices))
		for _, idx := range indices {
			if idx >= 0 && idx < len(options) {
				picked = append(picked, desc.Constraints.Choices[idx])
			}
		}
		return picked, nil

	case len(desc.Constraints.Choices) > 0:
		options := stringify(desc.Constraints.Choices)
		idx, err := f.driver.Select(ctx, SelectConfig{
			Message:      fd.label(),
			Options:      options,
			DefaultIndex: indexOf(options, fmt.Sprint(desc.Default)),
			Help:         help,
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(options) {
			return nil, nil
		}
		return desc.Constraints.Choices[idx], nil
	}

	current := ""
	if desc.Default != nil {
		current = fmt.Sprint(desc.Default)
	}

	var (
		answer string
		err    error
	)
	switch fd.widget {
	case widgets.WidgetPassword:
		answer, err = f.driver.Password(ctx, InputConfig{Message: fd.label(), Help: help})
	case widgets.WidgetTextArea:
		answer, err = f.driver.TextArea(ctx, TextAreaConfig{Message: fd.label(), Default: current, Help: help})
	default:
		answer, err = f.driver.Input(ctx, InputConfig{Message: fd.label(), Default: current, Help: help})
	}
	if err != nil {
		return nil, err
	}
	return coerce(desc.Kind, answer)
}

func isMultiple(fd field) bool {
	if fd.desc.Kind == model.KindChoiceMultiple {
		return true
	}
	return fd.widget == widgets.WidgetSelectMultiple || fd.widget == widgets.WidgetCheckboxMultiple
}

// coerce parses a typed answer. Blank answers become nil so optional
// properties can be skipped.
func coerce(kind model.Kind, answer string) (any, error) {
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		return nil, nil
	}
	switch kind {
	case model.KindInteger:
		value, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return answer, nil
		}
		return value, nil
	case model.KindDecimal, model.KindFloat:
		value, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return answer, nil
		}
		return value, nil
	}
	return answer, nil
}

func stringify(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, fmt.Sprint(v))
	}
	return out
}

func defaultIndices(options []string, current any) []int {
	items, ok := current.([]any)
	if !ok {
		return nil
	}
	return indicesOf(options, stringify(items))
}

// Serialize encodes values in the requested format.
func Serialize(values *Values, format OutputFormat) ([]byte, error) {
	if values == nil {
		values = orderedmap.New[string, any]()
	}
	switch format {
	case OutputFormatFormURLEncoded:
		form := url.Values{}
		for pair := values.Oldest(); pair != nil; pair = pair.Next() {
			switch v := pair.Value.(type) {
			case nil:
			case []any:
				for _, item := range v {
					form.Add(pair.Key, fmt.Sprint(item))
				}
			default:
				form.Set(pair.Key, fmt.Sprint(v))
			}
		}
		return []byte(form.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		for pair := values.Oldest(); pair != nil; pair = pair.Next() {
			fmt.Fprintf(&b, "%s=%v\n", pair.Key, pair.Value)
		}
		return []byte(b.String()), nil
	case OutputFormatJSON, "":
		return json.Marshal(values)
	}
	return nil, fmt.Errorf("prompt: unsupported output format %q", format)
}

package orchestrator

import (
	"errors"
	"fmt"
	"html"
	"log/slog"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formschema/pkg/formlib"
	"github.com/goliatone/go-formschema/pkg/forms/attrform"
	"github.com/goliatone/go-formschema/pkg/forms/chainform"
	"github.com/goliatone/go-formschema/pkg/model"
	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/widgets"
)

// Policy decides what a form-level translation does when one field fails.
type Policy int

const (
	// PolicyAbort returns the first field error.
	PolicyAbort Policy = iota
	// PolicySkip drops the failing field, reports a Warning and continues.
	PolicySkip
)

// Warning describes a field dropped under PolicySkip.
type Warning struct {
	Field string
	Err   error
}

func (w Warning) Error() string {
	return fmt.Sprintf("field %q skipped: %v", w.Field, w.Err)
}

func (w Warning) Unwrap() error { return w.Err }

// Sanitizer cleans free text copied into a schema. *bluemonday.Policy
// satisfies it.
type Sanitizer interface {
	Sanitize(input string) string
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithTables injects custom keyword and resolution tables.
func WithTables(tables *model.Tables) Option {
	return func(o *Orchestrator) {
		o.tables = tables
	}
}

// WithRegistry injects a library registry.
func WithRegistry(registry *formlib.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithWidgetRegistry replaces the catalog used to vet widget markers.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(o *Orchestrator) {
		o.widgets = registry
	}
}

func WithPolicy(policy Policy) Option {
	return func(o *Orchestrator) {
		o.policy = policy
	}
}

// WithLogger sets the logger used to report skipped fields.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithWarningHandler registers a callback for fields skipped under
// PolicySkip.
func WithWarningHandler(handler func(Warning)) Option {
	return func(o *Orchestrator) {
		o.onWarning = handler
	}
}

// WithSanitizer runs titles and descriptions through sanitizer before they
// are stored in a fragment.
func WithSanitizer(sanitizer Sanitizer) Option {
	return func(o *Orchestrator) {
		o.sanitizer = sanitizer
	}
}

// WithHTMLStripping removes markup from titles and descriptions and leaves
// plain text as it was.
func WithHTMLStripping() Option {
	return WithSanitizer(htmlStripper{policy: bluemonday.StrictPolicy()})
}

// htmlStripper undoes the entity escaping the strict policy applies to text.
type htmlStripper struct {
	policy *bluemonday.Policy
}

func (s htmlStripper) Sanitize(input string) string {
	return html.UnescapeString(s.policy.Sanitize(input))
}

// WithDerivedTitles fills missing titles from property names during
// form-level translation.
func WithDerivedTitles(enabled bool) Option {
	return func(o *Orchestrator) {
		o.deriveTitles = enabled
	}
}

// WithDecorators registers decorators that run against every encoded
// fragment.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithSchemaTransformer registers a Transformer that runs on assembled
// schemas before they are returned.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithEnvelope overrides the top-level schema title and description.
func WithEnvelope(title, description string) Option {
	return func(o *Orchestrator) {
		o.title = title
		o.description = description
	}
}

// Orchestrator translates fields and forms to schema fragments and back. It
// starts with both bundled libraries registered and the default tables.
type Orchestrator struct {
	tables       *model.Tables
	registry     *formlib.Registry
	widgets      *widgets.Registry
	policy       Policy
	logger       *slog.Logger
	onWarning    func(Warning)
	sanitizer    Sanitizer
	deriveTitles bool
	decorators   []model.Decorator
	transformer  Transformer
	title        string
	description  string
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.tables == nil {
		o.tables = model.DefaultTables()
	}
	if o.registry == nil {
		o.registry = DefaultRegistry()
	}
	if o.widgets == nil {
		o.widgets = widgets.Default()
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.title == "" {
		o.title = schema.DefaultTitle
	}
	if o.description == "" {
		o.description = schema.DefaultDescription
	}
}

// DefaultRegistry returns a registry holding attrform and chainform.
func DefaultRegistry() *formlib.Registry {
	registry, err := formlib.NewRegistry(attrform.NewAdapter(), chainform.NewAdapter())
	if err != nil {
		panic(err)
	}
	return registry
}

// Registry exposes the library registry.
func (o *Orchestrator) Registry() *formlib.Registry {
	return o.registry
}

// WidgetRegistry exposes the widget catalog used to vet widget markers.
func (o *Orchestrator) WidgetRegistry() *widgets.Registry {
	return o.widgets
}

// RegisterWidget makes a custom canonical widget acceptable in markers.
func (o *Orchestrator) RegisterWidget(name string, priority int, matcher widgets.Matcher) {
	if o.widgets == widgets.Default() {
		o.widgets = widgets.NewRegistry()
	}
	o.widgets.Register(name, priority, matcher)
}

// TranslateField renders one upstream field as a schema fragment.
func (o *Orchestrator) TranslateField(field formlib.Field) (*schema.Fragment, error) {
	return o.translateField("", field)
}

func (o *Orchestrator) translateField(name string, field formlib.Field) (*schema.Fragment, error) {
	if field == nil {
		return nil, model.NewUnsupportedFieldKind("translate", "<nil>")
	}
	lib, err := o.registry.ForField(field)
	if err != nil {
		return nil, model.NewUnsupportedFieldKind("translate", formlib.Marker(field.Library(), field.Class()))
	}
	origin, err := lib.Inspect(field)
	if err != nil {
		return nil, err
	}
	if origin.Widget != "" && !o.widgets.Known(origin.Widget) {
		return nil, model.NewUnknownWidget("translate", origin.Widget)
	}
	desc, err := model.Describe(origin, o.tables)
	if err != nil {
		return nil, err
	}
	if o.sanitizer != nil {
		desc.Title = o.sanitizer.Sanitize(desc.Title)
		desc.Description = o.sanitizer.Sanitize(desc.Description)
	}
	if desc.Title == "" && o.deriveTitles && name != "" {
		desc.Title = model.DeriveTitle(name)
	}
	frag, err := model.Encode(desc, o.tables)
	if err != nil {
		return nil, err
	}
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(name, frag); err != nil {
			return nil, fmt.Errorf("orchestrator: decorate %q: %w", name, err)
		}
	}
	return frag, nil
}

// TranslateSchema builds an unbound field of the destination library from a
// fragment. Markers from other libraries are ignored and the kind is inferred.
func (o *Orchestrator) TranslateSchema(frag *schema.Fragment, destination string) (formlib.Field, error) {
	lib, err := o.registry.Get(destination)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return o.translateSchema(frag, lib)
}

func (o *Orchestrator) translateSchema(frag *schema.Fragment, lib formlib.Library) (formlib.Field, error) {
	if frag != nil && frag.Widget != "" && !o.widgets.Known(frag.Widget) {
		return nil, model.NewUnknownWidget("translate", frag.Widget)
	}
	desc, err := model.Decode(frag, o.tables, lib)
	if err != nil {
		return nil, err
	}
	return lib.Build(desc, o.tables)
}

// FormToSchema translates every field of form, in order, into a schema.
func (o *Orchestrator) FormToSchema(form formlib.Form) (*schema.Schema, error) {
	if form == nil {
		return nil, errors.New("orchestrator: form is required")
	}

	out := schema.New()
	out.Title = o.title
	out.Description = o.description
	for _, entry := range form.Fields() {
		frag, err := o.translateField(entry.Name, entry.Field)
		if err != nil {
			if o.skip(entry.Name, err) {
				continue
			}
			return nil, fmt.Errorf("orchestrator: field %q: %w", entry.Name, err)
		}
		out.Set(entry.Name, frag)
	}

	if o.transformer != nil {
		if err := o.transformer.Transform(out); err != nil {
			return nil, fmt.Errorf("orchestrator: transform schema: %w", err)
		}
		if err := o.checkWidgets(out); err != nil {
			return nil, fmt.Errorf("orchestrator: transform schema: %w", err)
		}
	}
	return out, nil
}

// checkWidgets rejects widget markers the registry does not know, so a
// transformed schema still converts back with SchemaToForm.
func (o *Orchestrator) checkWidgets(s *schema.Schema) error {
	return s.Range(func(name string, frag *schema.Fragment) error {
		if frag != nil && frag.Widget != "" && !o.widgets.Known(frag.Widget) {
			return fmt.Errorf("property %q: %w", name, model.NewUnknownWidget("transform", frag.Widget))
		}
		return nil
	})
}

// SchemaToForm builds a destination form with one field per property, in
// property order.
func (o *Orchestrator) SchemaToForm(s *schema.Schema, destination string) (formlib.Form, error) {
	if s == nil {
		return nil, errors.New("orchestrator: schema is required")
	}
	lib, err := o.registry.Get(destination)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}

	var fields []formlib.NamedField
	err = s.Range(func(name string, frag *schema.Fragment) error {
		field, err := o.translateSchema(frag, lib)
		if err != nil {
			if o.skip(name, err) {
				return nil
			}
			return fmt.Errorf("orchestrator: property %q: %w", name, err)
		}
		fields = append(fields, formlib.NamedField{Name: name, Field: field})
		return nil
	})
	if err != nil {
		return nil, err
	}
	form, err := lib.NewForm(fields)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: assemble %s form: %w", lib.Name(), err)
	}
	return form, nil
}

// skip reports whether the failure was absorbed by PolicySkip.
func (o *Orchestrator) skip(name string, err error) bool {
	if o.policy != PolicySkip {
		return false
	}
	warning := Warning{Field: name, Err: err}
	o.logger.Warn("formschema: skipping field", "field", name, "error", err)
	if o.onWarning != nil {
		o.onWarning(warning)
	}
	return true
}

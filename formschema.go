// Package formschema translates form fields from the supported form
// libraries into draft-04 JSON Schema fragments and back.
//
// The root package is a thin convenience layer over pkg/orchestrator,
// pkg/formspec and the loader.
package formschema

import (
	"context"

	"github.com/goliatone/go-formschema/internal/loader"
	"github.com/goliatone/go-formschema/pkg/formlib"
	"github.com/goliatone/go-formschema/pkg/formspec"
	"github.com/goliatone/go-formschema/pkg/orchestrator"
	"github.com/goliatone/go-formschema/pkg/schema"
)

// Option aliases orchestrator.Option so callers need a single import.
type Option = orchestrator.Option

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewLoader constructs a loader while keeping the concrete type hidden.
func NewLoader(options ...schema.LoaderOption) schema.Loader {
	return loader.New(schema.NewLoaderOptions(options...))
}

// FormToSchema translates form with a default orchestrator.
func FormToSchema(form formlib.Form, options ...Option) (*schema.Schema, error) {
	return orchestrator.New(options...).FormToSchema(form)
}

// SchemaToForm builds a form for the destination library from s.
func SchemaToForm(s *schema.Schema, destination string, options ...Option) (formlib.Form, error) {
	return orchestrator.New(options...).SchemaToForm(s, destination)
}

// LoadSchema fetches and parses a schema document.
func LoadSchema(ctx context.Context, ld schema.Loader, src schema.Source) (*schema.Schema, error) {
	doc, err := ld.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return schema.ParseDocument(doc)
}

// SchemaFromDeclaration loads a form declaration, builds the form and
// translates it.
func SchemaFromDeclaration(ctx context.Context, ld schema.Loader, src schema.Source, options ...Option) (*schema.Schema, error) {
	orch := orchestrator.New(options...)
	doc, err := formspec.Load(ctx, ld, src)
	if err != nil {
		return nil, err
	}
	form, err := formspec.Build(doc, orch.Registry())
	if err != nil {
		return nil, err
	}
	return orch.FormToSchema(form)
}

package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-formschema/pkg/schema"
)

const fixture = `{"$schema": "http://json-schema.org/draft-04/schema#", "properties": {"name": {"type": "string"}}}`

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.schema.json")
	if err := os.WriteFile(path, []byte(fixture), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := New(schema.NewLoaderOptions()).Load(context.Background(), schema.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Encoding() != schema.EncodingJSON {
		t.Fatalf("expected json encoding, got %q", doc.Encoding())
	}
	if doc.Location() != path {
		t.Fatalf("unexpected location %q", doc.Location())
	}
}

func TestLoad_FS(t *testing.T) {
	files := fstest.MapFS{
		"forms/contact.yaml": {Data: []byte("properties:\n  name:\n    type: string\n")},
	}
	loader := New(schema.NewLoaderOptions(schema.WithFileSystem(files)))

	doc, err := loader.Load(context.Background(), schema.SourceFromFS("forms/contact.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	parsed, err := schema.ParseDocument(doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := parsed.Names(); len(got) != 1 || got[0] != "name" {
		t.Fatalf("unexpected properties %v", got)
	}

	if _, err := loader.Load(context.Background(), schema.SourceFromFS("missing.json")); err == nil {
		t.Fatalf("expected missing file error")
	}
}

func TestLoad_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(fixture))
	}))
	defer server.Close()

	ctx := context.Background()
	src, err := schema.SourceFromURL(server.URL + "/form.json")
	if err != nil {
		t.Fatalf("source: %v", err)
	}

	if _, err := New(schema.NewLoaderOptions()).Load(ctx, src); !errors.Is(err, errHTTPDisabled) {
		t.Fatalf("expected http disabled error, got %v", err)
	}

	loader := New(schema.NewLoaderOptions(schema.WithHTTPFallback(0)))
	doc, err := loader.Load(ctx, src)
	if err != nil {
		t.Fatalf("load http: %v", err)
	}
	if !strings.Contains(string(doc.Raw()), `"properties"`) {
		t.Fatalf("unexpected body %s", doc.Raw())
	}

	missing, err := schema.SourceFromURL(server.URL + "/missing")
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	if _, err := loader.Load(ctx, missing); err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestLoad_HTTPSharedFetchOutlivesCancelledCaller(t *testing.T) {
	started := make(chan struct{}, 4)
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		<-release
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(fixture))
	}))
	defer server.Close()

	src, err := schema.SourceFromURL(server.URL + "/form.json")
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	loader := New(schema.NewLoaderOptions(schema.WithHTTPFallback(5 * time.Second)))

	type outcome struct {
		doc schema.Document
		err error
	}
	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan outcome, 1)
	go func() {
		doc, err := loader.Load(ctx, src)
		first <- outcome{doc, err}
	}()
	<-started

	second := make(chan outcome, 1)
	go func() {
		doc, err := loader.Load(context.Background(), src)
		second <- outcome{doc, err}
	}()

	cancel()
	if got := <-first; !errors.Is(got.err, context.Canceled) {
		t.Fatalf("expected the cancelled caller to stop, got %v", got.err)
	}

	close(release)
	got := <-second
	if got.err != nil {
		t.Fatalf("expected the other caller to finish, got %v", got.err)
	}
	if !strings.Contains(string(got.doc.Raw()), `"properties"`) {
		t.Fatalf("unexpected body %s", got.doc.Raw())
	}
}

func TestLoad_Errors(t *testing.T) {
	loader := New(schema.NewLoaderOptions())
	if _, err := loader.Load(context.Background(), nil); !errors.Is(err, errNilSource) {
		t.Fatalf("expected nil source error, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := loader.Load(ctx, schema.SourceFromFile("form.json")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
	if _, err := loader.Load(context.Background(), schema.SourceFromFS("form.json")); err == nil {
		t.Fatalf("expected error for fs source without a filesystem")
	}
}

// Package orchestrator drives the field and form translators: it picks the
// library that owns a field, runs inspect → describe → encode (or decode →
// build in the other direction) and applies the failure policy, decorators
// and schema transformers around them.
package orchestrator

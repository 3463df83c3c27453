package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formschema/pkg/model"
)

// Canonical widget names. Libraries translate their own widget classes to
// and from these so widget markers survive a change of library.
const (
	WidgetTextInput        = "text-input"
	WidgetTextArea         = "textarea"
	WidgetPassword         = "password"
	WidgetHidden           = "hidden"
	WidgetCheckbox         = "checkbox"
	WidgetSelect           = "select"
	WidgetSelectMultiple   = "select-multiple"
	WidgetRadio            = "radio"
	WidgetCheckboxMultiple = "checkbox-multiple"
	WidgetNumberInput      = "number-input"
	WidgetEmailInput       = "email-input"
	WidgetURLInput         = "url-input"
	WidgetDateInput        = "date-input"
	WidgetTimeInput        = "time-input"
	WidgetDateTimeInput    = "datetime-input"
)

// Matcher decides whether a widget suits the supplied descriptor.
type Matcher func(desc model.Descriptor) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry holds the known canonical widgets and the matchers that pick a
// widget for a descriptor. Higher priority wins; ties fall back to
// registration order.
type Registry struct {
	mu    sync.RWMutex
	names map[string]struct{}
	rules []rule
}

// NewRegistry constructs a registry with the built-in widgets registered.
func NewRegistry() *Registry {
	reg := &Registry{names: make(map[string]struct{})}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget name. A nil matcher makes the name known without
// ever suggesting it.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil {
		return
	}
	trimmed := normalizeName(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.names == nil {
		r.names = make(map[string]struct{})
	}
	r.names[trimmed] = struct{}{}
	if matcher == nil {
		return
	}
	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Known reports whether name is a registered canonical widget.
func (r *Registry) Known(name string) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.names[normalizeName(name)]
	return ok
}

// List returns the registered names sorted.
func (r *Registry) List() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.names))
	for name := range r.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the widget for desc. An explicit widget on the descriptor
// is honoured before matcher evaluation.
func (r *Registry) Resolve(desc model.Descriptor) (string, bool) {
	if explicit := normalizeName(desc.Widget); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(desc) {
			return entry.name, true
		}
	}
	return "", false
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func kindIs(kinds ...model.Kind) Matcher {
	return func(desc model.Descriptor) bool {
		for _, kind := range kinds {
			if desc.Kind == kind {
				return true
			}
		}
		return false
	}
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetCheckbox, 90, kindIs(model.KindBoolean))
	r.Register(WidgetSelectMultiple, 80, kindIs(model.KindChoiceMultiple))
	r.Register(WidgetSelect, 70, func(desc model.Descriptor) bool {
		return desc.Kind == model.KindChoiceSingle || len(desc.Constraints.Choices) > 0
	})
	r.Register(WidgetTextArea, 60, kindIs(model.KindStringLong))
	r.Register(WidgetNumberInput, 50, kindIs(model.KindInteger, model.KindDecimal, model.KindFloat))
	r.Register(WidgetEmailInput, 50, kindIs(model.KindEmail))
	r.Register(WidgetURLInput, 50, kindIs(model.KindURL))
	r.Register(WidgetDateInput, 50, kindIs(model.KindDate))
	r.Register(WidgetTimeInput, 50, kindIs(model.KindTime))
	r.Register(WidgetDateTimeInput, 50, kindIs(model.KindDateTime))
	r.Register(WidgetTextInput, 0, func(model.Descriptor) bool { return true })

	r.Register(WidgetPassword, 0, nil)
	r.Register(WidgetHidden, 0, nil)
	r.Register(WidgetRadio, 0, nil)
	r.Register(WidgetCheckboxMultiple, 0, nil)
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the shared built-in registry.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

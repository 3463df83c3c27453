package model

// Kind identifies the field kind a descriptor was built from. The set is
// closed; per-kind behaviour lives in tables rather than type switches.
type Kind string

const (
	KindBoolean        Kind = "boolean"
	KindStringShort    Kind = "string-short"
	KindStringLong     Kind = "string-long"
	KindInteger        Kind = "integer"
	KindDecimal        Kind = "decimal"
	KindFloat          Kind = "float"
	KindEmail          Kind = "email"
	KindChoiceSingle   Kind = "choice-single"
	KindChoiceMultiple Kind = "choice-multiple"
	KindIPAddress      Kind = "ip-address"
	KindDate           Kind = "date"
	KindTime           Kind = "time"
	KindDateTime       Kind = "datetime"
	KindSlug           Kind = "slug"
	KindURL            Kind = "url"
)

var allKinds = []Kind{
	KindBoolean,
	KindStringShort,
	KindStringLong,
	KindInteger,
	KindDecimal,
	KindFloat,
	KindEmail,
	KindChoiceSingle,
	KindChoiceMultiple,
	KindIPAddress,
	KindDate,
	KindTime,
	KindDateTime,
	KindSlug,
	KindURL,
}

// Kinds lists every supported kind in declaration order.
func Kinds() []Kind {
	return append([]Kind(nil), allKinds...)
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	for _, kind := range allKinds {
		if kind == k {
			return true
		}
	}
	return false
}

// IsPlainString reports kinds that carry free text with no implied shape.
// Validators and formats may refine them into a more specific kind.
func (k Kind) IsPlainString() bool {
	return k == KindStringShort || k == KindStringLong
}

// IsChoice reports the enumerated kinds.
func (k Kind) IsChoice() bool {
	return k == KindChoiceSingle || k == KindChoiceMultiple
}

// IsNumeric reports the kinds bounded by minimum/maximum.
func (k Kind) IsNumeric() bool {
	return k == KindInteger || k == KindDecimal || k == KindFloat
}

// Protocol is the address family of an ip-address field.
type Protocol string

const (
	ProtocolIPv4 Protocol = "ipv4"
	ProtocolIPv6 Protocol = "ipv6"
)

// Constraints holds the optional bounds of a field. Nil pointers mean unset;
// zero is a real bound.
type Constraints struct {
	MinLength *int
	MaxLength *int
	Minimum   *float64
	Maximum   *float64
	Pattern   string
	Protocol  Protocol
	Choices   []any
}

func (c Constraints) clone() Constraints {
	out := c
	out.MinLength = clonePtr(c.MinLength)
	out.MaxLength = clonePtr(c.MaxLength)
	out.Minimum = clonePtr(c.Minimum)
	out.Maximum = clonePtr(c.Maximum)
	if c.Choices != nil {
		out.Choices = append([]any{}, c.Choices...)
	}
	return out
}

// Descriptor is the library-neutral description of one field.
type Descriptor struct {
	Kind        Kind
	Title       string
	Description string
	// Default is nil when the field has no initial value.
	Default     any
	Optional    bool
	Constraints Constraints
	// Origin is the "<library>.<Class>" marker of the source field.
	Origin string
	// Widget is a canonical widget name, empty when the class default applies.
	Widget string
}

// Clone returns a deep copy.
func (d Descriptor) Clone() Descriptor {
	out := d
	out.Constraints = d.Constraints.clone()
	if list, ok := d.Default.([]any); ok {
		out.Default = append([]any{}, list...)
	}
	return out
}

// Attributes is implemented by upstream fields that store constraints
// directly on the field. Lookups use the attribute names of the keyword table.
type Attributes interface {
	Attribute(name string) (any, bool)
}

// AttributeMap is a map-backed Attributes.
type AttributeMap map[string]any

func (m AttributeMap) Attribute(name string) (any, bool) {
	value, ok := m[name]
	return value, ok
}

// RuleKind names a library-neutral validator.
type RuleKind string

const (
	RuleRange     RuleKind = "range"
	RuleLength    RuleKind = "length"
	RuleOptional  RuleKind = "optional"
	RuleRequired  RuleKind = "required"
	RuleEmail     RuleKind = "email"
	RuleIPAddress RuleKind = "ip-address"
	RulePattern   RuleKind = "pattern"
	RuleURL       RuleKind = "url"
)

// Rule is the neutral form of one upstream validator. Min and Max bound
// range and length rules; nil means the bound was not supplied.
type Rule struct {
	Kind    RuleKind
	Min     *float64
	Max     *float64
	Pattern string
	IPv4    bool
	IPv6    bool
}

// Origin is what a library integration reports about one upstream field.
type Origin struct {
	Marker     string
	Kind       Kind
	Widget     string
	Attributes Attributes
	Rules      []Rule
}

func clonePtr[T any](value *T) *T {
	if value == nil {
		return nil
	}
	out := *value
	return &out
}

func ptr[T any](value T) *T {
	return &value
}

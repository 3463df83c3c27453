package formlib

// FieldSpec is the serialisable declaration of one field. Libraries read
// the members that make sense for them and ignore the rest.
type FieldSpec struct {
	Name       string          `json:"name" yaml:"name"`
	Class      string          `json:"class" yaml:"class"`
	Label      string          `json:"label,omitempty" yaml:"label,omitempty"`
	HelpText   string          `json:"help_text,omitempty" yaml:"help_text,omitempty"`
	Initial    any             `json:"initial,omitempty" yaml:"initial,omitempty"`
	Required   *bool           `json:"required,omitempty" yaml:"required,omitempty"`
	MinLength  *int            `json:"min_length,omitempty" yaml:"min_length,omitempty"`
	MaxLength  *int            `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	MinValue   *float64        `json:"min_value,omitempty" yaml:"min_value,omitempty"`
	MaxValue   *float64        `json:"max_value,omitempty" yaml:"max_value,omitempty"`
	Choices    []any           `json:"choices,omitempty" yaml:"choices,omitempty"`
	Protocol   string          `json:"protocol,omitempty" yaml:"protocol,omitempty"`
	Widget     string          `json:"widget,omitempty" yaml:"widget,omitempty"`
	Validators []ValidatorSpec `json:"validators,omitempty" yaml:"validators,omitempty"`
}

// Validator kinds accepted in a ValidatorSpec.
const (
	ValidatorOptional  = "optional"
	ValidatorRequired  = "required"
	ValidatorLength    = "length"
	ValidatorRange     = "range"
	ValidatorEmail     = "email"
	ValidatorIPAddress = "ip-address"
	ValidatorRegexp    = "regexp"
	ValidatorURL       = "url"
)

// ValidatorSpec is the serialisable declaration of one validator.
type ValidatorSpec struct {
	Kind    string   `json:"kind" yaml:"kind"`
	Min     *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max     *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Pattern string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	IPv4    bool     `json:"ipv4,omitempty" yaml:"ipv4,omitempty"`
	IPv6    bool     `json:"ipv6,omitempty" yaml:"ipv6,omitempty"`
}

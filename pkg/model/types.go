package model

import internalmodel "github.com/goliatone/go-formschema/internal/model"

// Kind re-exports the internal kind enumeration.
type Kind = internalmodel.Kind

const (
	KindBoolean        = internalmodel.KindBoolean
	KindStringShort    = internalmodel.KindStringShort
	KindStringLong     = internalmodel.KindStringLong
	KindInteger        = internalmodel.KindInteger
	KindDecimal        = internalmodel.KindDecimal
	KindFloat          = internalmodel.KindFloat
	KindEmail          = internalmodel.KindEmail
	KindChoiceSingle   = internalmodel.KindChoiceSingle
	KindChoiceMultiple = internalmodel.KindChoiceMultiple
	KindIPAddress      = internalmodel.KindIPAddress
	KindDate           = internalmodel.KindDate
	KindTime           = internalmodel.KindTime
	KindDateTime       = internalmodel.KindDateTime
	KindSlug           = internalmodel.KindSlug
	KindURL            = internalmodel.KindURL
)

type Protocol = internalmodel.Protocol

const (
	ProtocolIPv4 = internalmodel.ProtocolIPv4
	ProtocolIPv6 = internalmodel.ProtocolIPv6
)

type RuleKind = internalmodel.RuleKind

const (
	RuleRange     = internalmodel.RuleRange
	RuleLength    = internalmodel.RuleLength
	RuleOptional  = internalmodel.RuleOptional
	RuleRequired  = internalmodel.RuleRequired
	RuleEmail     = internalmodel.RuleEmail
	RuleIPAddress = internalmodel.RuleIPAddress
	RulePattern   = internalmodel.RulePattern
	RuleURL       = internalmodel.RuleURL
)

// Attribute names understood by the keyword table.
const (
	AttrLabel     = internalmodel.AttrLabel
	AttrHelpText  = internalmodel.AttrHelpText
	AttrInitial   = internalmodel.AttrInitial
	AttrRequired  = internalmodel.AttrRequired
	AttrMaxLength = internalmodel.AttrMaxLength
	AttrMinLength = internalmodel.AttrMinLength
	AttrMinValue  = internalmodel.AttrMinValue
	AttrMaxValue  = internalmodel.AttrMaxValue
	AttrChoices   = internalmodel.AttrChoices
	AttrProtocol  = internalmodel.AttrProtocol
)

// Implied patterns.
const (
	TimePattern = internalmodel.TimePattern
	DatePattern = internalmodel.DatePattern
	SlugPattern = internalmodel.SlugPattern
	URLPattern  = internalmodel.URLPattern
)

type (
	Descriptor       = internalmodel.Descriptor
	Constraints      = internalmodel.Constraints
	Attributes       = internalmodel.Attributes
	AttributeMap     = internalmodel.AttributeMap
	Rule             = internalmodel.Rule
	Origin           = internalmodel.Origin
	Keyword          = internalmodel.Keyword
	KeywordTable     = internalmodel.KeywordTable
	Shape            = internalmodel.Shape
	ResolutionTables = internalmodel.ResolutionTables
	Tables           = internalmodel.Tables
	MarkerResolver   = internalmodel.MarkerResolver
	Error            = internalmodel.Error
)

var (
	ErrUnsupportedFieldKind   = internalmodel.ErrUnsupportedFieldKind
	ErrUnresolvableSchemaType = internalmodel.ErrUnresolvableSchemaType
	ErrUnknownWidget          = internalmodel.ErrUnknownWidget
	ErrInvalidConstraintValue = internalmodel.ErrInvalidConstraintValue
)

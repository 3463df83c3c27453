package model

// Tables bundles the immutable lookup tables the translators consult.
type Tables struct {
	Keywords   *KeywordTable
	Resolution *ResolutionTables
}

var defaultTables = mustDefaultTables()

// DefaultTables returns the shared built-in tables. The value is read-only
// and safe for concurrent use.
func DefaultTables() *Tables {
	return defaultTables
}

// NewTables builds a table set from explicit entries.
func NewTables(keywords []Keyword, types, formats map[string]Kind, shapes map[Kind]Shape) (*Tables, error) {
	kw, err := NewKeywordTable(keywords...)
	if err != nil {
		return nil, err
	}
	resolution, err := NewResolutionTables(types, formats, shapes)
	if err != nil {
		return nil, err
	}
	for _, kind := range allKinds {
		if _, ok := resolution.Shape(kind); !ok {
			return nil, NewUnsupportedFieldKind("tables", string(kind))
		}
	}
	return &Tables{Keywords: kw, Resolution: resolution}, nil
}

func mustDefaultTables() *Tables {
	tables, err := NewTables(defaultKeywords(), defaultTypes(), defaultFormats(), defaultShapes())
	if err != nil {
		panic(err)
	}
	return tables
}

func tablesOrDefault(tables *Tables) *Tables {
	if tables == nil || tables.Keywords == nil || tables.Resolution == nil {
		return defaultTables
	}
	return tables
}

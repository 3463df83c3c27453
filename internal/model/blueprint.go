package model

// Kwargs reverse-applies the keyword table, producing constructor arguments
// keyed by upstream attribute name. optional becomes required here.
func (d Descriptor) Kwargs(tables *Tables) map[string]any {
	tables = tablesOrDefault(tables)
	kwargs := make(map[string]any)
	for _, kw := range tables.Keywords.Entries() {
		value, ok := d.keyword(kw.Schema)
		if !ok {
			continue
		}
		kwargs[kw.Attribute] = kw.toAttribute(value)
	}
	if d.Kind == KindIPAddress && d.Constraints.Protocol != "" {
		kwargs[AttrProtocol] = string(d.Constraints.Protocol)
	}
	return kwargs
}

// Rules derives neutral validator rules for libraries that express
// constraints as a validator chain. Order: optional, family, length, range,
// pattern. Callers drop the pattern rule when their class already implies it.
func (d Descriptor) Rules() []Rule {
	c := d.Constraints
	var rules []Rule
	if d.Optional {
		rules = append(rules, Rule{Kind: RuleOptional})
	}

	urlRule := false
	switch d.Kind {
	case KindEmail:
		rules = append(rules, Rule{Kind: RuleEmail})
	case KindIPAddress:
		rules = append(rules, Rule{
			Kind: RuleIPAddress,
			IPv4: c.Protocol != ProtocolIPv6,
			IPv6: c.Protocol == ProtocolIPv6,
		})
	case KindURL:
		rules = append(rules, Rule{Kind: RuleURL, Pattern: c.Pattern})
		urlRule = true
	}

	if c.MinLength != nil || c.MaxLength != nil {
		rules = append(rules, Rule{Kind: RuleLength, Min: intToFloat(c.MinLength), Max: intToFloat(c.MaxLength)})
	}
	if c.Minimum != nil || c.Maximum != nil {
		rules = append(rules, Rule{Kind: RuleRange, Min: clonePtr(c.Minimum), Max: clonePtr(c.Maximum)})
	}
	if c.Pattern != "" && !urlRule {
		rules = append(rules, Rule{Kind: RulePattern, Pattern: c.Pattern})
	}
	return rules
}

func intToFloat(value *int) *float64 {
	if value == nil {
		return nil
	}
	return ptr(float64(*value))
}

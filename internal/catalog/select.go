package catalog

// Select returns the codemods with from < version <= to, in catalog order.
// Equal versions or a downgrade select nothing.
func Select(from, to string, c *Catalog) ([]Descriptor, error) {
	fromV, err := ParseVersion(from)
	if err != nil {
		return nil, err
	}
	toV, err := ParseVersion(to)
	if err != nil {
		return nil, err
	}

	var out []Descriptor
	if !toV.GT(fromV) {
		return out, nil
	}
	for _, d := range c.descs {
		if d.parsed.GT(fromV) && d.parsed.LTE(toV) {
			out = append(out, d)
		}
	}
	return out, nil
}

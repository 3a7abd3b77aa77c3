package catalog

import (
	"fmt"

	"github.com/danieljhkim/turbo-migrate/internal/errors"
)

// Catalog is an immutable, version-ordered list of codemods.
type Catalog struct {
	descs  []Descriptor
	byName map[string]int
}

// New validates descs and builds a catalog from them. Descriptors must be
// listed in ascending version order and carry unique names.
func New(descs ...Descriptor) (*Catalog, error) {
	c := &Catalog{
		descs:  make([]Descriptor, 0, len(descs)),
		byName: make(map[string]int, len(descs)),
	}

	for i, d := range descs {
		if d.Name == "" {
			return nil, errors.New(errors.CodeCatalogInvalid, fmt.Sprintf("codemod #%d has no name", i+1))
		}
		if _, dup := c.byName[d.Name]; dup {
			return nil, errors.New(errors.CodeCatalogInvalid, fmt.Sprintf("duplicate codemod name %q", d.Name))
		}
		if d.Transformer == nil {
			return nil, errors.New(errors.CodeCatalogInvalid, fmt.Sprintf("codemod %q has no transformer", d.Name))
		}

		v, err := ParseVersion(d.Version)
		if err != nil {
			return nil, errors.Wrap(errors.CodeCatalogInvalid, fmt.Sprintf("codemod %q has an invalid version", d.Name), err)
		}
		if n := len(c.descs); n > 0 && v.LT(c.descs[n-1].parsed) {
			return nil, errors.New(errors.CodeCatalogInvalid,
				fmt.Sprintf("codemod %q (%s) is listed after %q (%s)", d.Name, v, c.descs[n-1].Name, c.descs[n-1].parsed))
		}

		d.parsed = v
		c.byName[d.Name] = len(c.descs)
		c.descs = append(c.descs, d)
	}

	return c, nil
}

func mustNew(descs ...Descriptor) *Catalog {
	c, err := New(descs...)
	if err != nil {
		panic(err)
	}
	return c
}

// List returns every codemod in ascending version order.
func (c *Catalog) List() []Descriptor {
	out := make([]Descriptor, len(c.descs))
	copy(out, c.descs)
	return out
}

// Len returns the number of codemods.
func (c *Catalog) Len() int {
	return len(c.descs)
}

// Lookup finds a codemod by name.
func (c *Catalog) Lookup(name string) (Descriptor, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Descriptor{}, false
	}
	return c.descs[i], true
}

// MustLookup is Lookup returning a coded error for unknown names.
func (c *Catalog) MustLookup(name string) (Descriptor, error) {
	d, ok := c.Lookup(name)
	if !ok {
		return Descriptor{}, errors.New(errors.CodeCodemodNotFound, fmt.Sprintf("unknown codemod %q", name)).
			WithSuggestion("Run `turbo-migrate list` to see available codemods")
	}
	return d, nil
}

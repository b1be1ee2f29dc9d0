package grants

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// defaultCatalog is built once at start-up and never mutated.
var defaultCatalog = mustParse(embeddedCatalog)

const fullDescriptionSuffix = " This grant supports tradespeople who are investing in their training. Funding can be stacked with other awards unless noted otherwise and is typically paid directly to the training provider or employer once proof of enrollment has been received."

// Catalog is an immutable, ordered set of grants indexed by id.
type Catalog struct {
	grants []*Grant
	byID   map[string]*Grant
}

type document struct {
	Grants []*Grant `yaml:"grants"`
}

// NewCatalog validates grants and indexes them. Catalog order is preserved.
func NewCatalog(grants []*Grant) (*Catalog, error) {
	if errs := validate(grants); len(errs) > 0 {
		return nil, errs
	}

	c := &Catalog{
		grants: make([]*Grant, 0, len(grants)),
		byID:   make(map[string]*Grant, len(grants)),
	}
	for _, g := range grants {
		if g.FullDescription == "" {
			g.FullDescription = g.Description + fullDescriptionSuffix
		}
		g.amountValue = ParseAmount(g.Amount)
		c.grants = append(c.grants, g)
		c.byID[g.ID] = g
	}

	return c, nil
}

// Parse decodes and validates a YAML catalog document. Unknown keys are errors.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	return NewCatalog(doc.Grants)
}

// LoadFile reads a catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func mustParse(data []byte) *Catalog {
	c, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("grants: embedded catalog is invalid: %v", err))
	}
	return c
}

// Len returns the number of grants.
func (c *Catalog) Len() int {
	return len(c.grants)
}

// All returns the grants in catalog order. The slice is a copy; the grants are
// shared and must not be modified.
func (c *Catalog) All() []*Grant {
	out := make([]*Grant, len(c.grants))
	copy(out, c.grants)
	return out
}

// GetByID looks a grant up. Unknown and empty ids report false.
func (c *Catalog) GetByID(id string) (*Grant, bool) {
	if id == "" {
		return nil, false
	}
	g, ok := c.byID[id]
	return g, ok
}

// Map returns a copy of the id index.
func (c *Catalog) Map() map[string]*Grant {
	out := make(map[string]*Grant, len(c.byID))
	for id, g := range c.byID {
		out[id] = g
	}
	return out
}

// Marshal renders the catalog back into its YAML form.
func (c *Catalog) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(document{Grants: c.grants}); err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return buf.Bytes(), nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog
}

// All returns the built-in grants in catalog order.
func All() []*Grant {
	return defaultCatalog.All()
}

// GetByID looks a grant up in the built-in catalog.
func GetByID(id string) (*Grant, bool) {
	return defaultCatalog.GetByID(id)
}

// Map returns the built-in catalog's id index.
func Map() map[string]*Grant {
	return defaultCatalog.Map()
}

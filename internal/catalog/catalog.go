package catalog

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"StockDash/internal/model"
)

//go:embed indices.yaml
var indicesYAML []byte

// Catalog is an immutable set of indices. Accessors return copies.
type Catalog struct {
	indices []model.Index
	byID    map[string]int
}

// Parse builds a Catalog from a YAML list of indices.
func Parse(data []byte) (*Catalog, error) {
	var indices []model.Index
	if err := yaml.Unmarshal(data, &indices); err != nil {
		return nil, fmt.Errorf("parse indices: %w", err)
	}
	c := &Catalog{indices: indices, byID: make(map[string]int, len(indices))}
	for i, idx := range indices {
		if idx.ID == "" {
			return nil, fmt.Errorf("index %d: missing id", i)
		}
		if _, dup := c.byID[idx.ID]; dup {
			return nil, fmt.Errorf("index %q: duplicate id", idx.ID)
		}
		c.byID[idx.ID] = i
	}
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog, parsed on first use.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(indicesYAML)
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// All returns every index in catalog order.
func (c *Catalog) All() []model.Index {
	out := make([]model.Index, len(c.indices))
	for i, idx := range c.indices {
		out[i] = clone(idx)
	}
	return out
}

// ByID looks up an index by id.
func (c *Catalog) ByID(id string) (model.Index, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.Index{}, false
	}
	return clone(c.indices[i]), true
}

func clone(idx model.Index) model.Index {
	idx.TopStocks = slices.Clone(idx.TopStocks)
	return idx
}

package memdb

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// LoadYAML replaces the root of the tree with the document in data.
// Loading dispatches change events like any other mutation, so listeners
// attached before the load observe it.
func (db *DB) LoadYAML(data []byte) error {
	var root any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("memdb: parsing yaml: %w", err)
	}
	return db.Set("/", root)
}

// DumpYAML renders the current tree as a YAML document.
func (db *DB) DumpYAML() ([]byte, error) {
	data, err := yaml.Marshal(db.Get("/"))
	if err != nil {
		return nil, fmt.Errorf("memdb: encoding yaml: %w", err)
	}
	return data, nil
}

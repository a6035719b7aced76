package category

import (
	"encoding/json"
	"fmt"
	"os"
)

// TaxonomyStore serves the static category reference document. The file is
// re-read on every call rather than cached, so edits to the taxonomy take
// effect without a restart.
type TaxonomyStore struct {
	path string
}

func NewTaxonomyStore(path string) *TaxonomyStore {
	return &TaxonomyStore{path: path}
}

func (s *TaxonomyStore) Load() (json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy %s: %w", s.path, err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("taxonomy %s is not valid JSON", s.path)
	}
	return json.RawMessage(data), nil
}

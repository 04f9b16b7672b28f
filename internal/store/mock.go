package store

import "gagyebu/ledger-csv/internal/taxonomy"

// MockTaxonomyStore is an in-memory TaxonomyLoader for tests.
type MockTaxonomyStore struct {
	Tables    *taxonomy.Tables
	LoadError error
}

// LoadTaxonomy returns a copy of Tables, or the built-in tables when unset.
func (m *MockTaxonomyStore) LoadTaxonomy() (taxonomy.Tables, error) {
	if m.LoadError != nil {
		return taxonomy.Tables{}, m.LoadError
	}
	if m.Tables == nil {
		return taxonomy.Default(), nil
	}
	return m.Tables.Clone(), nil
}

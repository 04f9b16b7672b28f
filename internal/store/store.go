// Package store loads and saves the taxonomy file holding the category tree,
// header aliases and keyword rules.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gagyebu/ledger-csv/internal/logging"
	"gagyebu/ledger-csv/internal/models"
	"gagyebu/ledger-csv/internal/parsererror"
	"gagyebu/ledger-csv/internal/taxonomy"

	"gopkg.in/yaml.v3"
)

// DefaultTaxonomyFile is looked up when no file name is configured.
const DefaultTaxonomyFile = "taxonomy.yaml"

// TaxonomyLoader is the read side used by the container.
type TaxonomyLoader interface {
	LoadTaxonomy() (taxonomy.Tables, error)
}

// TaxonomyStore reads and writes taxonomy YAML files.
type TaxonomyStore struct {
	TaxonomyFile string
	logger       logging.Logger
}

// document is the on-disk layout. Lists rather than maps keep declaration order.
type document struct {
	Categories []taxonomy.Branch      `yaml:"categories,omitempty"`
	Headers    []headerEntry          `yaml:"headers,omitempty"`
	Keywords   []taxonomy.KeywordRule `yaml:"keywords,omitempty"`
}

type headerEntry struct {
	Alias string       `yaml:"alias"`
	Field models.Field `yaml:"field"`
}

// NewTaxonomyStore creates a store for the given file. A nil logger falls back
// to logging.Default().
func NewTaxonomyStore(taxonomyFile string, logger logging.Logger) *TaxonomyStore {
	if logger == nil {
		logger = logging.Default()
	}
	return &TaxonomyStore{TaxonomyFile: taxonomyFile, logger: logger}
}

func (s *TaxonomyStore) filename() string {
	if s.TaxonomyFile == "" {
		return DefaultTaxonomyFile
	}
	return s.TaxonomyFile
}

// FindConfigFile looks for filename as given, then under ./config/, ./database/
// and $HOME/.config/ledger-csv/.
func (s *TaxonomyStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join("database", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "ledger-csv", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadTaxonomy reads the taxonomy file. A missing file yields the built-in
// tables. Sections absent from the file keep their built-in values; present
// sections replace them wholesale.
func (s *TaxonomyStore) LoadTaxonomy() (taxonomy.Tables, error) {
	filename := s.filename()
	tables := taxonomy.Default()

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.WithField(logging.FieldFile, filename).Debug("Taxonomy file not found, using built-in tables")
			return tables, nil
		}
		return taxonomy.Tables{}, fmt.Errorf("error resolving taxonomy file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return taxonomy.Tables{}, fmt.Errorf("error reading taxonomy file: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return taxonomy.Tables{}, fmt.Errorf("error parsing taxonomy file %s: %w", filePath, err)
	}

	if len(doc.Categories) > 0 {
		tree, err := taxonomy.NewTree(doc.Categories)
		if err != nil {
			return taxonomy.Tables{}, &parsererror.ValidationError{FilePath: filePath, Reason: err.Error()}
		}
		tables.Tree = tree
	}
	if len(doc.Headers) > 0 {
		aliases := make(taxonomy.HeaderAliases, len(doc.Headers))
		for _, h := range doc.Headers {
			aliases[taxonomy.NormalizeText(h.Alias)] = h.Field
		}
		tables.Aliases = aliases
	}
	if len(doc.Keywords) > 0 {
		tables.Rules = taxonomy.ClassifierTable(doc.Keywords).Clone()
	}

	if err := tables.Validate(); err != nil {
		var vErr *parsererror.ValidationError
		if errors.As(err, &vErr) {
			return taxonomy.Tables{}, &parsererror.ValidationError{FilePath: filePath, Reason: vErr.Reason}
		}
		return taxonomy.Tables{}, err
	}

	s.logger.WithFields(
		logging.F(logging.FieldFile, filePath),
		logging.F("majors", tables.Tree.Len()),
		logging.F("aliases", len(tables.Aliases)),
		logging.F("keywords", len(tables.Rules)),
	).Debug("Loaded taxonomy")
	return tables, nil
}

// SaveTaxonomy writes tables to the store's file, creating parent directories.
// An existing file found by FindConfigFile is overwritten in place. It returns
// the path written.
func (s *TaxonomyStore) SaveTaxonomy(tables taxonomy.Tables) (string, error) {
	filename := s.filename()

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("error resolving taxonomy file: %w", err)
		}
		filePath = filename
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0750); err != nil {
		return "", fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(toDocument(tables))
	if err != nil {
		return "", fmt.Errorf("error marshaling taxonomy: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0600); err != nil {
		return "", fmt.Errorf("error writing taxonomy file: %w", err)
	}

	s.logger.WithField(logging.FieldFile, filePath).Info("Saved taxonomy")
	return filePath, nil
}

func toDocument(tables taxonomy.Tables) document {
	rank := make(map[models.Field]int, len(models.CanonicalFields))
	for i, f := range models.CanonicalFields {
		rank[f] = i
	}

	headers := make([]headerEntry, 0, len(tables.Aliases))
	for alias, field := range tables.Aliases {
		headers = append(headers, headerEntry{Alias: alias, Field: field})
	}
	sort.Slice(headers, func(i, j int) bool {
		if headers[i].Field != headers[j].Field {
			return rank[headers[i].Field] < rank[headers[j].Field]
		}
		return headers[i].Alias < headers[j].Alias
	})

	return document{
		Categories: tables.Tree.Branches(),
		Headers:    headers,
		Keywords:   []taxonomy.KeywordRule(tables.Rules),
	}
}

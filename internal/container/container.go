// Package container provides dependency injection for the ledger-csv application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"path/filepath"

	"gagyebu/ledger-csv/internal/batch"
	"gagyebu/ledger-csv/internal/categorizer"
	"gagyebu/ledger-csv/internal/common"
	"gagyebu/ledger-csv/internal/config"
	"gagyebu/ledger-csv/internal/editor"
	"gagyebu/ledger-csv/internal/factory"
	"gagyebu/ledger-csv/internal/fileutils"
	"gagyebu/ledger-csv/internal/logging"
	"gagyebu/ledger-csv/internal/models"
	"gagyebu/ledger-csv/internal/normalizer"
	"gagyebu/ledger-csv/internal/parser"
	"gagyebu/ledger-csv/internal/report"
	"gagyebu/ledger-csv/internal/sheetsource"
	"gagyebu/ledger-csv/internal/store"
	"gagyebu/ledger-csv/internal/taxonomy"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation: fields are private and only reachable
// through getters, so commands cannot swap a dependency mid-run.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	store       store.TaxonomyLoader
	tables      taxonomy.Tables
	aiClient    categorizer.AIClient
	categorizer *categorizer.Categorizer
	normalizer  *normalizer.Normalizer
	editor      *editor.Editor
	exporter    *common.Exporter
	aggregator  *batch.BatchAggregator
	reporter    *report.ReportGenerator
}

// Option customizes NewContainer, mainly for tests.
type Option func(*options)

type options struct {
	logger   logging.Logger
	loader   store.TaxonomyLoader
	aiClient categorizer.AIClient
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithTaxonomyLoader replaces the file-backed taxonomy store.
func WithTaxonomyLoader(loader store.TaxonomyLoader) Option {
	return func(o *options) { o.loader = loader }
}

// WithAIClient injects the AI client used when ai.enabled is set.
func WithAIClient(client categorizer.AIClient) Option {
	return func(o *options) { o.aiClient = client }
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	// Create logger first as it's needed by other components
	logger := o.logger
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}

	loader := o.loader
	if loader == nil {
		loader = store.NewTaxonomyStore(cfg.Taxonomy.File, logger)
	}
	tables, err := loader.LoadTaxonomy()
	if err != nil {
		return nil, fmt.Errorf("failed to load taxonomy: %w", err)
	}

	mode, err := categorizer.ParseMatchMode(cfg.Classification.MatchMode)
	if err != nil {
		return nil, err
	}
	bucket, err := categorizer.NewBucketPolicy(
		cfg.Classification.DefaultBucket,
		cfg.Classification.DefaultMajor,
		cfg.Classification.DefaultMinor,
	)
	if err != nil {
		return nil, err
	}
	if err := bucket.Validate(tables.Tree); err != nil {
		return nil, err
	}

	strategies := []categorizer.CategorizationStrategy{
		categorizer.NewKeywordStrategy(tables.Rules, mode, logger),
	}

	// Create AI client (if enabled)
	var aiClient categorizer.AIClient
	if cfg.AI.Enabled {
		aiClient = o.aiClient
		if aiClient == nil && cfg.AI.APIKey != "" {
			aiClient = categorizer.NewGeminiClient(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.Timeout(), logger)
		}
	}
	if aiClient != nil {
		strategies = append(strategies, categorizer.NewAIStrategy(aiClient, tables.Tree, logger))
		logger.Debug("AI categorization enabled")
	} else {
		logger.Debug("AI categorization disabled")
	}

	cat := categorizer.NewCategorizer(strategies, bucket, logger)

	norm := normalizer.NewNormalizer(tables, cat, normalizer.Options{
		HeaderScanRows:   cfg.Header.ScanRows,
		MinHeaderMatches: cfg.Header.MinMatches,
		CurrencySuffixes: cfg.Money.CurrencySuffixes,
	}, logger)

	logger.Debug("Container initialized successfully",
		logging.F("majors", tables.Tree.Len()),
		logging.F("keywords", len(tables.Rules)),
		logging.F("match_mode", string(mode)),
		logging.F("default_bucket", bucket.Mode),
		logging.F("ai_enabled", aiClient != nil))

	return &Container{
		logger:      logger,
		config:      cfg,
		store:       loader,
		tables:      tables,
		aiClient:    aiClient,
		categorizer: cat,
		normalizer:  norm,
		editor:      editor.NewEditor(tables.Tree, logger),
		exporter:    common.NewExporter(cfg.Delimiter(), cfg.CSV.DateFormat, logger),
		aggregator:  batch.NewBatchAggregator(logger),
		reporter:    report.NewReportGenerator(tables.Tree, logger),
	}, nil
}

// GetParser returns a reader for the given input format.
func (c *Container) GetParser(pt parser.ParserType) (parser.Parser, error) {
	return factory.GetParserWithLogger(pt, c.logger, factory.Options{Delimiter: c.config.Delimiter()})
}

// GetParserForFile returns the reader matching the file's extension.
func (c *Container) GetParserForFile(path string) (parser.Parser, error) {
	return factory.GetParserForFile(path, c.logger, factory.Options{Delimiter: c.config.Delimiter()})
}

// ReadTable reads one input file into a raw table.
func (c *Container) ReadTable(path string) (models.RawTable, error) {
	p, err := c.GetParserForFile(path)
	if err != nil {
		return models.RawTable{}, err
	}

	file, err := fileutils.OpenFile(path)
	if err != nil {
		return models.RawTable{}, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			c.logger.WithError(cerr).Warn("Failed to close file")
		}
	}()

	table, err := p.Parse(file)
	if err != nil {
		return models.RawTable{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	table.Source = filepath.Base(path)
	return table, nil
}

// LoadFile reads and normalizes one input file. It matches batch.LoadFunc.
func (c *Container) LoadFile(ctx context.Context, path string) (models.Ledger, []models.Notice, error) {
	table, err := c.ReadTable(path)
	if err != nil {
		return nil, nil, err
	}
	return c.normalizer.Normalize(ctx, table)
}

// NewSheetSource creates a Google Sheets reader from the configured credentials.
func (c *Container) NewSheetSource(ctx context.Context) (*sheetsource.Source, error) {
	getter, err := sheetsource.NewServiceGetter(ctx, sheetsource.Credentials{
		CredentialsFile: c.config.Sheets.CredentialsFile,
		APIKey:          c.config.Sheets.APIKey,
	})
	if err != nil {
		return nil, err
	}
	return sheetsource.NewSource(getter, c.logger), nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetTables returns a copy of the loaded taxonomy tables.
func (c *Container) GetTables() taxonomy.Tables {
	return c.tables.Clone()
}

// GetStore returns the taxonomy loader the tables came from.
func (c *Container) GetStore() store.TaxonomyLoader {
	return c.store
}

// GetCategorizer returns the container's categorizer instance.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetNormalizer returns the container's normalizer instance.
func (c *Container) GetNormalizer() *normalizer.Normalizer {
	return c.normalizer
}

// GetEditor returns the container's ledger editor.
func (c *Container) GetEditor() *editor.Editor {
	return c.editor
}

// GetExporter returns the CSV/XLSX writer configured from csv.* settings.
func (c *Container) GetExporter() *common.Exporter {
	return c.exporter
}

// GetAggregator returns the batch merger.
func (c *Container) GetAggregator() *batch.BatchAggregator {
	return c.aggregator
}

// GetReportGenerator returns the summary generator.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.reporter
}

// GetAIClient returns the container's AI client instance.
// Returns nil if AI is not enabled.
func (c *Container) GetAIClient() categorizer.AIClient {
	return c.aiClient
}

// Close releases the AI client, if it holds a connection.
func (c *Container) Close() error {
	if closer, ok := c.aiClient.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("failed to close AI client: %w", err)
		}
	}
	c.logger.Debug("Container closed")
	return nil
}

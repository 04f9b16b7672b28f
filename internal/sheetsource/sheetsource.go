// Package sheetsource reads a range of a Google Sheets spreadsheet into a raw
// table, using unformatted values so that dates arrive as serial numbers.
package sheetsource

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gagyebu/ledger-csv/internal/logging"
	"gagyebu/ledger-csv/internal/models"
	"gagyebu/ledger-csv/internal/parsererror"

	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// ValuesGetter fetches the cell values of one A1 range.
type ValuesGetter interface {
	GetValues(ctx context.Context, spreadsheetID, rng string) ([][]interface{}, error)
}

// Credentials selects how the Sheets API is authenticated. A credentials file
// wins over an API key; with neither, application default credentials are used.
type Credentials struct {
	CredentialsFile string
	APIKey          string
}

type serviceGetter struct {
	svc *sheets.Service
}

func (g *serviceGetter) GetValues(ctx context.Context, spreadsheetID, rng string) ([][]interface{}, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(spreadsheetID, rng).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("SERIAL_NUMBER").
		Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

// NewServiceGetter creates a read-only Sheets API client.
func NewServiceGetter(ctx context.Context, creds Credentials) (ValuesGetter, error) {
	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsReadonlyScope)}
	switch {
	case creds.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(creds.CredentialsFile))
	case creds.APIKey != "":
		opts = append(opts, option.WithAPIKey(creds.APIKey))
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &serviceGetter{svc: svc}, nil
}

// Source reads spreadsheet ranges through a ValuesGetter.
type Source struct {
	getter ValuesGetter
	logger logging.Logger
}

// NewSource creates a Source.
func NewSource(getter ValuesGetter, logger logging.Logger) *Source {
	if logger == nil {
		logger = logging.Default()
	}
	return &Source{getter: getter, logger: logger}
}

// Fetch reads rng of the spreadsheet. The spreadsheet may be given as an ID or
// as a docs.google.com URL.
func (s *Source) Fetch(ctx context.Context, spreadsheet, rng string) (models.RawTable, error) {
	id, err := SpreadsheetID(spreadsheet)
	if err != nil {
		return models.RawTable{}, err
	}
	if strings.TrimSpace(rng) == "" {
		return models.RawTable{}, errors.New("sheet range is required")
	}

	s.logger.WithFields(
		logging.F(logging.FieldSource, id),
		logging.F("range", rng),
	).Debug("Fetching sheet values")

	values, err := s.getter.GetValues(ctx, id, rng)
	if err != nil {
		return models.RawTable{}, fmt.Errorf("fetch %s!%s: %w", id, rng, err)
	}
	return ToRawTable("sheets:"+rng, values)
}

var spreadsheetURL = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`)

// SpreadsheetID extracts the ID from a spreadsheet URL, or returns the trimmed
// input when it already is one.
func SpreadsheetID(s string) (string, error) {
	s = strings.TrimSpace(s)
	if m := spreadsheetURL.FindStringSubmatch(s); m != nil {
		return m[1], nil
	}
	if s == "" || strings.ContainsAny(s, "/ ") {
		return "", fmt.Errorf("invalid spreadsheet id: '%s'", s)
	}
	return s, nil
}

// ToRawTable converts API values into a RawTable. JSON numbers arrive as
// float64; anything outside the cell kinds a table may hold is rejected.
func ToRawTable(source string, values [][]interface{}) (models.RawTable, error) {
	rows := make([][]models.Cell, len(values))
	for i, vals := range values {
		row := make([]models.Cell, len(vals))
		for j, v := range vals {
			if !models.IsSupportedCell(v) {
				return models.RawTable{}, &parsererror.InvalidFormatError{
					Source:         source,
					ExpectedFormat: "scalar cell values",
					Msg:            fmt.Sprintf("row %d column %d holds %T", i, j, v),
				}
			}
			row[j] = v
		}
		rows[i] = row
	}
	return models.RawTable{Source: source, Rows: rows}, nil
}

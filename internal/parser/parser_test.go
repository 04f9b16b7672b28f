package parser

import (
	"testing"

	"gagyebu/ledger-csv/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectType(t *testing.T) {
	tests := []struct {
		path    string
		want    ParserType
		wantErr bool
	}{
		{"ledger.csv", CSV, false},
		{"/tmp/LEDGER.CSV", CSV, false},
		{"export.tsv", CSV, false},
		{"가계부.xlsx", XLSX, false},
		{"macro.xlsm", XLSX, false},
		{"legacy.xls", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectType(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseType(t *testing.T) {
	got, err := ParseType(" CSV ")
	require.NoError(t, err)
	assert.Equal(t, CSV, got)

	got, err = ParseType("excel")
	require.NoError(t, err)
	assert.Equal(t, XLSX, got)

	_, err = ParseType("pdf")
	assert.Error(t, err)
}

func TestBaseParser_Logger(t *testing.T) {
	var b BaseParser
	assert.NotNil(t, b.GetLogger())

	mock := logging.NewMockLogger()
	b.SetLogger(mock)
	assert.Same(t, mock, b.GetLogger())

	b.SetLogger(nil)
	assert.Same(t, mock, b.GetLogger())
}

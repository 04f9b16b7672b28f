package csvparser

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"gagyebu/ledger-csv/internal/logging"
	"gagyebu/ledger-csv/internal/models"
	"gagyebu/ledger-csv/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

func TestParse_RaggedRows(t *testing.T) {
	input := "2024년 가계부\n날짜,내용,금액\n2024-01-01,스타벅스,\"4,500원\"\n"

	table, err := NewParser(0, logging.NewMockLogger()).Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, table.Rows, 3)
	assert.Equal(t, []models.Cell{"2024년 가계부"}, table.Rows[0])
	assert.Equal(t, []models.Cell{"날짜", "내용", "금액"}, table.Rows[1])
	assert.Equal(t, []models.Cell{"2024-01-01", "스타벅스", "4,500원"}, table.Rows[2])
	assert.Equal(t, 3, table.Width())
}

func TestParse_BOMAndDelimiter(t *testing.T) {
	input := "\xEF\xBB\xBF날짜;금액\n2024-01-01;1000\n"

	table, err := NewParser(';', nil).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "날짜", table.Rows[0][0])
	assert.Equal(t, "1000", table.Rows[1][1])
}

func TestParse_EUCKR(t *testing.T) {
	encoded, _, err := transform.Bytes(korean.EUCKR.NewEncoder(), []byte("날짜,금액\n2024-01-01,1000\n"))
	require.NoError(t, err)

	table, err := NewParser(',', nil).Parse(bytes.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "날짜", table.Rows[0][0])
	assert.Equal(t, "금액", table.Rows[0][1])
}

func TestParse_Empty(t *testing.T) {
	table, err := NewParser(',', nil).Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
}

func TestParse_Binary(t *testing.T) {
	_, err := NewParser(',', nil).Parse(bytes.NewReader([]byte("PK\x03\x04\x00\x00binary")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, parsererror.ErrNotTabular))
}

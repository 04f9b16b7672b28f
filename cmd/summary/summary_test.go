package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"gagyebu/ledger-csv/internal/config"
	"gagyebu/ledger-csv/internal/container"
	"gagyebu/ledger-csv/internal/logging"
	"gagyebu/ledger-csv/internal/report"
	"gagyebu/ledger-csv/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const input = "날짜,결제수단,지출 내용,결제금액,할인\n" +
	"2026-01-02,신용카드,스타벅스,4500,500\n" +
	"2026-02-03,현금,이마트,30000,0\n" +
	"2026-02-04,현금,모르는 곳,1000,0\n"

func setup(t *testing.T) (*container.Container, string) {
	t.Helper()
	c, err := container.NewContainer(config.DefaultConfig(),
		container.WithLogger(logging.NewMockLogger()),
		container.WithTaxonomyLoader(&store.MockTaxonomyStore{}))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "jan.csv")
	require.NoError(t, os.WriteFile(path, []byte(input), 0600))
	return c, path
}

func TestRun_JSONToStdout(t *testing.T) {
	c, path := setup(t)
	var out bytes.Buffer

	require.NoError(t, Run(context.Background(), c, []string{path}, "JSON", "", &out))

	var s report.Summary
	require.NoError(t, json.Unmarshal(out.Bytes(), &s))
	assert.Equal(t, path, s.Source)
	assert.Equal(t, 3, s.Totals.Count)
	assert.Equal(t, "35000", s.Totals.Net.String())
	assert.Equal(t, 1, s.Unclassified.Count)
	require.Len(t, s.ByMonth, 2)
	assert.Equal(t, "2026-01", s.ByMonth[0].Month)
	require.Len(t, s.ByMajor, 1)
	assert.Equal(t, "식비", s.ByMajor[0].Major)
}

func TestRun_YAMLToFile(t *testing.T) {
	c, path := setup(t)
	output := filepath.Join(t.TempDir(), "report.yaml")

	require.NoError(t, Run(context.Background(), c, []string{path}, "yaml", output, &bytes.Buffer{}))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Contains(t, doc, "by_category")
	assert.Contains(t, doc, "report_id")
}

func TestRun_Text(t *testing.T) {
	c, path := setup(t)
	var out bytes.Buffer

	require.NoError(t, Run(context.Background(), c, []string{path}, "text", "", &out))
	assert.Contains(t, out.String(), "net 35,000원")
	assert.Contains(t, out.String(), "식비 > 식료품")
}

func TestRun_Errors(t *testing.T) {
	c, path := setup(t)

	assert.Error(t, Run(context.Background(), c, []string{path}, "xml", "", &bytes.Buffer{}))
	assert.Error(t, Run(context.Background(), c, nil, "json", "", &bytes.Buffer{}))
}

package normalize

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gagyebu/ledger-csv/internal/config"
	"gagyebu/ledger-csv/internal/container"
	"gagyebu/ledger-csv/internal/logging"
	"gagyebu/ledger-csv/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContainer(t *testing.T) *container.Container {
	t.Helper()
	c, err := container.NewContainer(config.DefaultConfig(),
		container.WithLogger(logging.NewMockLogger()),
		container.WithTaxonomyLoader(&store.MockTaxonomyStore{}))
	require.NoError(t, err)
	return c
}

func TestNormalizeCommand_Metadata(t *testing.T) {
	assert.Equal(t, "normalize [file...]", Cmd.Use)
	assert.Contains(t, Cmd.Short, "Normalize")
	assert.Contains(t, Cmd.Long, "Example")
	assert.NotNil(t, Cmd.RunE)
}

func TestRun_WritesCanonicalCSV(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "export.csv")
	content := "카드 이용내역\n" +
		"이용일자,가맹점명,이용금액,메모\n" +
		"2026.01.05 (월),GS칼텍스 주유소,\"55,000원\",\n" +
		"2026.01.06,환불 스타벅스,-5000,취소\n" +
		",소계,\"60,000\",\n"
	require.NoError(t, os.WriteFile(input, []byte(content), 0600))

	var stdout, stderr bytes.Buffer
	err := Run(context.Background(), newTestContainer(t), []string{input}, "", &stdout, &stderr)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 4, "header, two transactions and the subtotal row, which has a number")
	assert.Equal(t, "날짜,결제수단,지출 내용,결제금액,대분류,소분류,할인,실지출,비고", lines[0])
	assert.Equal(t, "2026-01-05,,GS칼텍스 주유소,55000,교통,주유,0,55000,", lines[1])
	assert.Equal(t, "2026-01-06,,환불 스타벅스,5000,식비,카페/간식,5000,0,취소", lines[2])
	assert.Empty(t, stderr.String())
}

func TestRun_WritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(input, []byte("날짜,지출 내용,결제금액\n2026-03-01,넷플릭스,17000\n"), 0600))
	output := filepath.Join(dir, "out", "ledger.xlsx")

	var stdout, stderr bytes.Buffer
	require.NoError(t, Run(context.Background(), newTestContainer(t), []string{input}, output, &stdout, &stderr))
	assert.FileExists(t, output)
	assert.Empty(t, stdout.String())
}

func TestRun_OutputDirectoryNamesFileAfterInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "2026-03.xlsx")
	ledgerPath := filepath.Join(dir, "seed.csv")
	require.NoError(t, os.WriteFile(ledgerPath, []byte("날짜,지출 내용,결제금액\n2026-03-01,넷플릭스,17000\n"), 0600))
	c := newTestContainer(t)
	ledger, _, err := c.LoadFile(context.Background(), ledgerPath)
	require.NoError(t, err)
	require.NoError(t, c.GetExporter().WriteFile(ledger, input))

	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(outDir, 0750))

	var stdout, stderr bytes.Buffer
	require.NoError(t, Run(context.Background(), c, []string{input}, outDir, &stdout, &stderr))
	assert.FileExists(t, filepath.Join(outDir, "2026-03.csv"))
}

func TestRun_NoInput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := Run(context.Background(), newTestContainer(t), nil, "", &stdout, &stderr)
	assert.Error(t, err)
}

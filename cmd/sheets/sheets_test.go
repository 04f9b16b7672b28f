package sheets

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"gagyebu/ledger-csv/internal/config"
	"gagyebu/ledger-csv/internal/container"
	"gagyebu/ledger-csv/internal/logging"
	"gagyebu/ledger-csv/internal/sheetsource"
	"gagyebu/ledger-csv/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGetter struct {
	values [][]interface{}
	err    error
	gotID  string
}

func (f *fakeGetter) GetValues(_ context.Context, id, _ string) ([][]interface{}, error) {
	f.gotID = id
	return f.values, f.err
}

func newContainer(t *testing.T) *container.Container {
	t.Helper()
	c, err := container.NewContainer(config.DefaultConfig(),
		container.WithLogger(logging.NewMockLogger()),
		container.WithTaxonomyLoader(&store.MockTaxonomyStore{}))
	require.NoError(t, err)
	return c
}

func TestRun(t *testing.T) {
	getter := &fakeGetter{values: [][]interface{}{
		{"2026년 가계부"},
		{"날짜", "결제수단", "지출 내용", "결제금액", "대분류", "소분류"},
		{"2026-03-01", "체크카드", "스타벅스", float64(5200), "생활", "외식"},
		{"2026-03-02", "현금", "합계", "", "", ""},
	}}
	src := sheetsource.NewSource(getter, logging.NewMockLogger())
	var stdout, stderr bytes.Buffer

	err := Run(context.Background(), newContainer(t), src,
		"https://docs.google.com/spreadsheets/d/abc_123/edit#gid=0", "가계부!A1:J", "", &stdout, &stderr)
	require.NoError(t, err)

	assert.Equal(t, "abc_123", getter.gotID)
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2026-03-01,체크카드,스타벅스,5200,생활,생필품,0,5200,", lines[1])
	assert.Contains(t, stderr.String(), "'외식' is not a minor of '생활'")
}

func TestRun_FetchError(t *testing.T) {
	src := sheetsource.NewSource(&fakeGetter{err: errors.New("403")}, logging.NewMockLogger())

	err := Run(context.Background(), newContainer(t), src, "abc", "A1:Z", "", &bytes.Buffer{}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "403")

	err = Run(context.Background(), newContainer(t), src, "not an id", "A1:Z", "", &bytes.Buffer{}, &bytes.Buffer{})
	assert.Error(t, err)
}

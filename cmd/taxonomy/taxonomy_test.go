package taxonomy

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"gagyebu/ledger-csv/internal/logging"
	"gagyebu/ledger-csv/internal/taxonomy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	names := []string{}
	for _, sub := range Cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"init", "validate", "show"}, names)
	assert.NotNil(t, initCmd.Flags().Lookup("force"))
}

func TestRunInit(t *testing.T) {
	file := filepath.Join(t.TempDir(), "conf", "taxonomy.yaml")
	var out bytes.Buffer

	require.NoError(t, RunInit(file, false, logging.NewMockLogger(), &out))
	assert.Contains(t, out.String(), file)
	assert.FileExists(t, file)

	err := RunInit(file, false, logging.NewMockLogger(), &out)
	assert.ErrorContains(t, err, "already exists")

	require.NoError(t, os.WriteFile(file, []byte("categories: []\n"), 0600))
	require.NoError(t, RunInit(file, true, logging.NewMockLogger(), &out))
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "식비")
}

func TestRunValidate(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	missing := filepath.Join(dir, "missing.yaml")
	require.NoError(t, RunValidate(missing, logging.NewMockLogger(), &out))
	assert.Contains(t, out.String(), "ok: 10 majors, 37 minors")

	bad := filepath.Join(dir, "bad.yaml")
	content := "categories:\n  - major: 식비\n    minors: [외식]\n  - major: 식비\n    minors: [배달]\n"
	require.NoError(t, os.WriteFile(bad, []byte(content), 0600))
	assert.Error(t, RunValidate(bad, logging.NewMockLogger(), &out))
}

func TestRunShow(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RunShow(taxonomy.Default(), &out))

	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 10)
	assert.Equal(t, "주거: 월세, 관리비, 공과금, 인터넷/통신, 가구/가전", string(lines[0]))
}

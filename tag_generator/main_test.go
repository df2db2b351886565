package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"MS-Sequence-Tags/tag_generator/alphabet"
	"MS-Sequence-Tags/tag_generator/io"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ladderMGF = `BEGIN IONS
TITLE=ladder
PEPMASS=400.0
CHARGE=1+
100.00000 10
171.03711 20
242.07422 30
END IONS
BEGIN IONS
TITLE=unsorted
PEPMASS=400.0
242.07422 30
100.00000 10
END IONS
`

// runCLI resets flag globals and executes the root command.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	configPath, alphabetPath, outputPath = "", "", "-"
	outputFormat, logLevel, logFormat = "tsv", "info", "text"
	workers, depth = 0, 0

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_TSV(t *testing.T) {
	dir := t.TempDir()
	mgf := writeFile(t, dir, "in.mgf", ladderMGF)
	alpha := writeFile(t, dir, "alphabet.yaml", "residues:\n  A: 71.03711\n")
	cfg := writeFile(t, dir, "cfg.yaml", "tolerance:\n  value: 0.001\n  unit: Da\n")

	stdout, stderr, err := runCLI(t, "run", mgf, "--alphabet", alpha, "--config", cfg, "--depth", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "ladder\t0\t100.00000\t2\t"))
	assert.Contains(t, lines[1], "\tAA\tAA\t71.03711,71.03711")
	assert.True(t, strings.HasPrefix(lines[2], "ladder\t1\t"))
	assert.True(t, strings.HasPrefix(lines[3], "# unsorted\terror\t"))

	assert.Contains(t, stderr, "residues=A")
	assert.Contains(t, stderr, "run_id=")
	assert.Contains(t, stderr, "tags generated")
}

func TestRun_JSONToFile(t *testing.T) {
	dir := t.TempDir()
	mgf := writeFile(t, dir, "in.mgf", ladderMGF)
	out := filepath.Join(dir, "tags.json")

	_, _, err := runCLI(t, "run", mgf, "--format", "json", "--output", out, "--log-format", "json", "--workers", "2")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var reports []map[string]any
	require.NoError(t, json.Unmarshal(data, &reports))
	require.Len(t, reports, 2)
	assert.Equal(t, "ladder", reports[0]["spectrum"])
	assert.NotEmpty(t, reports[1]["error"])
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	mgf := writeFile(t, dir, "in.mgf", ladderMGF)

	_, _, err := runCLI(t, "run", mgf, "--format", "xml")
	assert.ErrorContains(t, err, "unknown output format")

	_, _, err = runCLI(t, "run", mgf, "--depth", "-1")
	assert.ErrorContains(t, err, "invalid argument")

	_, _, err = runCLI(t, "run", filepath.Join(dir, "missing.mgf"))
	assert.Error(t, err)

	_, _, err = runCLI(t, "run")
	assert.Error(t, err)
}

// failingCloser buffers writes and fails on Close, like a file whose final flush is lost.
type failingCloser struct {
	bytes.Buffer
	closed bool
}

var errDiskFull = errors.New("disk full")

func (f *failingCloser) Close() error {
	f.closed = true
	return errDiskFull
}

func TestWriteAndClose_ReportsCloseError(t *testing.T) {
	reports := []io.Report{{Spectrum: "s1", Error: "unsorted peaks"}}

	for _, format := range []string{"tsv", "json"} {
		t.Run(format, func(t *testing.T) {
			wc := &failingCloser{}
			err := writeAndClose(wc, format, reports, alphabet.Standard())
			require.Error(t, err)
			assert.ErrorIs(t, err, errDiskFull)
			assert.True(t, wc.closed)
			assert.Contains(t, wc.String(), "s1")
		})
	}
}

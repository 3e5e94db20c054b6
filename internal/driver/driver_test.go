package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmofishsauce/hec/internal/diag"
)

func writeSource(t *testing.T, dir, text string) string {
	t.Helper()
	path := filepath.Join(dir, "in.he")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestRunExportsGeneratedSourceWithoutInvokingCompiler(t *testing.T) {
	dir := t.TempDir()
	in := writeSource(t, dir, "pub fn main() -> i32 { return 0; }")
	out := filepath.Join(dir, "out.c")

	err := Run(Options{
		InputPath:          in,
		OutputPath:         out,
		ExportGeneratedSrc: true,
	})
	require.NoError(t, err)

	generated, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(generated), "i32 main(void)")
}

func TestRunResolvesDefaultOutputPathForExportedSource(t *testing.T) {
	dir := t.TempDir()
	in := writeSource(t, dir, "pub fn main() -> i32 { return 0; }")

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(cwd)

	require.NoError(t, Run(Options{InputPath: in, ExportGeneratedSrc: true}))

	_, err = os.Stat(filepath.Join(dir, "a.c"))
	assert.NoError(t, err)
}

func TestRunSurfacesLexError(t *testing.T) {
	dir := t.TempDir()
	in := writeSource(t, dir, "fn f() { `bad` }")

	err := Run(Options{InputPath: in, ExportGeneratedSrc: true, OutputPath: filepath.Join(dir, "out.c")})
	require.Error(t, err)
	_, ok := err.(*diag.LexError)
	assert.True(t, ok, "expected *diag.LexError, got %T", err)
}

func TestRunSurfacesParseError(t *testing.T) {
	dir := t.TempDir()
	in := writeSource(t, dir, "fn f() { return")

	err := Run(Options{InputPath: in, ExportGeneratedSrc: true, OutputPath: filepath.Join(dir, "out.c")})
	require.Error(t, err)
	_, ok := err.(*diag.ParseError)
	assert.True(t, ok, "expected *diag.ParseError, got %T", err)
}

func TestRunSurfacesTypecheckError(t *testing.T) {
	dir := t.TempDir()
	in := writeSource(t, dir, "fn f() { return; } fn f() { return; }")

	err := Run(Options{InputPath: in, ExportGeneratedSrc: true, OutputPath: filepath.Join(dir, "out.c")})
	require.Error(t, err)
	_, ok := err.(*diag.TypecheckError)
	assert.True(t, ok, "expected *diag.TypecheckError, got %T", err)
}

func TestRunWrapsMissingInputFileAsHostError(t *testing.T) {
	dir := t.TempDir()
	err := Run(Options{InputPath: filepath.Join(dir, "missing.he"), ExportGeneratedSrc: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "host error")
}

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeCatalogFile creates one catalog file under dir
func writeCatalogFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), FilePermissions))
}

func TestLint_ValidDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	writeCatalogFile(t, tmpDir, "en.yaml", "greeting: \"Hello, {name}!\"\n")
	writeCatalogFile(t, tmpDir, "de.json", `{"greeting": "Hallo, {name}!"}`)

	var stdout, stderr bytes.Buffer
	code := runLint([]string{tmpDir}, &stdout, &stderr)

	assert.Equal(t, ExitCodeSuccess, code)
	assert.Contains(t, stdout.String(), LintTextSuccess)
}

func TestLint_RecursesIntoSubdirectories(t *testing.T) {
	tmpDir := t.TempDir()
	writeCatalogFile(t, filepath.Join(tmpDir, "app", "locales"), "en.yaml",
		"title: \"Dashboard\"\n")

	var stdout, stderr bytes.Buffer
	code := runLint([]string{"-F", OutputFormatJSON, tmpDir}, &stdout, &stderr)

	assert.Equal(t, ExitCodeSuccess, code)

	var output lintOutput
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &output))
	assert.True(t, output.Valid)
	assert.Equal(t, 1, output.Files)
}

func TestLint_SkipsUnsupportedFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeCatalogFile(t, tmpDir, "en.yaml", "greeting: \"Hi\"\n")
	writeCatalogFile(t, tmpDir, "README.md", "# not a catalog")

	var stdout, stderr bytes.Buffer
	code := runLint([]string{"-F", OutputFormatJSON, tmpDir}, &stdout, &stderr)

	assert.Equal(t, ExitCodeSuccess, code)

	var output lintOutput
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &output))
	assert.Equal(t, 1, output.Files)
}

func TestLint_MissingOtherBranch(t *testing.T) {
	tmpDir := t.TempDir()
	writeCatalogFile(t, tmpDir, "en.yaml",
		"inbox: \"{n, plural, one {# message}}\"\n")

	var stdout, stderr bytes.Buffer
	code := runLint([]string{tmpDir}, &stdout, &stderr)

	assert.Equal(t, ExitCodeValidationError, code)
	assert.Contains(t, stdout.String(), LintTextIssueHeader)
	assert.Contains(t, stdout.String(), "en.yaml#inbox")
}

func TestLint_SyntaxError(t *testing.T) {
	tmpDir := t.TempDir()
	writeCatalogFile(t, tmpDir, "en.yaml", "broken: \"Hello, {\"\n")

	var stdout, stderr bytes.Buffer
	code := runLint([]string{tmpDir}, &stdout, &stderr)

	assert.Equal(t, ExitCodeValidationError, code)
	assert.Contains(t, stdout.String(), "en.yaml#broken")
}

func TestLint_MixedGoodAndBadFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeCatalogFile(t, tmpDir, "en.yaml", "greeting: \"Hello, {name}!\"\n")
	writeCatalogFile(t, tmpDir, "de.yaml", "broken: \"Hallo, {\"\n")

	var stdout, stderr bytes.Buffer
	code := runLint([]string{"-F", OutputFormatJSON, tmpDir}, &stdout, &stderr)

	assert.Equal(t, ExitCodeValidationError, code)

	var output lintOutput
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &output))
	assert.False(t, output.Valid)
	assert.Equal(t, 2, output.Files)
	require.Len(t, output.Issues, 1)
	assert.Equal(t, "de.yaml", output.Issues[0].File)
	assert.Equal(t, "broken", output.Issues[0].MessageID)
}

func TestLint_JSONFormatValid(t *testing.T) {
	tmpDir := t.TempDir()
	writeCatalogFile(t, tmpDir, "en.yaml", "greeting: \"Hi\"\n")

	var stdout, stderr bytes.Buffer
	code := runLint([]string{"-F", "json", tmpDir}, &stdout, &stderr)

	assert.Equal(t, ExitCodeSuccess, code)
	assert.Contains(t, stdout.String(), "\"valid\": true")
}

func TestLint_MissingDirectory(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := runLint(nil, &stdout, &stderr)

	assert.Equal(t, ExitCodeUsageError, code)
	assert.Contains(t, stderr.String(), ErrMsgMissingDirectory)
}

func TestLint_InvalidFormat(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := runLint([]string{"-F", "xml", "somedir"}, &stdout, &stderr)

	assert.Equal(t, ExitCodeUsageError, code)
	assert.Contains(t, stderr.String(), ErrMsgMissingDirectory)
}

func TestLint_NonexistentDirectory(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := runLint([]string{"/nonexistent/locales"}, &stdout, &stderr)

	assert.Equal(t, ExitCodeInputError, code)
	assert.Contains(t, stderr.String(), ErrMsgWalkFailed)
}

func TestParseLintFlags_DirectoryArgument(t *testing.T) {
	cfg, err := parseLintFlags([]string{"./locales"})

	require.NoError(t, err)
	assert.Equal(t, "./locales", cfg.dir)
	assert.Equal(t, FlagDefaultFormat, cfg.format)
}

func TestParseLintFlags_WithFormat(t *testing.T) {
	cfg, err := parseLintFlags([]string{"-F", OutputFormatJSON, "./locales"})

	require.NoError(t, err)
	assert.Equal(t, "./locales", cfg.dir)
	assert.Equal(t, OutputFormatJSON, cfg.format)
}

func TestParseLintFlags_MissingDirectory(t *testing.T) {
	_, err := parseLintFlags(nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgMissingDirectory)
}

func TestParseLintFlags_InvalidFormat(t *testing.T) {
	_, err := parseLintFlags([]string{"-F", "xml", "./locales"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgInvalidFormat)
}

func TestIsCatalogFile(t *testing.T) {
	assert.True(t, isCatalogFile("locales/en.yaml"))
	assert.True(t, isCatalogFile("locales/en.yml"))
	assert.True(t, isCatalogFile("locales/en.json"))
	assert.True(t, isCatalogFile("locales/en.toml"))
	assert.True(t, isCatalogFile("EN.YAML"))
	assert.False(t, isCatalogFile("locales/en.txt"))
	assert.False(t, isCatalogFile("README.md"))
}

func TestIssueLocation(t *testing.T) {
	assert.Equal(t, "en.yaml", issueLocation(lintIssueOutput{File: "en.yaml"}))
	assert.Equal(t, "en.yaml#greeting",
		issueLocation(lintIssueOutput{File: "en.yaml", MessageID: "greeting"}))
}

package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/csspurge"
	"github.com/yacobolo/csspurge/internal/cssast"
	"github.com/yacobolo/csspurge/internal/options"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(configDelim)
}

// chdirTemp runs the test inside a fresh temporary directory.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})
	return dir
}

// captureOutput redirects the root command's stdout and stderr.
func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	return &stdout, &stderr
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".csspurge.yaml")
	configContent := `
css:
  - "styles/*.css"
output: dist/site.css
verbose: true

shorten: false
shorten_margin: true
trim: false
zero_units: "px, em"
special_convert_rem_desired_html_px: 8

reduce_declarations:
  declaration_names:
    - margin
  selectors:
    ".btn .icon":
      - "*"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, []string{"styles/*.css"}, k.Strings("css"))
	assert.Equal(t, "dist/site.css", k.String("output"))
	assert.True(t, k.Bool("verbose"))

	opts, err := buildOptions()
	require.NoError(t, err)
	assert.False(t, opts.Shorten)
	assert.True(t, opts.ShortenMargin)
	assert.False(t, opts.Trim)
	assert.Equal(t, "px, em", opts.ZeroUnits)
	assert.InDelta(t, 8.0, opts.SpecialConvertRemDesiredHTMLPx, 0.001)
	assert.InDelta(t, 16.0, opts.SpecialConvertRemBrowserDefaultPx, 0.001)
	assert.Equal(t, []string{"margin"}, opts.ReduceDeclarations.DeclarationNames)
	assert.Equal(t, map[string][]string{".btn .icon": {"*"}}, opts.ReduceDeclarations.Selectors)
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// Point to non-existent config, should not error
	require.NoError(t, loadConfigFromPath("/nonexistent/.csspurge.yaml"))

	opts, err := buildOptions()
	require.NoError(t, err)
	assert.Equal(t, options.Defaults(), opts)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".csspurge.yaml")
	configContent := `
trim: true
output: from-file.css
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	t.Setenv("CSSPURGE_TRIM", "false")
	t.Setenv("CSSPURGE_OUTPUT", "from-env.css")
	t.Setenv("CSSPURGE_SHORTEN_BACKGROUND_MIN", "3")

	require.NoError(t, loadConfigFromPath(configPath))

	opts, err := buildOptions()
	require.NoError(t, err)
	assert.False(t, opts.Trim)
	assert.Equal(t, 3, opts.ShortenBackgroundMin)
	assert.Equal(t, "from-env.css", k.String("output"))
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".csspurge.yaml")
	configContent := `
shorten: true
special_convert_rem: true
css:
  - from-file.css
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config", configPath, "")
	addRunFlags(cmd.Flags())
	require.NoError(t, cmd.Flags().Parse([]string{"--shorten=false", "--css", "a.css,b.css", "--move-common-declarations-into-parent"}))
	require.NoError(t, loadConfig(cmd))

	opts, err := buildOptions()
	require.NoError(t, err)
	assert.False(t, opts.Shorten)
	assert.True(t, opts.SpecialConvertRem, "unchanged flag must not override the file")
	assert.True(t, opts.MoveCommonDeclarationsIntoParent)
	assert.Equal(t, []string{"a.css", "b.css"}, k.Strings("css"))
	assert.Equal(t, "summary", k.String("format"), "flag default fills missing key")
}

func TestReduceDeclarationsFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	reducePath := filepath.Join(dir, "reduce.json")
	require.NoError(t, os.WriteFile(reducePath, []byte(`{
  "declaration_names": ["color"],
  "selectors": {".nav .item": ["margin", "padding"]}
}`), 0644))

	configPath := filepath.Join(dir, ".csspurge.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("reduce_declarations_file_location: "+reducePath+"\n"), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	opts, err := buildOptions()
	require.NoError(t, err)
	assert.Equal(t, []string{"color"}, opts.ReduceDeclarations.DeclarationNames)
	assert.Equal(t, map[string][]string{".nav .item": {"margin", "padding"}}, opts.ReduceDeclarations.Selectors)
}

func TestReduceDeclarationsFile_Missing(t *testing.T) {
	resetKoanf()
	t.Setenv("CSSPURGE_REDUCE_DECLARATIONS_FILE_LOCATION", "/nonexistent/reduce.json")
	require.NoError(t, loadConfigFromPath("/nonexistent/.csspurge.yaml"))

	_, err := buildOptions()
	assert.ErrorContains(t, err, "loading reduce declarations file")
}

func TestBuildPurgeConfig(t *testing.T) {
	resetKoanf()
	t.Setenv("CSSPURGE_OUTPUT", "out.css")
	require.NoError(t, loadConfigFromPath("/nonexistent/.csspurge.yaml"))

	config, err := buildPurgeConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "out.css", config.Output)
	assert.Empty(t, config.CSS)
	assert.True(t, config.Options.Shorten)
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	chdirTemp(t)
	captureOutput(t)

	rootCmd.SetArgs([]string{"init"})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(".csspurge.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "shorten: true")
	assert.Contains(t, string(data), "reduce_declarations:")

	// The written file must load back to the defaults
	resetKoanf()
	require.NoError(t, loadConfigFromPath(".csspurge.yaml"))
	opts, err := buildOptions()
	require.NoError(t, err)
	assert.Equal(t, options.Defaults(), opts)
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	chdirTemp(t)
	captureOutput(t)

	require.NoError(t, os.WriteFile(".csspurge.yaml", []byte("existing"), 0644))

	rootCmd.SetArgs([]string{"init"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	chdirTemp(t)
	captureOutput(t)

	require.NoError(t, os.WriteFile(".csspurge.yaml", []byte("existing"), 0644))

	rootCmd.SetArgs([]string{"init", "--force"})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(".csspurge.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "shorten: true")
}

func TestVersionCommand(t *testing.T) {
	stdout, _ := captureOutput(t)

	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "csspurge dev\n", stdout.String())
}

func TestCompletionCommand(t *testing.T) {
	stdout, _ := captureOutput(t)

	rootCmd.SetArgs([]string{"completion", "bash"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, stdout.String(), "csspurge")
}

func TestRunCommand_WritesOutputFile(t *testing.T) {
	resetKoanf()
	chdirTemp(t)
	captureOutput(t)

	require.NoError(t, os.WriteFile("a.css", []byte(".a{margin-top:0px;margin-right:0px;margin-bottom:0px;margin-left:0px}"), 0644))

	rootCmd.SetArgs([]string{"run", "--css", "a.css", "--output", "out.css", "--format", "none"})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile("out.css")
	require.NoError(t, err)
	assert.Equal(t, ".a{margin:0}", string(data))
}

func TestRunCommand_Stdout(t *testing.T) {
	resetKoanf()
	chdirTemp(t)
	stdout, stderr := captureOutput(t)

	require.NoError(t, os.WriteFile("a.css", []byte(".a{color:red}.a{color:red}"), 0644))

	rootCmd.SetArgs([]string{"run", "--css", "a.css", "--output=", "--format", "summary"})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, ".a{color:red}\n", stdout.String())
	assert.Contains(t, stderr.String(), "Optimized 1 file into stdout")
}

func TestRunCommand_NoInput(t *testing.T) {
	resetKoanf()
	chdirTemp(t)
	captureOutput(t)

	rootCmd.SetArgs([]string{"run", "--css", "missing/*.css", "--output="})
	err := rootCmd.Execute()
	assert.ErrorIs(t, err, csspurge.ErrNoInput)
}

func TestDumpCommand(t *testing.T) {
	resetKoanf()
	chdirTemp(t)
	stdout, _ := captureOutput(t)

	require.NoError(t, os.WriteFile("a.css", []byte(".a{margin-top:0;margin-right:0;margin-bottom:0;margin-left:0}"), 0644))

	rootCmd.SetArgs([]string{"dump", "a.css"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, stdout.String(), "rule .a (a.css:1:1)")
	assert.Contains(t, stdout.String(), "margin-top: 0")

	stdout.Reset()
	rootCmd.SetArgs([]string{"dump", "--optimized", "a.css"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, stdout.String(), "margin: 0")
	assert.NotContains(t, stdout.String(), "margin-top")
}

func TestPrintError(t *testing.T) {
	resetKoanf()
	t.Setenv("FORCE_COLOR", "")
	t.Setenv("GITHUB_ACTIONS", "")

	t.Run("parse error", func(t *testing.T) {
		var buf bytes.Buffer
		printError(&buf, fmt.Errorf("dump: %w", &cssast.ParseError{
			Position: cssast.Position{Source: "a.css", Line: 1, Column: 4},
			Message:  "unexpected '}'",
			Line:     ".a{}}",
		}))
		assert.Equal(t, "a.css:1:4: unexpected '}'\n\t.a{}}\n\t   ^\n", buf.String())
	})

	t.Run("no input", func(t *testing.T) {
		var buf bytes.Buffer
		printError(&buf, csspurge.ErrNoInput)
		assert.Contains(t, buf.String(), "no input stylesheets")
	})

	t.Run("other", func(t *testing.T) {
		var buf bytes.Buffer
		printError(&buf, errors.New("disk full"))
		assert.Equal(t, "Error: disk full\n", buf.String())
	})
}

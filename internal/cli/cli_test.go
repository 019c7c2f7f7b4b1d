package cli_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commonlexer/commonlexer/internal/cli"
	"github.com/commonlexer/commonlexer/internal/logging"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "1.2.3",
		Commit:  "abc123",
		Date:    "2026-01-01",
	}
}

// execute runs the root command with `args` and returns what it wrote
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCommand(testInfo())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewRootCommand(t *testing.T) {
	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)
	assert.Equal(t, "commonlexer", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := cli.NewRootCommand(testInfo())
	for _, name := range []string{"lex", "rules", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestLexCommandFlags(t *testing.T) {
	cmd := cli.NewRootCommand(testInfo())
	lex, _, err := cmd.Find([]string{"lex"})
	require.NoError(t, err)

	for _, name := range []string{"grammar", "start", "tree", "diagnostics", "summary"} {
		assert.NotNil(t, lex.Flags().Lookup(name), name)
	}
	assert.Equal(t, "g", lex.Flags().Lookup("grammar").Shorthand)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "commonlexer")
	assert.Contains(t, out, "version=1.2.3")
	assert.Contains(t, out, "commit=abc123")
	assert.Contains(t, out, "built=2026-01-01")
}

func TestLexGrammarFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ok.grammar", "A: \"a\";\n")

	out, err := execute(t, "lex", "--color", "never", path)
	require.NoError(t, err)
	assert.Contains(t, out, path+": no issues")
	assert.NotContains(t, out, "error")
}

func TestLexReportsErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "broken.grammar", "A: \"a\"\n")

	out, err := execute(t, "lex", "--color", "never", path)
	require.ErrorIs(t, err, cli.ErrParseFailed)
	assert.Equal(t, cli.ExitParseErrors, cli.ExitCode(err))
	assert.Contains(t, out, path+":")
	assert.Contains(t, out, "  error  ")
	assert.Contains(t, out, "(1 error")
}

func TestLexWithGrammar(t *testing.T) {
	dir := t.TempDir()
	grammarPath := writeFile(t, dir, "words.grammar", "Words: (Word,)+;\nWord: '[a-z]+';\n")

	t.Run("Valid input", func(t *testing.T) {
		input := writeFile(t, dir, "ok.txt", "one two\nthree")
		out, err := execute(t, "lex", "--color", "never", "--tree", "-g", grammarPath, input)
		require.NoError(t, err)
		assert.Contains(t, out, "Words (1:1 -> 2:6)")
		assert.Contains(t, out, `Word (1:1 -> 1:4) = "one"`)
		assert.Contains(t, out, "no issues, 4 nodes")
	})

	t.Run("Invalid input", func(t *testing.T) {
		input := writeFile(t, dir, "bad.txt", "one 2")
		out, err := execute(t, "lex", "--color", "never", "--summary=false", "-g", grammarPath, input)
		require.ErrorIs(t, err, cli.ErrParseFailed)
		assert.True(t, strings.HasPrefix(out, input+":1:"), out)
		assert.NotContains(t, out, "issues")
	})

	t.Run("Start rule", func(t *testing.T) {
		input := writeFile(t, dir, "word.txt", "single")
		_, err := execute(t, "lex", "--color", "never", "--start", "Word", "-g", grammarPath, input)
		require.NoError(t, err)

		_, err = execute(t, "lex", "--start", "Nope", "-g", grammarPath, input)
		require.Error(t, err)
		assert.Equal(t, cli.ExitFailure, cli.ExitCode(err))
	})
}

func TestLexBrokenGrammar(t *testing.T) {
	dir := t.TempDir()
	grammarPath := writeFile(t, dir, "broken.grammar", "Words: Word\n")
	input := writeFile(t, dir, "input.txt", "one")

	out, err := execute(t, "lex", "--color", "never", "-g", grammarPath, input)
	require.ErrorIs(t, err, cli.ErrParseFailed)
	assert.Contains(t, out, grammarPath+":")
}

func TestLexMissingFile(t *testing.T) {
	_, err := execute(t, "lex", filepath.Join(t.TempDir(), "missing.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(err))

	_, err = execute(t, "lex")
	require.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	grammarPath := writeFile(t, dir, "pair.grammar", "S: \"a\". \"b\";\n")
	input := writeFile(t, dir, "input.txt", "ab")

	// warnings are hidden by default
	out, err := execute(t, "lex", "--color", "never", "-g", grammarPath, input)
	require.NoError(t, err)
	assert.NotContains(t, out, "warning  Expected")
	assert.Contains(t, out, "1 warning")

	config := writeFile(t, dir, "commonlexer.yaml", "report:\n  diagnostics: warning\nlog:\n  level: error\n")
	out, err = execute(t, "lex", "--color", "never", "--config", config, "-g", grammarPath, input)
	require.NoError(t, err)
	assert.Contains(t, out, input+":1:2  warning  Expected space")

	// the flag wins over the config file
	out, err = execute(t, "lex", "--color", "never", "--config", config, "--diagnostics", "error", "-g", grammarPath, input)
	require.NoError(t, err)
	assert.NotContains(t, out, "warning  Expected")

	bad := writeFile(t, dir, "bad.yaml", "engine:\n  colour: red\n")
	_, err = execute(t, "lex", "--config", bad, "-g", grammarPath, input)
	require.Error(t, err)
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(err))
}

func TestLexTrailingInput(t *testing.T) {
	dir := t.TempDir()
	grammarPath := writeFile(t, dir, "words.grammar", "Words: (Word,)+;\nWord: '[a-z]+';\n")
	input := writeFile(t, dir, "input.txt", "one 2")

	out, err := execute(t, "lex", "--color", "never", "-g", grammarPath, input)
	require.ErrorIs(t, err, cli.ErrParseFailed)
	assert.Contains(t, out, input+":1:5  error  Expected end of input but got '2'  (Words)")

	// the config file may accept a partial match
	config := writeFile(t, dir, "partial.yaml", "engine:\n  require_full_match: false\n")
	out, err = execute(t, "lex", "--color", "never", "--config", config, "-g", grammarPath, input)
	require.NoError(t, err)
	assert.NotContains(t, out, "end of input")
}

func TestCommandsLogThroughContext(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ok.grammar", "A: \"a\";\n")

	run := func(args ...string) string {
		var logs bytes.Buffer
		cmd := cli.NewRootCommand(testInfo())
		cmd.SetOut(io.Discard)
		cmd.SetArgs(args)
		ctx := logging.WithLogger(context.Background(), logging.NewWithWriter(&logs, "info"))
		require.NoError(t, cmd.ExecuteContext(ctx))
		return logs.String()
	}

	logs := run("lex", "--debug", path)
	assert.Contains(t, logs, "configuration loaded")
	assert.Contains(t, logs, "parse finished")
	assert.Contains(t, logs, "bytes=8")

	logs = run("lex", path)
	assert.NotContains(t, logs, "parse finished")

	logs = run("rules", "--debug")
	assert.Contains(t, logs, "registered rule")
}

func TestRulesCommand(t *testing.T) {
	t.Run("Built in grammar", func(t *testing.T) {
		out, err := execute(t, "rules")
		require.NoError(t, err)
		assert.Contains(t, out, "File (start)")
		assert.Contains(t, out, "RuleDeclaration")
	})

	t.Run("Grammar file", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "list.grammar", "Words: (Word, Sep?)+;\nWord: '[a-z]+';\nSep?: \",\";\n")

		out, err := execute(t, "rules", "-g", path)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, []string{"ID", "NAME", "KIND"}, strings.Fields(lines[0]))
		assert.Equal(t, []string{"Words", "(start)", "node"}, strings.Fields(lines[1])[1:])
		assert.Equal(t, []string{"Word", "node"}, strings.Fields(lines[2])[1:])
		assert.Equal(t, []string{"Sep", "nodeless"}, strings.Fields(lines[3])[1:])
	})

	t.Run("Arguments are refused", func(t *testing.T) {
		_, err := execute(t, "rules", "extra")
		require.Error(t, err)
	})
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"No error", nil, cli.ExitSuccess},
		{"Parse failed", cli.ErrParseFailed, cli.ExitParseErrors},
		{"Wrapped parse failure", fmt.Errorf("lex: %w", cli.ErrParseFailed), cli.ExitParseErrors},
		{"Other error", errors.New("boom"), cli.ExitFailure},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, cli.ExitCode(test.err))
		})
	}
}

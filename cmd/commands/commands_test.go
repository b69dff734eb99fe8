package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/pluqqy/taginput/pkg/models"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := NewRootCommand("test")
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append(args, "--quiet"))

	err := root.Execute()
	return stdout.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const catalogYAML = `
tags:
  - name: golang
    description: The Go programming language
  - name: rust
  - name: django
    disabled: true
  - name: mongodb
`

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "taginput version test\n", out)
}

func TestSuggestCommand(t *testing.T) {
	catalog := writeFile(t, "tags.yaml", catalogYAML)

	tests := []struct {
		name      string
		args      []string
		wantNames []string
		wantErr   string
	}{
		{
			name:      "catalog file",
			args:      []string{"suggest", "go", "--suggestions", catalog},
			wantNames: []string{"golang", "django", "mongodb"},
		},
		{
			name:      "max suggestions",
			args:      []string{"suggest", "go", "--suggestions", catalog, "--max-suggestions", "2"},
			wantNames: []string{"golang", "django"},
		},
		{
			name:      "ad-hoc candidates",
			args:      []string{"suggest", "an", "--candidates", "apple,banana,mango"},
			wantNames: []string{"banana", "mango"},
		},
		{
			name:      "placeholder when nothing matches",
			args:      []string{"suggest", "zz", "--candidates", "apple", "--no-suggestions-text", "No matches"},
			wantNames: []string{"No matches"},
		},
		{
			name:      "regex characters are literal",
			args:      []string{"suggest", "a.b*", "--candidates", "axbb,a.b*c"},
			wantNames: []string{"a.b*c"},
		},
		{
			name:    "missing catalog",
			args:    []string{"suggest", "go", "--suggestions", "does-not-exist.yaml"},
			wantErr: "does not exist",
		},
		{
			name:    "bad output format",
			args:    []string{"suggest", "go", "-o", "xml"},
			wantErr: "invalid output format",
		},
		{
			name:    "bad max suggestions",
			args:    []string{"suggest", "go", "--max-suggestions", "0"},
			wantErr: "max suggestions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := tt.args
			if tt.wantErr == "" {
				args = append(args, "-o", "json")
			}

			out, err := executeCommand(t, args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)

			var result SuggestResult
			require.NoError(t, json.Unmarshal([]byte(out), &result))

			names := make([]string, 0, len(result.Options))
			for _, option := range result.Options {
				names = append(names, option.Name)
			}
			assert.Equal(t, tt.wantNames, names)
			assert.Equal(t, len(tt.wantNames), result.Count)
		})
	}
}

func TestSuggestCommand_Text(t *testing.T) {
	out, err := executeCommand(t, "suggest", "an", "--candidates", "banana,mango")
	require.NoError(t, err)

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "b[an][an]a")
	assert.Contains(t, out, "m[an]go")
}

func TestSuggestCommand_PlaceholderFlag(t *testing.T) {
	out, err := executeCommand(t, "suggest", "zz", "--candidates", "apple",
		"--no-suggestions-text", "nothing", "-o", "yaml")
	require.NoError(t, err)

	var result SuggestResult
	require.NoError(t, yaml.Unmarshal([]byte(out), &result))
	require.Len(t, result.Options, 1)
	assert.True(t, result.Options[0].Placeholder)
	assert.True(t, result.Options[0].Disabled)
}

func TestSuggestCommand_SettingsFile(t *testing.T) {
	catalog := writeFile(t, "tags.json", `{
		// comments are allowed
		"tags": [{"name": "alpha"}, {"name": "alpine"}, {"name": "beta"}],
	}`)
	settings := writeFile(t, ".taginput.toml", `
[suggestions]
source = "`+filepath.ToSlash(catalog)+`"
max_length = 1

[output]
format = "json"
`)

	out, err := executeCommand(t, "suggest", "al", "--config", settings)
	require.NoError(t, err)

	var result SuggestResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Options, 1)
	assert.Equal(t, "alpha", result.Options[0].Name)
	assert.Equal(t, "1", result.Options[0].ID)
}

const replayScript = `
suggestions:
  - name: golang
  - name: rust
tags: [cli]
events:
  - {type: focus}
  - {type: type, text: go}
  - {type: key, key: ArrowDown}
  - {type: key, key: Enter}
  - {type: input, text: rust}
  - {type: key, key: Tab}
  - {type: key, key: Backspace}
  - {type: input, text: pending}
`

func TestReplayCommand_Text(t *testing.T) {
	script := writeFile(t, "session.yaml", replayScript)

	out, err := executeCommand(t, "replay", script)
	require.NoError(t, err)

	assert.Contains(t, out, "STEP")
	assert.Contains(t, out, `add "golang" (query "go")`)
	assert.Contains(t, out, `add "rust" (query "rust")`)
	assert.Contains(t, out, "delete 2")
	assert.Contains(t, out, "Tags (2):")
	assert.Contains(t, out, "  cli\n  golang\n")
	assert.Contains(t, out, `Pending query: "pending"`)
}

func TestReplayCommand_JSON(t *testing.T) {
	script := writeFile(t, "session.yaml", replayScript)

	out, err := executeCommand(t, "replay", script, "-o", "json", "--transcript=false")
	require.NoError(t, err)

	var result ReplayResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, []string{"cli", "golang"}, itemNames(result.Tags))
	assert.Empty(t, result.Transcript)
	assert.Equal(t, "pending", result.Query)
}

func TestReplayCommand_Flags(t *testing.T) {
	script := writeFile(t, "session.yaml", `
events:
  - {type: type, text: "Web Dev,"}
  - {type: type, text: "x"}
  - {type: blur}
`)

	out, err := executeCommand(t, "replay", script, "-o", "json",
		"--allow-new", "--normalize", "--add-on-blur", "--min-query-length", "1",
		"--delimiters", "Enter,comma", "--tags", "base")
	require.NoError(t, err)

	var result ReplayResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, []string{"base", "web-dev", "x"}, itemNames(result.Tags))
}

func TestReplayCommand_Errors(t *testing.T) {
	_, err := executeCommand(t, "replay", "missing.yaml")
	assert.ErrorContains(t, err, "does not exist")

	bad := writeFile(t, "bad.yaml", "events:\n  - {type: teleport}\n")
	_, err = executeCommand(t, "replay", bad)
	assert.ErrorContains(t, err, "unknown event type")

	script := writeFile(t, "ok.yaml", replayScript)
	_, err = executeCommand(t, "replay", script, "--delimiters", " , ")
	assert.ErrorContains(t, err, "at least one delimiter")
}

func TestPrintTags(t *testing.T) {
	list := []models.Tag{
		models.Candidate{ID: "7", Name: "golang", Color: "#00ADD8"}.Tag(),
		{Name: "rust"},
	}

	var buf bytes.Buffer
	require.NoError(t, printTags(&buf, "text", list))
	assert.Equal(t, "golang\nrust\n", buf.String())

	buf.Reset()
	require.NoError(t, printTags(&buf, "json", list))
	var result TagsResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, TagItem{Name: "golang", ID: "7", Color: "#00ADD8"}, result.Tags[0])

	assert.Error(t, printTags(&buf, "xml", list))
}

func TestCopyTags(t *testing.T) {
	var copied string
	write := func(text string) error {
		copied = text
		return nil
	}

	require.NoError(t, copyTags(models.TagsFromNames([]string{"a", "b"}), write))
	assert.Equal(t, "a, b", copied)

	copied = ""
	require.NoError(t, copyTags(nil, write))
	assert.Empty(t, copied)

	err := copyTags(models.TagsFromNames([]string{"a"}), func(string) error { return errors.New("no display") })
	assert.ErrorContains(t, err, "no display")
}

func itemNames(items []TagItem) []string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return names
}

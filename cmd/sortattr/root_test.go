package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	sorterrors "github.com/amp-labs/amp-attrsort/errors"
	"github.com/amp-labs/amp-attrsort/maps"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// The command configures the global logger, so these tests do not run in
// parallel.

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}

	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

const people = `
- name: Carol
  age: 41
- name: Alice
- pet: true
- name: bob
  age: 7
`

func TestRoot_SortsSequence(t *testing.T) { //nolint:paralleltest
	tests := []struct {
		name string
		args []string
		want []any
	}{
		{
			name: "text, case-insensitive",
			args: []string{"-a", "name"},
			want: []any{
				map[string]any{"name": "Alice"},
				map[string]any{"name": "bob", "age": 7},
				map[string]any{"name": "Carol", "age": 41},
				map[string]any{"pet": true},
			},
		},
		{
			name: "text, case-sensitive",
			args: []string{"--attribute", "name", "--case-sensitive"},
			want: []any{
				map[string]any{"name": "Alice"},
				map[string]any{"name": "Carol", "age": 41},
				map[string]any{"name": "bob", "age": 7},
				map[string]any{"pet": true},
			},
		},
		{
			name: "numbers",
			args: []string{"-a", "age"},
			want: []any{
				map[string]any{"name": "bob", "age": 7},
				map[string]any{"name": "Carol", "age": 41},
				map[string]any{"name": "Alice"},
				map[string]any{"pet": true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, people, tt.args...)
			require.NoError(t, err)

			var got []any
			require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRoot_CaseSensitiveFromEnv(t *testing.T) { //nolint:paralleltest
	t.Setenv("SORTATTR_CASE_SENSITIVE", "true")

	stdout, _, err := execute(t, `["b", "A", "a", "B"]`, "-a", "0")
	require.NoError(t, err)

	// Strings are not containers, so nothing is sortable and order is kept.
	assert.Equal(t, "- b\n- A\n- a\n- B\n", stdout)

	stdout, _, err = execute(t, `[["b"], ["A"], ["a"], ["B"]]`, "-a", "0", "--format", "json")
	require.NoError(t, err)

	var got [][]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, [][]string{{"A"}, {"B"}, {"a"}, {"b"}}, got)
}

func TestRoot_SortsMappingFromFile(t *testing.T) { //nolint:paralleltest
	path := filepath.Join(t.TempDir(), "scores.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
0: {score: 3}
best: {score: 1}
1: unscored
2: {score: 2}
`), 0o600))

	stdout, _, err := execute(t, "", "-a", "score", "--format", "json", path)
	require.NoError(t, err)

	assert.JSONEq(t, `{"best": {"score": 1}, "0": {"score": 2}, "1": {"score": 3}, "2": "unscored"}`, stdout)

	order := []string{`"best"`, `"0"`, `"1"`, `"2"`}
	for i := 1; i < len(order); i++ {
		assert.Less(t, strings.Index(stdout, order[i-1]), strings.Index(stdout, order[i]))
	}
}

func TestRoot_DebugLogging(t *testing.T) { //nolint:paralleltest
	_, stderr, err := execute(t, people, "-a", "age", "--log-json", "--log-level", "debug")
	require.NoError(t, err)

	var excluded int

	for _, line := range strings.Split(strings.TrimSpace(stderr), "\n") {
		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &record))

		if record["msg"] == "element excluded from sort" {
			excluded++
		}
	}

	assert.Equal(t, 2, excluded)
}

const aliasBomb = `- &a [x, x, x, x, x, x, x, x, x, x]
- &b [*a, *a, *a, *a, *a, *a, *a, *a, *a, *a]
- &c [*b, *b, *b, *b, *b, *b, *b, *b, *b, *b]
- &d [*c, *c, *c, *c, *c, *c, *c, *c, *c, *c]
- &e [*d, *d, *d, *d, *d, *d, *d, *d, *d, *d]
- &f [*e, *e, *e, *e, *e, *e, *e, *e, *e, *e]
- &g [*f, *f, *f, *f, *f, *f, *f, *f, *f, *f]
`

func TestRoot_Errors(t *testing.T) { //nolint:paralleltest
	tests := []struct {
		name    string
		stdin   string
		args    []string
		wantErr error
	}{
		{name: "missing attribute", stdin: "[]", args: nil, wantErr: sorterrors.ErrWrongType},
		{name: "bad format", stdin: "[]", args: []string{"-a", "x", "--format", "xml"}, wantErr: sorterrors.ErrWrongType},
		{name: "scalar document", stdin: "42", args: []string{"-a", "x"}, wantErr: sorterrors.ErrUnsupportedCollection},
		{name: "self-referencing anchor", stdin: "a: &x\n  b: *x\n", args: []string{"-a", "b"}, wantErr: maps.ErrCyclicAlias},
		{name: "alias bomb", stdin: aliasBomb, args: []string{"-a", "x"}, wantErr: maps.ErrAliasExpansion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.stdin, tt.args...)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("bad log level", func(t *testing.T) {
		_, _, err := execute(t, "[]", "-a", "x", "--log-level", "loud")
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := execute(t, "", "-a", "x", filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

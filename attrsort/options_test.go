package attrsort_test

import (
	"testing"

	"github.com/amp-labs/amp-attrsort/attrsort"
	sorterrors "github.com/amp-labs/amp-attrsort/errors"
	"github.com/amp-labs/amp-attrsort/maps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeOptions(t *testing.T) {
	t.Parallel()

	ordered := maps.New[any]()
	ordered.Add(maps.KeyOf("caseSensitive"), true)

	tests := []struct {
		name    string
		input   any
		want    bool
		wantErr []error
	}{
		{name: "nil", input: nil, want: false},
		{name: "struct", input: attrsort.Options{CaseSensitive: true}, want: true},
		{name: "pointer", input: &attrsort.Options{CaseSensitive: true}, want: true},
		{name: "nil pointer", input: (*attrsort.Options)(nil), want: false},
		{name: "string map", input: map[string]any{"caseSensitive": true}, want: true},
		{name: "bool map", input: map[string]bool{"caseSensitive": true}, want: true},
		{name: "interface map", input: map[any]any{"caseSensitive": 1}, want: true},
		{name: "key is case insensitive", input: map[string]any{"CASESENSITIVE": "true"}, want: true},
		{name: "explicit false", input: map[string]any{"caseSensitive": false}, want: false},
		{name: "json text", input: `{"caseSensitive": true}`, want: true},
		{name: "ordered map", input: ordered, want: true},
		{name: "empty map", input: map[string]any{}, want: false},
		{
			name:    "bad value",
			input:   map[string]any{"caseSensitive": "maybe"},
			wantErr: []error{sorterrors.ErrWrongType},
		},
		{
			name:    "unknown key",
			input:   map[string]any{"reverse": true},
			wantErr: []error{sorterrors.ErrUnknownOption},
		},
		{
			name:    "several problems",
			input:   map[string]any{"reverse": true, "caseSensitive": []int{1}},
			wantErr: []error{sorterrors.ErrUnknownOption, sorterrors.ErrWrongType},
		},
		{
			name:    "not a mapping",
			input:   42,
			wantErr: []error{sorterrors.ErrWrongType},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := attrsort.DecodeOptions(tt.input)

			if len(tt.wantErr) > 0 {
				require.Error(t, err)

				for _, want := range tt.wantErr {
					require.ErrorIs(t, err, want)
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.CaseSensitive)
		})
	}
}

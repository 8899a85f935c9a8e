// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package aggtable

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedError bool
		expected      any
	}{
		{
			name:     "integral numbers become int64",
			input:    `[1, 2.0, -3]`,
			expected: []any{int64(1), int64(2), int64(-3)},
		},
		{
			name:     "fractional numbers stay float64",
			input:    `[1.5, 1e-3]`,
			expected: []any{1.5, 0.001},
		},
		{
			name:     "scalars",
			input:    `["a", true, null]`,
			expected: []any{"a", true, nil},
		},
		{
			name:     "empty array",
			input:    `[]`,
			expected: []any{},
		},
		{
			name:          "invalid json",
			input:         `{"a":`,
			expectedError: true,
		},
		{
			name:          "trailing data",
			input:         `{} {}`,
			expectedError: true,
		},
	}

	assertion := assert.New(t)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, err := Decode([]byte(tc.input))
			if tc.expectedError {
				assertion.Error(err)
				return
			}
			assertion.NoError(err)
			assertion.Equal(tc.expected, v)
		})
	}
}

func TestDecodeKeepsKeyOrder(t *testing.T) {
	assertion := assert.New(t)

	v, err := Decode([]byte(`{"zeta": 1, "alpha": {"y": 2, "b": 3}, "mid": []}`))
	assertion.NoError(err)

	obj, ok := v.(*Object)
	assertion.True(ok)
	assertion.Equal(3, obj.Len())

	var names []string
	for _, f := range obj.Fields() {
		names = append(names, f.Name)
	}
	assertion.Equal([]string{"zeta", "alpha", "mid"}, names)

	b, err := json.Marshal(obj)
	assertion.NoError(err)
	assertion.Equal(`{"zeta":1,"alpha":{"y":2,"b":3},"mid":[]}`, string(b))

	_, ok = obj.Get("missing")
	assertion.False(ok)
}

func TestNewObjectRepeatedName(t *testing.T) {
	assertion := assert.New(t)

	obj := NewObject(Field{Name: "a", Value: 1}, Field{Name: "b", Value: 2}, Field{Name: "a", Value: 3})
	assertion.Equal(2, obj.Len())

	v, ok := obj.Get("a")
	assertion.True(ok)
	assertion.Equal(3, v)
	assertion.Equal("a", obj.Fields()[0].Name)
}

func TestDecodeDepthLimit(t *testing.T) {
	nested := func(depth int) []byte {
		return []byte(`{"a":` + strings.Repeat(`{"b":`, depth-1) + `1` + strings.Repeat(`}`, depth))
	}

	tests := []struct {
		name          string
		input         []byte
		expectedError bool
	}{
		{
			name:  "at the limit",
			input: nested(MaxDecodeDepth),
		},
		{
			name:          "one past the limit",
			input:         nested(MaxDecodeDepth + 1),
			expectedError: true,
		},
		{
			name:          "arrays past the limit",
			input:         []byte(strings.Repeat("[", MaxDecodeDepth+1) + strings.Repeat("]", MaxDecodeDepth+1)),
			expectedError: true,
		},
		{
			name:          "far past the limit",
			input:         nested(1_000_000),
			expectedError: true,
		},
	}

	assertion := assert.New(t)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, err := Decode(tc.input)
			if tc.expectedError {
				assertion.ErrorIs(err, ErrTooDeep)
				assertion.Nil(v)
				return
			}
			assertion.NoError(err)
			assertion.IsType(&Object{}, v)
		})
	}
}

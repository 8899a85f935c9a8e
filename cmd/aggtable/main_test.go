// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const savedResponse = `{
	"hits": {
		"total": {"value": 2},
		"hits": [
			{"_id": "a", "_source": {"city": "Oslo", "visits": 3}},
			{"_id": "b", "_source": {"city": "Bergen"}}
		]
	},
	"aggregations": {
		"by_city": {"buckets": [
			{"key": "Oslo", "doc_count": 3, "avg_visits": {"value": 2.5}},
			{"key": "Bergen", "doc_count": 1, "avg_visits": {"value": null}}
		]},
		"nothing": {"buckets": []}
	}
}`

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "response.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunText(t *testing.T) {
	assertion := assert.New(t)

	var out bytes.Buffer
	err := run(context.Background(), []string{writeInput(t, savedResponse)}, nil, &out)
	require.NoError(t, err)

	text := out.String()
	assertion.Contains(text, "by_city (2 rows)")
	assertion.Contains(text, "by_city.avg_visits")
	assertion.Contains(text, "2.5")
	assertion.Contains(text, "nothing (0 rows)\n(no data)")
	assertion.Contains(text, "hits (2 rows)")
}

func TestRunJSON(t *testing.T) {
	assertion := assert.New(t)

	var out bytes.Buffer
	err := run(context.Background(), []string{"-format", "json", "-qualified", writeInput(t, savedResponse)}, nil, &out)
	require.NoError(t, err)

	var body struct {
		Tables []struct {
			Name    string   `json:"name"`
			Columns []string `json:"columns"`
		} `json:"tables"`
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &body))
	require.Len(t, body.Tables, 2)
	assertion.Equal("by_city", body.Tables[0].Name)
	assertion.Equal([]string{"by_city", "by_city_count", "by_city.avg_visits"}, body.Tables[0].Columns)
	assertion.Equal(int64(2), body.Total)
}

func TestRunStdinBareAggregations(t *testing.T) {
	var out bytes.Buffer
	stdin := strings.NewReader(`{"avg": {"value": 4}}`)
	err := run(context.Background(), []string{"-"}, stdin, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "avg (1 rows)")
}

func TestRunURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(savedResponse))
	}))
	defer server.Close()

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{server.URL + "/saved.json"}, nil, &out))
	assert.Contains(t, out.String(), "by_city (2 rows)")
}

func TestRunExports(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		out      func(dir string) string
		expected func(dir string) []string
	}{
		{
			name:   "avro",
			format: "avro",
			out:    func(dir string) string { return dir },
			expected: func(dir string) []string {
				return []string{filepath.Join(dir, "by_city.avro"), filepath.Join(dir, "hits.avro")}
			},
		},
		{
			name:   "parquet",
			format: "parquet",
			out:    func(dir string) string { return dir },
			expected: func(dir string) []string {
				return []string{filepath.Join(dir, "by_city.parquet"), filepath.Join(dir, "hits.parquet")}
			},
		},
		{
			name:   "sqlite",
			format: "sqlite",
			out:    func(dir string) string { return filepath.Join(dir, "tables.db") },
			expected: func(dir string) []string {
				return []string{filepath.Join(dir, "tables.db")}
			},
		},
	}

	assertion := assert.New(t)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			args := []string{"-format", tc.format, "-out", tc.out(dir), writeInput(t, savedResponse)}
			require.NoError(t, run(context.Background(), args, nil, io.Discard))
			for _, path := range tc.expected(dir) {
				assertion.FileExists(path)
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name  string
		args  func(t *testing.T) []string
		stdin string
	}{
		{name: "no input", args: func(*testing.T) []string { return nil }},
		{name: "unknown format", args: func(t *testing.T) []string { return []string{"-format", "xml", writeInput(t, savedResponse)} }},
		{name: "missing file", args: func(*testing.T) []string { return []string{"/does/not/exist.json"} }},
		{name: "not an object", args: func(*testing.T) []string { return []string{"-"} }, stdin: `[1, 2]`},
		{name: "invalid json", args: func(*testing.T) []string { return []string{"-"} }, stdin: `{"a":`},
	}

	assertion := assert.New(t)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := run(context.Background(), tc.args(t), strings.NewReader(tc.stdin), io.Discard)
			assertion.Error(err)
		})
	}
}

func TestFormatCell(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{name: "nil", value: nil, expected: ""},
		{name: "string", value: "Oslo", expected: "Oslo"},
		{name: "integer", value: int64(42), expected: "42"},
		{name: "float", value: 2.5, expected: "2.5"},
		{name: "bool", value: true, expected: "true"},
	}

	assertion := assert.New(t)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assertion.Equal(tc.expected, formatCell(tc.value))
		})
	}
}

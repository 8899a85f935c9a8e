// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package aggtable

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyKinds(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Kind
	}{
		{name: "bucket list", input: `{"buckets": []}`, expected: KindBucketList},
		{name: "bucket map", input: `{"buckets": {}}`, expected: KindBucketMap},
		{name: "metric", input: `{"value": 1}`, expected: KindMetric},
		{name: "null metric", input: `{"value": null}`, expected: KindMetric},
		{name: "percentiles", input: `{"values": {"99.0": 1}}`, expected: KindPercentileSet},
		{name: "buckets win over value", input: `{"value": 3, "buckets": []}`, expected: KindBucketList},
		{name: "scalar buckets field", input: `{"buckets": 3}`, expected: KindOpaque},
		{name: "list values", input: `{"values": [{"key": 99, "value": 1}]}`, expected: KindOpaque},
		{name: "stats", input: `{"count": 2, "min": 1, "max": 3, "avg": 2, "sum": 4}`, expected: KindOpaque},
		{name: "scalar", input: `17`, expected: KindOpaque},
	}

	assertion := assert.New(t)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			node := Classify(mustDecode(t, tc.input))
			assertion.Equal(tc.expected, node.Kind())
			assertion.Equal(tc.expected.String(), node.Kind().String())
		})
	}
}

func TestClassifyBucketChildren(t *testing.T) {
	assertion := assert.New(t)

	node := Classify(mustDecode(t, `{"buckets": [
		{"key": "a", "doc_count": 2, "from": 10, "avg": {"value": 1.5}, "inner": {"buckets": []}},
		"not a bucket"
	]}`))

	list, ok := node.(BucketList)
	assertion.True(ok)
	assertion.Len(list.Buckets, 1)

	b := list.Buckets[0]
	assertion.Equal("a", b.Key)
	assertion.Equal(int64(2), b.DocCount)
	assertion.Equal([]Child{
		{Name: "from", Node: Opaque{Raw: int64(10)}},
		{Name: "avg", Node: Metric{Value: 1.5}},
		{Name: "inner", Node: BucketList{Buckets: []Bucket{}}},
	}, b.Children)
}

func TestClassifyPlainMaps(t *testing.T) {
	assertion := assert.New(t)

	var aggs map[string]any
	err := json.Unmarshal([]byte(`{"buckets": [{"key": "a", "doc_count": 5, "z": {"value": 1}, "m": {"value": 2}}]}`), &aggs)
	assertion.NoError(err)

	list, ok := Classify(aggs).(BucketList)
	assertion.True(ok)
	assertion.Equal(int64(5), list.Buckets[0].DocCount)
	assertion.Equal("m", list.Buckets[0].Children[0].Name)
	assertion.Equal("z", list.Buckets[0].Children[1].Name)
}

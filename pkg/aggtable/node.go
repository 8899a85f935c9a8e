// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package aggtable flattens search-engine aggregation results into tables.
//
// A result tree is classified once into a closed set of node kinds, then
// walked depth-first. Bucket levels fan out into one row per bucket, metric
// and percentile children are merged into the row of the bucket that owns
// them, and nested bucket levels multiply rows.
package aggtable

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// DefaultMaxDepth is the deepest aggregation level, counted from zero at the
// root, that is classified. Anything below it is treated as opaque.
const DefaultMaxDepth = 64

const (
	fieldBuckets     = "buckets"
	fieldValue       = "value"
	fieldValues      = "values"
	fieldKey         = "key"
	fieldKeyAsString = "key_as_string"
	fieldDocCount    = "doc_count"
)

// Kind names the shape of a Node.
type Kind int

const (
	KindOpaque Kind = iota
	KindBucketList
	KindBucketMap
	KindMetric
	KindPercentileSet
)

func (k Kind) String() string {
	switch k {
	case KindBucketList:
		return "bucket_list"
	case KindBucketMap:
		return "bucket_map"
	case KindMetric:
		return "metric"
	case KindPercentileSet:
		return "percentile_set"
	default:
		return "opaque"
	}
}

// Node is one classified aggregation result. The set of implementations is
// closed: BucketList, BucketMap, Metric, PercentileSet and Opaque.
type Node interface {
	Kind() Kind
	sealed()
}

// Bucket is one group of a bucket aggregation.
type Bucket struct {
	Key      any
	DocCount int64
	Children []Child
}

// Child is a named sub-aggregation of a bucket, in document order.
type Child struct {
	Name string
	Node Node
}

// BucketList is an ordered bucket aggregation (terms, histogram, ...).
type BucketList struct {
	Buckets []Bucket
}

// BucketMap is a keyed bucket aggregation (filters, keyed ranges). Each
// bucket's Key holds the map key it was found under.
type BucketMap struct {
	Buckets []Bucket
}

// Metric is a single-value metric aggregation.
type Metric struct {
	Value any
}

// Percentile is one entry of a PercentileSet.
type Percentile struct {
	Label string
	Value any
}

// PercentileSet is a multi-value metric keyed by percentile label.
type PercentileSet struct {
	Values []Percentile
}

// Opaque is anything not recognised. Raw holds the untouched input.
type Opaque struct {
	Raw any
}

func (BucketList) Kind() Kind    { return KindBucketList }
func (BucketMap) Kind() Kind     { return KindBucketMap }
func (Metric) Kind() Kind        { return KindMetric }
func (PercentileSet) Kind() Kind { return KindPercentileSet }
func (Opaque) Kind() Kind        { return KindOpaque }

func (BucketList) sealed()    {}
func (BucketMap) sealed()     {}
func (Metric) sealed()        {}
func (PercentileSet) sealed() {}
func (Opaque) sealed()        {}

// Classify decides the kind of v and of everything below it, up to
// DefaultMaxDepth levels.
func Classify(v any) Node {
	return ClassifyLimit(v, DefaultMaxDepth)
}

// ClassifyLimit is Classify with an explicit depth bound. The root is level
// zero, so maxDepth+1 levels are classified and the ones below become Opaque.
func ClassifyLimit(v any, maxDepth int) Node {
	return classify(v, 0, maxDepth)
}

func classify(v any, depth, maxDepth int) Node {
	fields, ok := objectFields(v)
	if !ok || depth > maxDepth {
		return Opaque{Raw: v}
	}

	get := func(name string) (any, bool) {
		for _, f := range fields {
			if f.Name == name {
				return f.Value, true
			}
		}
		return nil, false
	}

	// bucket markers are checked before metric markers
	if raw, ok := get(fieldBuckets); ok {
		if list, isList := raw.([]any); isList {
			out := BucketList{Buckets: make([]Bucket, 0, len(list))}
			for _, entry := range list {
				entryFields, isObject := objectFields(entry)
				if !isObject {
					continue
				}
				out.Buckets = append(out.Buckets, newBucket(entryFields, nil, depth, maxDepth))
			}
			return out
		}
		if keyed, isObject := objectFields(raw); isObject {
			out := BucketMap{Buckets: make([]Bucket, 0, len(keyed))}
			for _, entry := range keyed {
				entryFields, isObject := objectFields(entry.Value)
				if !isObject {
					continue
				}
				key := entry.Name
				out.Buckets = append(out.Buckets, newBucket(entryFields, &key, depth, maxDepth))
			}
			return out
		}
	}

	if raw, ok := get(fieldValue); ok {
		return Metric{Value: scalar(raw)}
	}

	if raw, ok := get(fieldValues); ok {
		if labels, isObject := objectFields(raw); isObject {
			out := PercentileSet{Values: make([]Percentile, 0, len(labels))}
			for _, l := range labels {
				out.Values = append(out.Values, Percentile{Label: l.Name, Value: scalar(l.Value)})
			}
			return out
		}
	}

	return Opaque{Raw: v}
}

// newBucket reads key, doc_count and children from a bucket object. A non-nil
// mapKey replaces whatever key the object carries.
func newBucket(fields []Field, mapKey *string, depth, maxDepth int) Bucket {
	b := Bucket{Key: ""}

	var (
		key         any
		hasKey      bool
		keyAsString any
		hasKeyStr   bool
	)
	for _, f := range fields {
		switch f.Name {
		case fieldKey:
			key, hasKey = f.Value, true
		case fieldKeyAsString:
			keyAsString, hasKeyStr = f.Value, true
		case fieldDocCount:
			b.DocCount = integer(f.Value)
		default:
			b.Children = append(b.Children, Child{
				Name: f.Name,
				Node: classify(f.Value, depth+1, maxDepth),
			})
		}
	}

	switch {
	case mapKey != nil:
		b.Key = *mapKey
	case hasKeyStr && keyAsString != nil:
		b.Key = scalar(keyAsString)
	case hasKey && key != nil:
		b.Key = scalar(key)
	}
	return b
}

// objectFields returns the fields of an object value. Plain maps are read in
// sorted key order so repeated walks agree.
func objectFields(v any) ([]Field, bool) {
	switch o := v.(type) {
	case *Object:
		if o == nil {
			return nil, false
		}
		return o.Fields(), true
	case map[string]any:
		names := make([]string, 0, len(o))
		for name := range o {
			names = append(names, name)
		}
		sort.Strings(names)
		fields := make([]Field, len(names))
		for i, name := range names {
			fields[i] = Field{Name: name, Value: o[name]}
		}
		return fields, true
	default:
		return nil, false
	}
}

// scalar normalises a leaf value into a table cell. Objects and arrays are
// rendered as compact JSON text.
func scalar(v any) any {
	switch t := v.(type) {
	case nil, string, bool, int64:
		return t
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1<<53 {
			return int64(t)
		}
		return t
	case float32:
		return scalar(float64(t))
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case uint64:
		if t <= math.MaxInt64 {
			return int64(t)
		}
		return float64(t)
	case json.Number:
		return numberValue(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
}

// integer reads a count; anything non-numeric is 0.
func integer(v any) int64 {
	switch n := scalar(v).(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	default:
		return 0
	}
}

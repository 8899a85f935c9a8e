// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package aggtable

import "fmt"

const countSuffix = "_count"

// Flattener turns a classified aggregation tree into rows.
//
// The zero value produces collapsed column names: a chain of single nested
// bucket aggregations yields "region", "city" rather than "region.city".
// QualifiedNames keeps every ancestor segment instead.
type Flattener struct {
	QualifiedNames bool
}

// Flatten walks node and returns the rows it produces, each one an extension
// of base. It never fails; shapes it does not understand pass base through.
func (f Flattener) Flatten(node Node, path Path, base Row) []Row {
	name := f.name(path)

	switch n := node.(type) {
	case BucketList:
		return f.buckets(n.Buckets, path, name, base)
	case BucketMap:
		return f.buckets(n.Buckets, path, name, base)
	case Metric:
		return []Row{base.With(name, n.Value)}
	case PercentileSet:
		return []Row{withPercentiles(base, name, n)}
	default:
		if base.IsEmpty() {
			return nil
		}
		return []Row{base}
	}
}

func (f Flattener) name(path Path) string {
	if f.QualifiedNames {
		return path.QualifiedName()
	}
	return path.DisplayName()
}

func (f Flattener) buckets(buckets []Bucket, path Path, name string, base Row) []Row {
	var rows []Row
	for _, b := range buckets {
		row := base.
			With(name, b.Key).
			With(name+countSuffix, b.DocCount)

		var nested []Child
		for _, c := range b.Children {
			switch child := c.Node.(type) {
			case Metric:
				row = row.With(name+"."+c.Name, child.Value)
			case PercentileSet:
				row = withPercentiles(row, name+"."+c.Name, child)
			case BucketList, BucketMap:
				nested = append(nested, c)
			}
		}

		if len(nested) == 0 {
			rows = append(rows, row)
			continue
		}
		for _, c := range nested {
			childPath := path.Descend(c.Name, len(nested), f.QualifiedNames)
			rows = append(rows, f.Flatten(c.Node, childPath, row)...)
		}
	}
	return rows
}

func withPercentiles(row Row, prefix string, set PercentileSet) Row {
	for _, p := range set.Values {
		row = row.With(fmt.Sprintf("%s_%s", prefix, p.Label), p.Value)
	}
	return row
}

// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package aggtable

import "strings"

// Path identifies a position in an aggregation tree. The first segment is
// always the top-level aggregation name.
type Path []string

// Append returns a new path with seg added; p is left untouched.
func (p Path) Append(seg string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, seg)
}

// DisplayName is the column name used for the current level. The top-level
// aggregation name is dropped once the path is nested.
func (p Path) DisplayName() string {
	switch len(p) {
	case 0:
		return ""
	case 1:
		return p[0]
	default:
		return strings.Join(p[1:], ".")
	}
}

// QualifiedName joins every segment, top-level name included.
func (p Path) QualifiedName() string {
	return strings.Join(p, ".")
}

// Descend returns the path handed to a bucket child. Ancestry is kept only
// when the path is already nested, when sibling bucket aggregations need
// telling apart, or when qualified names are forced.
func (p Path) Descend(child string, siblingBuckets int, qualified bool) Path {
	if qualified || len(p) > 1 || siblingBuckets > 1 {
		return p.Append(child)
	}
	return Path{child}
}

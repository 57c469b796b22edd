// Copyright (c) 2019 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package value implements kind-preserving arithmetic and comparison over
// the four Mesos resource value kinds: scalar, ranges, set, and text. Add
// covers all four; Subtract and Compare cover scalar, ranges and set, and
// panic on text. Subtraction and comparison dispatch on Type instead of being
// fixed-shape field math, since ranges (ports) and sets need range-merge
// and set-difference logic that scalar quantities don't.
package value

import (
	"fmt"
	"sort"

	"github.com/mesosphere/dcos-commons/pkg/mesos"
)

// Mismatch is raised (via panic) when arithmetic is attempted across two
// Values of different kinds. This is a programmer error, not a runtime
// condition, and is not meant to be recovered from mid-pipeline.
type Mismatch struct {
	Left, Right mesos.Value_Type
	Op          string
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("value kind mismatch in %s: %s vs %s", m.Op, m.Left, m.Right)
}

func requireSameKind(op string, a, b *mesos.Value) {
	if a.GetType() != b.GetType() {
		panic(&Mismatch{Left: a.GetType(), Right: b.GetType(), Op: op})
	}
}

// Zero returns the additive identity for a value kind.
func Zero(t mesos.Value_Type) *mesos.Value {
	switch t {
	case mesos.Value_SCALAR:
		z := 0.0
		return &mesos.Value{Type: typePtr(t), Scalar: &mesos.Value_Scalar{Value: &z}}
	case mesos.Value_RANGES:
		return &mesos.Value{Type: typePtr(t), Ranges: &mesos.Value_Ranges{}}
	case mesos.Value_SET:
		return &mesos.Value{Type: typePtr(t), Set: &mesos.Value_Set{}}
	case mesos.Value_TEXT:
		s := ""
		return &mesos.Value{Type: typePtr(t), Text: &mesos.Value_Text{Value: &s}}
	default:
		panic(fmt.Sprintf("unknown value type %v", t))
	}
}

func typePtr(t mesos.Value_Type) *mesos.Value_Type { return &t }

// Add returns a new Value holding a+b. a and b must be the same kind.
func Add(a, b *mesos.Value) *mesos.Value {
	requireSameKind("add", a, b)
	switch a.GetType() {
	case mesos.Value_SCALAR:
		sum := a.GetScalar().GetValue() + b.GetScalar().GetValue()
		return &mesos.Value{Type: typePtr(mesos.Value_SCALAR), Scalar: &mesos.Value_Scalar{Value: &sum}}
	case mesos.Value_RANGES:
		return &mesos.Value{Type: typePtr(mesos.Value_RANGES), Ranges: mergeRanges(append(
			append([]*mesos.Value_Range{}, a.GetRanges().GetRange()...),
			b.GetRanges().GetRange()...))}
	case mesos.Value_SET:
		seen := map[string]bool{}
		var items []string
		for _, i := range a.GetSet().GetItem() {
			if !seen[i] {
				seen[i] = true
				items = append(items, i)
			}
		}
		for _, i := range b.GetSet().GetItem() {
			if !seen[i] {
				seen[i] = true
				items = append(items, i)
			}
		}
		return &mesos.Value{Type: typePtr(mesos.Value_SET), Set: &mesos.Value_Set{Item: items}}
	case mesos.Value_TEXT:
		combined := a.GetText().GetValue() + b.GetText().GetValue()
		return &mesos.Value{Type: typePtr(mesos.Value_TEXT), Text: &mesos.Value_Text{Value: &combined}}
	default:
		panic(fmt.Sprintf("unknown value type %v", a.GetType()))
	}
}

// Subtract returns a new Value holding a-b. For RANGES this removes any
// sub-interval of b from a; for SET it removes b's members from a.
func Subtract(a, b *mesos.Value) *mesos.Value {
	requireSameKind("subtract", a, b)
	switch a.GetType() {
	case mesos.Value_SCALAR:
		diff := a.GetScalar().GetValue() - b.GetScalar().GetValue()
		return &mesos.Value{Type: typePtr(mesos.Value_SCALAR), Scalar: &mesos.Value_Scalar{Value: &diff}}
	case mesos.Value_RANGES:
		return &mesos.Value{Type: typePtr(mesos.Value_RANGES), Ranges: subtractRanges(a.GetRanges(), b.GetRanges())}
	case mesos.Value_SET:
		remove := map[string]bool{}
		for _, i := range b.GetSet().GetItem() {
			remove[i] = true
		}
		var items []string
		for _, i := range a.GetSet().GetItem() {
			if !remove[i] {
				items = append(items, i)
			}
		}
		return &mesos.Value{Type: typePtr(mesos.Value_SET), Set: &mesos.Value_Set{Item: items}}
	default:
		panic(fmt.Sprintf("subtract not supported for value type %v", a.GetType()))
	}
}

// Compare returns <0, 0, >0 as a is less than, equal to, or greater than b.
// SCALAR comparison is total; RANGES/SET comparison is subset-based: a is
// "greater than or equal to" b iff a is a superset of b, matching the
// sufficiency test the resource pool needs ("is what's offered enough to
// satisfy what's desired").
func Compare(a, b *mesos.Value) int {
	requireSameKind("compare", a, b)
	switch a.GetType() {
	case mesos.Value_SCALAR:
		av, bv := a.GetScalar().GetValue(), b.GetScalar().GetValue()
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case mesos.Value_RANGES:
		if containsRanges(a.GetRanges(), b.GetRanges()) {
			if containsRanges(b.GetRanges(), a.GetRanges()) {
				return 0
			}
			return 1
		}
		return -1
	case mesos.Value_SET:
		aSet, bSet := setOf(a.GetSet()), setOf(b.GetSet())
		if supersetOf(aSet, bSet) {
			if supersetOf(bSet, aSet) {
				return 0
			}
			return 1
		}
		return -1
	default:
		panic(fmt.Sprintf("compare not supported for value type %v", a.GetType()))
	}
}

// Sufficient reports whether available >= desired, treating a nil desired
// value as trivially satisfied and a nil available value as never
// sufficient (unless desired is also nil).
func Sufficient(desired, available *mesos.Value) bool {
	if desired == nil {
		return true
	}
	if available == nil {
		return false
	}
	return Compare(available, desired) >= 0
}

func setOf(s *mesos.Value_Set) map[string]bool {
	out := map[string]bool{}
	for _, i := range s.GetItem() {
		out[i] = true
	}
	return out
}

func supersetOf(a, b map[string]bool) bool {
	for k := range b {
		if !a[k] {
			return false
		}
	}
	return true
}

// mergeRanges coalesces overlapping/adjacent ranges into sorted, disjoint
// intervals.
func mergeRanges(ranges []*mesos.Value_Range) *mesos.Value_Ranges {
	if len(ranges) == 0 {
		return &mesos.Value_Ranges{}
	}
	sorted := append([]*mesos.Value_Range{}, ranges...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].GetBegin() < sorted[j].GetBegin() })

	merged := []*mesos.Value_Range{cloneRange(sorted[0])}
	for _, r := range sorted[1:] {
		last := merged[len(merged)-1]
		if r.GetBegin() <= last.GetEnd()+1 {
			if r.GetEnd() > last.GetEnd() {
				end := r.GetEnd()
				last.End = &end
			}
			continue
		}
		merged = append(merged, cloneRange(r))
	}
	return &mesos.Value_Ranges{Range: merged}
}

func cloneRange(r *mesos.Value_Range) *mesos.Value_Range {
	begin, end := r.GetBegin(), r.GetEnd()
	return &mesos.Value_Range{Begin: &begin, End: &end}
}

// subtractRanges removes every sub-interval of b from a.
func subtractRanges(a, b *mesos.Value_Ranges) *mesos.Value_Ranges {
	remaining := append([]*mesos.Value_Range{}, a.GetRange()...)
	for _, br := range b.GetRange() {
		var next []*mesos.Value_Range
		for _, ar := range remaining {
			next = append(next, splitRange(ar, br)...)
		}
		remaining = next
	}
	return mergeRanges(remaining)
}

// splitRange returns the portion(s) of ar not covered by br.
func splitRange(ar, br *mesos.Value_Range) []*mesos.Value_Range {
	if br.GetEnd() < ar.GetBegin() || br.GetBegin() > ar.GetEnd() {
		return []*mesos.Value_Range{ar}
	}
	var out []*mesos.Value_Range
	if br.GetBegin() > ar.GetBegin() {
		left := br.GetBegin() - 1
		begin := ar.GetBegin()
		out = append(out, &mesos.Value_Range{Begin: &begin, End: &left})
	}
	if br.GetEnd() < ar.GetEnd() {
		right := br.GetEnd() + 1
		end := ar.GetEnd()
		out = append(out, &mesos.Value_Range{Begin: &right, End: &end})
	}
	return out
}

// containsRanges reports whether every interval in b is fully covered by
// the union of intervals in a.
func containsRanges(a, b *mesos.Value_Ranges) bool {
	for _, br := range b.GetRange() {
		if !coveredByAny(a.GetRange(), br) {
			return false
		}
	}
	return true
}

func coveredByAny(ranges []*mesos.Value_Range, target *mesos.Value_Range) bool {
	for _, r := range ranges {
		if r.GetBegin() <= target.GetBegin() && r.GetEnd() >= target.GetEnd() {
			return true
		}
	}
	return false
}

// SingleRange builds a Value of kind RANGES containing exactly [n, n].
func SingleRange(n uint64) *mesos.Value {
	return &mesos.Value{
		Type: typePtr(mesos.Value_RANGES),
		Ranges: &mesos.Value_Ranges{
			Range: []*mesos.Value_Range{{Begin: &n, End: &n}},
		},
	}
}

// Scalar builds a Value of kind SCALAR with the given amount.
func Scalar(v float64) *mesos.Value {
	return &mesos.Value{Type: typePtr(mesos.Value_SCALAR), Scalar: &mesos.Value_Scalar{Value: &v}}
}

// LowestPort returns the smallest port number available across all ranges
// in v, and false if v has none.
func LowestPort(v *mesos.Value) (uint32, bool) {
	var lowest uint64
	found := false
	for _, r := range v.GetRanges().GetRange() {
		if !found || r.GetBegin() < lowest {
			lowest = r.GetBegin()
			found = true
		}
	}
	return uint32(lowest), found
}

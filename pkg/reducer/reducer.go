package reducer

import (
	"fmt"
	"sort"

	"github.com/pronsSec/subnet-siphon/pkg/subnet"
	"go4.org/netipx"
	"golang.org/x/exp/slices"
)

// Reduce walks the subnets in the given order and keeps a subnet only if it does not overlap any subnet kept so far.
// An overlap with an identical subnet counts as well, so the first occurrence of a duplicate wins.
//
// The result depends on the input order: a broad subnet which shows up after a narrower one it contains is dropped
// instead of replacing it. Sorted input (see subnet.Sort) puts containers first and avoids that.
func Reduce(subnets []subnet.Subnet) []subnet.Subnet {
	kept := make([]subnet.Subnet, 0, len(subnets))
	idx := &keptIndex{}
	for _, candidate := range subnets {
		r := candidate.Range()
		i, overlaps := idx.search(r)
		if overlaps {
			continue
		}
		idx.insert(i, r)
		kept = append(kept, candidate)
	}
	return kept
}

// keptIndex holds the address ranges of all kept subnets. Kept subnets never overlap each other, so the ranges are
// disjoint and sorting them by their first address sorts them by their last address too.
type keptIndex struct {
	ranges []netipx.IPRange
}

// search returns the position of the first range ending at or after the start of r, and whether that range overlaps r.
func (x *keptIndex) search(r netipx.IPRange) (int, bool) {
	i := sort.Search(len(x.ranges), func(i int) bool {
		return x.ranges[i].To().Compare(r.From()) >= 0
	})
	return i, i < len(x.ranges) && x.ranges[i].From().Compare(r.To()) <= 0
}

func (x *keptIndex) insert(i int, r netipx.IPRange) {
	x.ranges = slices.Insert(x.ranges, i, r)
}

// Containment describes a subnet which is covered by another subnet of the same list.
type Containment struct {
	Inner subnet.Subnet
	Outer subnet.Subnet
}

func (c Containment) String() string {
	if c.Inner.Equal(c.Outer) {
		return fmt.Sprintf("%s is a duplicate", c.Inner)
	}
	return fmt.Sprintf("%s is contained in %s", c.Inner, c.Outer)
}

// FindContained reports every subnet of the list which is contained in, or a duplicate of, another entry. A list
// without findings is fully reduced. The order of the input does not matter.
func FindContained(subnets []subnet.Subnet) []Containment {
	sorted := slices.Clone(subnets)
	subnet.Sort(sorted)

	var found []Containment
	var open []subnet.Subnet
	for _, s := range sorted {
		for len(open) > 0 && !open[len(open)-1].Contains(s) {
			open = open[:len(open)-1]
		}
		if len(open) > 0 {
			found = append(found, Containment{Inner: s, Outer: open[len(open)-1]})
		}
		open = append(open, s)
	}
	return found
}

// Partition splits the subnets into consecutive chunks of at most size entries. The order is preserved. A size of
// zero or less returns a single partition.
func Partition(subnets []subnet.Subnet, size int) [][]subnet.Subnet {
	return chunk(subnets, size)
}

func chunk[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if size <= 0 || size >= len(items) {
		return [][]T{items}
	}
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunks = append(chunks, items[start:end:end])
	}
	return chunks
}

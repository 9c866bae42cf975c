package subnet

import (
	"cmp"
	"net/netip"

	"go4.org/netipx"
	"golang.org/x/exp/slices"
)

type Family uint8

const (
	IPv4 Family = 4
	IPv6 Family = 6
)

func (f Family) String() string {
	switch f {
	case IPv4:
		return "IPv4"
	case IPv6:
		return "IPv6"
	}
	return "unknown"
}

// Subnet is an immutable, canonical network: the address always has its host
// bits zeroed.
type Subnet struct {
	prefix netip.Prefix
}

// FromPrefix returns the canonical subnet of p.
func FromPrefix(p netip.Prefix) Subnet {
	return Subnet{prefix: p.Masked()}
}

func (s Subnet) Prefix() netip.Prefix {
	return s.prefix
}

func (s Subnet) Addr() netip.Addr {
	return s.prefix.Addr()
}

func (s Subnet) Bits() int {
	return s.prefix.Bits()
}

func (s Subnet) IsValid() bool {
	return s.prefix.IsValid()
}

func (s Subnet) Family() Family {
	if s.prefix.Addr().Is4() {
		return IPv4
	}
	return IPv6
}

// Range returns the first and last address covered by the subnet.
func (s Subnet) Range() netipx.IPRange {
	return netipx.RangeOfPrefix(s.prefix)
}

func (s Subnet) String() string {
	return s.prefix.String()
}

func (s Subnet) Equal(o Subnet) bool {
	return s.prefix == o.prefix
}

// Overlaps reports whether s and o share at least one address. Subnets of
// different families never overlap.
func (s Subnet) Overlaps(o Subnet) bool {
	if s.Family() != o.Family() {
		return false
	}
	return s.Range().Overlaps(o.Range())
}

// Contains reports whether every address of o is also part of s. A subnet
// contains itself.
func (s Subnet) Contains(o Subnet) bool {
	return s.Family() == o.Family() &&
		s.Bits() <= o.Bits() &&
		s.prefix.Contains(o.Addr())
}

// Compare orders subnets by family, then network address, then prefix length.
// Containers therefore sort before the subnets they contain.
func Compare(a, b Subnet) int {
	if c := a.Addr().Compare(b.Addr()); c != 0 {
		return c
	}
	return cmp.Compare(a.Bits(), b.Bits())
}

// CompareBroadest orders subnets by family, then prefix length, then network
// address, so that every container is visited before anything it contains.
func CompareBroadest(a, b Subnet) int {
	if c := cmp.Compare(a.Addr().BitLen(), b.Addr().BitLen()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Bits(), b.Bits()); c != 0 {
		return c
	}
	return a.Addr().Compare(b.Addr())
}

func Sort(subnets []Subnet) {
	slices.SortStableFunc(subnets, Compare)
}

func SortBroadest(subnets []Subnet) {
	slices.SortStableFunc(subnets, CompareBroadest)
}

func Strings(subnets []Subnet) []string {
	s := make([]string, 0, len(subnets))
	for _, sn := range subnets {
		s = append(s, sn.String())
	}
	return s
}

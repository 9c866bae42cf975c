package subnet

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"
	"net/netip"
	"strconv"
	"strings"
)

var (
	ErrEmptyLine     = errors.New("empty line")
	ErrInvalidAddr   = errors.New("invalid address")
	ErrInvalidPrefix = errors.New("invalid prefix length")
)

// Parse reads a single subnet in non-strict mode. Accepted forms are
// "addr/len", a bare "addr" (host prefix) and, for IPv4 only, "addr/netmask"
// or "addr/hostmask". Host bits are masked.
func Parse(line string) (Subnet, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Subnet{}, ErrEmptyLine
	}
	addrPart, maskPart, hasMask := strings.Cut(line, "/")
	addr, err := netip.ParseAddr(addrPart)
	if err != nil {
		return Subnet{}, fmt.Errorf("%w %q: %v", ErrInvalidAddr, addrPart, err)
	}
	if addr.Zone() != "" {
		return Subnet{}, fmt.Errorf("%w %q: zones are not allowed", ErrInvalidAddr, addrPart)
	}
	n := addr.BitLen()
	if hasMask {
		if n, err = parseMask(addr, maskPart); err != nil {
			return Subnet{}, err
		}
	}
	p, err := addr.Prefix(n)
	if err != nil {
		return Subnet{}, fmt.Errorf("%w %q: %v", ErrInvalidPrefix, maskPart, err)
	}
	return Subnet{prefix: p}, nil
}

// MustParse is like Parse but panics on invalid input.
func MustParse(line string) Subnet {
	s, err := Parse(line)
	if err != nil {
		panic(err)
	}
	return s
}

func parseMask(addr netip.Addr, mask string) (int, error) {
	if isDigits(mask) {
		n, err := strconv.Atoi(mask)
		if err != nil || n > addr.BitLen() {
			return 0, fmt.Errorf("%w %q", ErrInvalidPrefix, mask)
		}
		return n, nil
	}
	if addr.Is4() {
		if m, err := netip.ParseAddr(mask); err == nil && m.Is4() {
			if n, ok := maskLen(m); ok {
				return n, nil
			}
		}
	}
	return 0, fmt.Errorf("%w %q", ErrInvalidPrefix, mask)
}

// maskLen accepts a contiguous netmask (255.255.0.0) first and falls back to
// a contiguous hostmask (0.0.255.255).
func maskLen(m netip.Addr) (int, bool) {
	b := m.As4()
	v := binary.BigEndian.Uint32(b[:])
	if ones := bits.LeadingZeros32(^v); v<<ones == 0 {
		return ones, true
	}
	if zeros := bits.LeadingZeros32(v); ^v<<zeros == 0 {
		return zeros, true
	}
	return 0, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Result is the outcome of parsing one input line. Err is set when the line
// has to be skipped.
type Result struct {
	Line   int
	Raw    string
	Subnet Subnet
	Err    error
}

func (r Result) Skipped() bool {
	return r.Err != nil
}

// ParseLines parses every line independently. Line numbers start at offset+1.
func ParseLines(lines []string, offset int) []Result {
	results := make([]Result, 0, len(lines))
	for i, line := range lines {
		s, err := Parse(line)
		results = append(results, Result{
			Line:   offset + i + 1,
			Raw:    line,
			Subnet: s,
			Err:    err,
		})
	}
	return results
}

// Normalize drops skipped results and returns the remaining subnets sorted by
// Compare.
func Normalize(results []Result) []Subnet {
	subnets := make([]Subnet, 0, len(results))
	for _, r := range results {
		if r.Skipped() {
			continue
		}
		subnets = append(subnets, r.Subnet)
	}
	Sort(subnets)
	return subnets
}

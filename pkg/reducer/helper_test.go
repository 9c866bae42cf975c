package reducer

import (
	"context"
	"math/rand/v2"
	"net/netip"

	"github.com/pronsSec/subnet-siphon/pkg/subnet"
	"go4.org/netipx"
)

type MockSubnetLoader struct {
	lines []string
	err   error
}

func (m *MockSubnetLoader) Load(_ context.Context) ([]string, error) {
	return m.lines, m.err
}

func newSubnets(cidrs ...string) []subnet.Subnet {
	r := []subnet.Subnet{}
	for _, c := range cidrs {
		r = append(r, subnet.MustParse(c))
	}
	return r
}

// naiveReduce is the quadratic reference for Reduce.
func naiveReduce(subnets []subnet.Subnet) []subnet.Subnet {
	kept := []subnet.Subnet{}
	for _, candidate := range subnets {
		redundant := false
		for _, k := range kept {
			if (candidate.Overlaps(k) && !candidate.Equal(k)) || candidate.Equal(k) {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, candidate)
		}
	}
	return kept
}

// randomSubnets generates clustered subnets so that plenty of them are nested or duplicated.
func randomSubnets(seed uint64, n int) []subnet.Subnet {
	rnd := rand.New(rand.NewPCG(seed, seed))
	r := make([]subnet.Subnet, 0, n)
	for i := 0; i < n; i++ {
		if rnd.IntN(5) == 0 {
			var b [16]byte
			b[0], b[1], b[2], b[3] = 0x20, 0x01, 0x0d, 0xb8
			b[4] = byte(rnd.IntN(4))
			b[5] = byte(rnd.IntN(256))
			p := netip.PrefixFrom(netip.AddrFrom16(b), 32+rnd.IntN(17))
			r = append(r, subnet.FromPrefix(p))
			continue
		}
		b := [4]byte{10, byte(rnd.IntN(4)), byte(rnd.IntN(256)), byte(rnd.IntN(256))}
		p := netip.PrefixFrom(netip.AddrFrom4(b), 8+rnd.IntN(21))
		r = append(r, subnet.FromPrefix(p))
	}
	return r
}

func coverage(subnets []subnet.Subnet) (*netipx.IPSet, error) {
	var b netipx.IPSetBuilder
	for _, s := range subnets {
		b.AddPrefix(s.Prefix())
	}
	return b.IPSet()
}

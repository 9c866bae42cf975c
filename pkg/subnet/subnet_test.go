package subnet

import (
	"testing"

	. "github.com/onsi/gomega"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    string
		wantErr error
	}{
		{name: "ipv4 cidr", line: "10.0.0.0/8", want: "10.0.0.0/8"},
		{name: "host bits are masked", line: "10.0.0.5/8", want: "10.0.0.0/8"},
		{name: "surrounding whitespace", line: "  192.168.1.0/24\t", want: "192.168.1.0/24"},
		{name: "bare ipv4 address", line: "1.2.3.4", want: "1.2.3.4/32"},
		{name: "bare ipv6 address", line: "2001:db8::1", want: "2001:db8::1/128"},
		{name: "ipv6 cidr with host bits", line: "2001:db8::1/32", want: "2001:db8::/32"},
		{name: "netmask", line: "10.1.2.3/255.255.0.0", want: "10.1.0.0/16"},
		{name: "hostmask", line: "10.1.2.3/0.0.255.255", want: "10.1.0.0/16"},
		{name: "zero prefix", line: "8.8.8.8/0", want: "0.0.0.0/0"},
		{name: "leading zero prefix", line: "10.0.0.0/08", want: "10.0.0.0/8"},
		{name: "empty", line: "", wantErr: ErrEmptyLine},
		{name: "whitespace only", line: "   ", wantErr: ErrEmptyLine},
		{name: "garbage", line: "not-a-subnet", wantErr: ErrInvalidAddr},
		{name: "ipv4 prefix out of range", line: "10.0.0.0/33", wantErr: ErrInvalidPrefix},
		{name: "ipv6 prefix out of range", line: "::/129", wantErr: ErrInvalidPrefix},
		{name: "missing prefix", line: "10.0.0.0/", wantErr: ErrInvalidPrefix},
		{name: "negative prefix", line: "10.0.0.0/-1", wantErr: ErrInvalidPrefix},
		{name: "non contiguous mask", line: "10.0.0.0/255.0.255.0", wantErr: ErrInvalidPrefix},
		{name: "netmask on ipv6", line: "2001:db8::/ffff::", wantErr: ErrInvalidPrefix},
		{name: "zone", line: "fe80::1%eth0/64", wantErr: ErrInvalidAddr},
		{name: "double prefix", line: "10.0.0.0/8/9", wantErr: ErrInvalidPrefix},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGomegaWithT(t)
			s, err := Parse(tt.line)
			if tt.wantErr != nil {
				g.Expect(err).To(MatchError(tt.wantErr))
				g.Expect(s.IsValid()).To(BeFalse())
				return
			}
			g.Expect(err).ToNot(HaveOccurred())
			g.Expect(s.String()).To(Equal(tt.want))
		})
	}
}

func TestFamily(t *testing.T) {
	g := NewGomegaWithT(t)
	g.Expect(MustParse("10.0.0.0/8").Family()).To(Equal(IPv4))
	g.Expect(MustParse("::ffff:10.0.0.0/104").Family()).To(Equal(IPv6))
	g.Expect(IPv6.String()).To(Equal("IPv6"))
}

func TestOverlapsAndContains(t *testing.T) {
	tests := []struct {
		name       string
		a, b       string
		overlaps   bool
		aContainsB bool
		bContainsA bool
	}{
		{name: "nested", a: "10.0.0.0/8", b: "10.1.0.0/16", overlaps: true, aContainsB: true},
		{name: "identical", a: "192.168.0.0/24", b: "192.168.0.0/24", overlaps: true, aContainsB: true, bContainsA: true},
		{name: "disjoint", a: "10.0.0.0/8", b: "172.16.0.0/12"},
		{name: "adjacent", a: "192.168.1.0/25", b: "192.168.1.128/25"},
		{name: "last address", a: "192.168.1.0/24", b: "192.168.1.255/32", overlaps: true, aContainsB: true},
		{name: "ipv6 nested", a: "2001:db8::/32", b: "2001:db8:1::/48", overlaps: true, aContainsB: true},
		{name: "cross family zero prefixes", a: "0.0.0.0/0", b: "::/0"},
		{name: "cross family mapped", a: "10.0.0.0/8", b: "::ffff:10.0.0.0/104"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGomegaWithT(t)
			a, b := MustParse(tt.a), MustParse(tt.b)
			g.Expect(a.Overlaps(b)).To(Equal(tt.overlaps))
			g.Expect(b.Overlaps(a)).To(Equal(tt.overlaps))
			g.Expect(a.Contains(b)).To(Equal(tt.aContainsB))
			g.Expect(b.Contains(a)).To(Equal(tt.bContainsA))
		})
	}
}

func TestSort(t *testing.T) {
	g := NewGomegaWithT(t)
	subnets := parseAll("2001:db8::/32", "192.168.1.128/25", "10.1.0.0/16", "192.168.1.0/24", "10.0.0.0/16", "10.0.0.0/8")

	Sort(subnets)
	g.Expect(Strings(subnets)).To(Equal([]string{
		"10.0.0.0/8", "10.0.0.0/16", "10.1.0.0/16", "192.168.1.0/24", "192.168.1.128/25", "2001:db8::/32",
	}))

	SortBroadest(subnets)
	g.Expect(Strings(subnets)).To(Equal([]string{
		"10.0.0.0/8", "10.0.0.0/16", "10.1.0.0/16", "192.168.1.0/24", "192.168.1.128/25", "2001:db8::/32",
	}))

	subnets = parseAll("10.1.0.0/16", "192.168.1.0/24", "11.0.0.0/8")
	SortBroadest(subnets)
	g.Expect(Strings(subnets)).To(Equal([]string{"11.0.0.0/8", "10.1.0.0/16", "192.168.1.0/24"}))
}

func TestNormalize(t *testing.T) {
	g := NewGomegaWithT(t)
	results := ParseLines([]string{"172.16.0.0/12", "not-a-subnet", "", "10.0.0.5/8"}, 10)

	g.Expect(results).To(HaveLen(4))
	g.Expect(results[1].Skipped()).To(BeTrue())
	g.Expect(results[1].Line).To(Equal(12))
	g.Expect(results[2].Err).To(MatchError(ErrEmptyLine))
	g.Expect(results[3].Raw).To(Equal("10.0.0.5/8"))

	g.Expect(Strings(Normalize(results))).To(Equal([]string{"10.0.0.0/8", "172.16.0.0/12"}))
}

func parseAll(lines ...string) []Subnet {
	subnets := make([]Subnet, 0, len(lines))
	for _, l := range lines {
		subnets = append(subnets, MustParse(l))
	}
	return subnets
}

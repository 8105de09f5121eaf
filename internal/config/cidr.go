package config

import (
	"encoding/binary"
	"fmt"
	"net/netip"
)

// SubnetLayout is the public/private subnet split of the VPC. Index i of
// each slice belongs to availability zone i.
type SubnetLayout struct {
	Public  []string
	Private []string
}

// Subnets lays out one public and one private subnet per availability zone.
// Public subnets take the first MaxAZs slots of the VPC range and private
// subnets the next MaxAZs.
func (n NetworkConfig) Subnets() (*SubnetLayout, error) {
	vpc, err := parseIPv4Prefix(n.VPCCIDR)
	if err != nil {
		return nil, fmt.Errorf("invalid VPC CIDR: %w", err)
	}
	newbits := n.SubnetMask - vpc.Bits()

	layout := &SubnetLayout{}
	for az := range n.MaxAZs {
		public, err := CIDRSubnet(n.VPCCIDR, newbits, az)
		if err != nil {
			return nil, fmt.Errorf("failed to compute public subnet %d: %w", az, err)
		}
		private, err := CIDRSubnet(n.VPCCIDR, newbits, n.MaxAZs+az)
		if err != nil {
			return nil, fmt.Errorf("failed to compute private subnet %d: %w", az, err)
		}
		layout.Public = append(layout.Public, public)
		layout.Private = append(layout.Private, private)
	}
	return layout, nil
}

// CIDRSubnet returns subnet netnum of prefix after extending its mask by
// newbits, like Terraform's cidrsubnet. Only IPv4 is supported.
func CIDRSubnet(prefix string, newbits, netnum int) (string, error) {
	network, err := parseIPv4Prefix(prefix)
	if err != nil {
		return "", err
	}

	bits := network.Bits() + newbits
	if newbits < 0 || bits > 32 {
		return "", fmt.Errorf("prefix extension of %d bits is invalid for %s", newbits, prefix)
	}
	if count := 1 << newbits; netnum < 0 || netnum >= count {
		return "", fmt.Errorf("subnet number %d exceeds max subnets %d", netnum, count)
	}

	base := addrToUint(network.Addr()) + uint64(netnum)<<(32-bits)
	return netip.PrefixFrom(uintToAddr(base), bits).String(), nil
}

// parseIPv4Prefix parses prefix and masks it to its network address.
func parseIPv4Prefix(prefix string) (netip.Prefix, error) {
	p, err := netip.ParsePrefix(prefix)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("invalid CIDR prefix: %w", err)
	}
	if !p.Addr().Is4() {
		return netip.Prefix{}, fmt.Errorf("only IPv4 addresses are supported, got %s", prefix)
	}
	return p.Masked(), nil
}

func addrToUint(a netip.Addr) uint64 {
	b := a.As4()
	return uint64(binary.BigEndian.Uint32(b[:]))
}

func uintToAddr(v uint64) netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v)) // #nosec G115
	return netip.AddrFrom4(b)
}

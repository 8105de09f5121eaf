package config

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCIDRSubnet(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		prefix  string
		newbits int
		netnum  int
		want    string
		wantErr bool
	}{
		{"first /24", "10.5.0.0/16", 8, 0, "10.5.0.0/24", false},
		{"third /24", "10.5.0.0/16", 8, 2, "10.5.2.0/24", false},
		{"last /24", "10.5.0.0/16", 8, 255, "10.5.255.0/24", false},
		{"out of range", "10.5.0.0/16", 8, 256, "", true},
		{"too many bits", "10.5.0.0/16", 17, 0, "", true},
		{"ipv6", "2001:db8::/32", 8, 0, "", true},
		{"garbage", "nope", 8, 0, "", true},
		{"host bits masked", "10.5.7.9/16", 8, 1, "10.5.1.0/24", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := CIDRSubnet(tt.prefix, tt.newbits, tt.netnum)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNetworkSubnets(t *testing.T) {
	t.Parallel()

	layout, err := NetworkConfig{VPCCIDR: "10.5.0.0/16", MaxAZs: 2, SubnetMask: 24}.Subnets()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.5.0.0/24", "10.5.1.0/24"}, layout.Public)
	assert.Equal(t, []string{"10.5.2.0/24", "10.5.3.0/24"}, layout.Private)
}

func TestAddrToUint(t *testing.T) {
	t.Parallel()
	assert.Equal(t, uint64(3232235777), addrToUint(netip.MustParseAddr("192.168.1.1")))
	assert.Equal(t, netip.MustParseAddr("10.0.0.1"), uintToAddr(167772161))
}

func TestNetworkSubnets_InvalidCIDR(t *testing.T) {
	t.Parallel()

	_, err := NetworkConfig{VPCCIDR: "10.5.0.0", MaxAZs: 2, SubnetMask: 24}.Subnets()
	assert.ErrorContains(t, err, "invalid VPC CIDR")
}

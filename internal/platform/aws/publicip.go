package aws

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
)

// GetPublicIP returns the public IPv4 address of the host as reported by
// the address lookup service.
func (c *RealClient) GetPublicIP(ctx context.Context) (string, error) {
	if c.timeouts != nil && c.timeouts.PublicIP > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeouts.PublicIP)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.publicIPURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to query %s: %w", c.publicIPURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("address lookup returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil {
		return "", err
	}

	addr := strings.TrimSpace(string(body))
	ip := net.ParseIP(addr)
	if ip == nil || ip.To4() == nil {
		return "", fmt.Errorf("address lookup returned %q, not an IPv4 address", addr)
	}
	return ip.String(), nil
}

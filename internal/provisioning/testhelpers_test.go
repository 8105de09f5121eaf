package provisioning

import (
	"context"
	"testing"

	"github.com/napo-io/k8sway/internal/config"
	"github.com/napo-io/k8sway/internal/platform/aws"
)

func newTestContext(t *testing.T, client aws.Client, mutate func(cfg *config.Config)) (*Context, *MockObserver) {
	t.Helper()

	cfg := config.Default()
	cfg.DNS.Zone = "example.com"
	cfg.KeyPair = "k8s"
	if mutate != nil {
		mutate(cfg)
	}
	if client == nil {
		client = &aws.MockClient{}
	}

	observer := NewMockObserver()
	ctx := NewContext(context.Background(), cfg, client, WithObserver(observer))
	return ctx, observer
}

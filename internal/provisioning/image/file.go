package image

import (
	"fmt"

	"github.com/napo-io/k8sway/internal/image"
	"github.com/napo-io/k8sway/internal/provisioning"
)

// FileProvisioner loads a mapping saved by an earlier lookup instead of
// querying the provider.
type FileProvisioner struct {
	path string
}

// NewFileProvisioner creates a provisioner that reads the mapping at path.
func NewFileProvisioner(path string) *FileProvisioner {
	return &FileProvisioner{path: path}
}

// Name implements the provisioning.Phase interface.
func (p *FileProvisioner) Name() string {
	return "images"
}

// Provision implements the provisioning.Phase interface.
func (p *FileProvisioner) Provision(ctx *provisioning.Context) error {
	mapping, err := image.LoadMapping(p.path)
	if err != nil {
		return err
	}
	if _, ok := mapping.Get(ctx.Config.Region); !ok {
		return fmt.Errorf("%s has no image for deployment region %s: %w", p.path, ctx.Config.Region, image.ErrNoImageInRegion)
	}

	ctx.State.Images = mapping
	ctx.Observer.Printf("[%s] Loaded images for %d regions from %s", p.Name(), mapping.Len(), p.path)
	return nil
}

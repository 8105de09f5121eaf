package provisioning

import (
	"fmt"
	"strings"

	"github.com/napo-io/k8sway/internal/config"
)

// ValidationPhase implements the Phase interface for pre-flight validation.
type ValidationPhase struct {
	check func(*config.Config) []config.ValidationError
}

// NewValidationPhase creates a validation phase that runs every rule.
func NewValidationPhase() *ValidationPhase {
	return &ValidationPhase{check: (*config.Config).Check}
}

// NewImageValidationPhase creates a validation phase for commands that only
// look up images. Cluster settings such as dns.zone are not required.
func NewImageValidationPhase() *ValidationPhase {
	return &ValidationPhase{check: (*config.Config).CheckImageLookup}
}

// Name implements the Phase interface.
func (vp *ValidationPhase) Name() string {
	return "validation"
}

// Provision implements the Phase interface. Warnings are reported and do
// not fail the phase.
func (vp *ValidationPhase) Provision(ctx *Context) error {
	if ctx.Config == nil {
		return fmt.Errorf("no configuration loaded")
	}

	var errMsgs []string
	for _, ve := range vp.check(ctx.Config) {
		LogValidation(ctx.Observer, vp.Name(), ve.Field, ve.Message, ve.IsError())
		if ve.IsError() {
			errMsgs = append(errMsgs, ve.Error())
		}
	}

	if len(errMsgs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errMsgs, "\n  "))
	}
	return nil
}

package image

import (
	"errors"
	"fmt"
)

var (
	// ErrNoImageInRegion is matched by NoImageError.
	ErrNoImageInRegion = errors.New("no-image-in-region")

	// ErrProviderCall is matched by ProviderCallError.
	ErrProviderCall = errors.New("provider-call-failed")
)

// NoImageError reports a region without any matching image.
type NoImageError struct {
	Region      string
	NamePattern string
}

func (e *NoImageError) Error() string {
	return fmt.Sprintf("no image matching %q in region %s", e.NamePattern, e.Region)
}

// Is makes errors.Is(err, ErrNoImageInRegion) match.
func (e *NoImageError) Is(target error) bool {
	return target == ErrNoImageInRegion
}

// ProviderCallError reports a failed provider API call. Region is empty for
// calls that are not region scoped, such as listing regions.
type ProviderCallError struct {
	Region    string
	Operation string
	Err       error
}

func (e *ProviderCallError) Error() string {
	if e.Region == "" {
		return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("%s failed in region %s: %v", e.Operation, e.Region, e.Err)
}

func (e *ProviderCallError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrProviderCall) match.
func (e *ProviderCallError) Is(target error) bool {
	return target == ErrProviderCall
}

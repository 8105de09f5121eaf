// Package provisioning runs the ordered phases that turn a configuration
// into a deployed stack.
//
// The provisioning domain is organized into focused subpackages:
//   - image/: regional machine image resolution
//   - infrastructure/: hosted zone lookup, topology declaration and template synthesis
//   - stack/: template upload and CloudFormation create/update
//   - destroy/: stack deletion
//
// This root package contains the shared Context, State, Observer and the
// phases that need no provider beyond the workstation address lookup.
package provisioning

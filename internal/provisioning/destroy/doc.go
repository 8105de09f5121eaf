// Package destroy handles cluster teardown.
//
// Every cluster resource belongs to one CloudFormation stack, so teardown
// deletes the stack and waits for CloudFormation to remove its resources
// in reverse dependency order.
package destroy

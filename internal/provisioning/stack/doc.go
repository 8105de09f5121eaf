// Package stack submits the synthesized template to CloudFormation and
// waits for the stack to settle.
package stack

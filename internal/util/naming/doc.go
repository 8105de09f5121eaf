// Package naming derives physical AWS resource names and CloudFormation
// logical IDs for the cluster.
//
// Physical names are prefixed with the stack name so that several clusters
// can share an account. Classic load balancer names are capped at 32
// characters.
package naming

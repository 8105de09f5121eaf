// Package aws wraps the AWS APIs the cluster tooling talks to.
//
// The package exposes small, purpose-built interfaces (image lookup, key pair
// import, hosted zone lookup, CloudFormation stack lifecycle, template
// upload and workstation address discovery) and a RealClient backed by
// aws-sdk-go-v2. SDK clients are reached through narrow API interfaces so
// that tests can substitute fakes without network access.
package aws

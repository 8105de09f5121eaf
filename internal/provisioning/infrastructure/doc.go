// Package infrastructure declares the cluster and synthesizes its template.
//
// Provisioning runs three steps in order: the hosted zone is resolved, the
// topology is declared from the configuration and the resolved images, and
// the topology is synthesized into a CloudFormation template. Nothing is
// created in the account by this package.
package infrastructure

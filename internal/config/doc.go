// Package config defines the configuration model for a k8sway cluster stack.
//
// The [Config] struct is the canonical description of the desired stack:
// tagging, target region, VPC CIDR, hosted zone, node group sizing for the
// bastion, etcd, master and worker roles, machine image lookup parameters,
// the access policy applied to the control-plane load balancers and the
// CloudFormation stack settings. It is loaded from YAML, defaulted and
// validated before any provider call is made.
package config

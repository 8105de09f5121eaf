// Package topology declares the cluster's resources and how they may reach
// each other.
//
// A Builder works in two phases. In the first, security groups, node groups,
// load balancers and DNS records are declared. Seal ends that phase; from
// then on only ingress rules may be added with Allow. Every rule therefore
// references groups that were declared before it, and Build re-checks that
// ordering before returning an immutable Topology.
//
// BuildCluster assembles the standard four-role cluster (bastion, etcd,
// master, worker) from configuration and a resolved image mapping.
package topology

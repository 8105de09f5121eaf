// Package tags builds the AWS resource tags applied to every cluster resource.
//
// Every resource carries Project and Owner tags. Node group resources add a
// Name tag and subnets an Attribute tag of public or private.
package tags

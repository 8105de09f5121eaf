// Package cfn turns a cluster topology into a CloudFormation template.
//
// Properties are kept as plain maps so the template can be rendered as JSON
// or YAML without a typed model of every AWS resource. Logical IDs are
// derived from topology names, so synthesizing the same topology twice
// yields byte-identical output.
package cfn

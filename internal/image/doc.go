// Package image resolves the newest machine image per region.
//
// A Resolver queries every region for images matching a name pattern and
// owner, and picks the candidate with the latest creation date. Regions are
// queried concurrently with a bounded worker count but the outcome is the
// same as a sequential run. Failures are reported per region and never stop
// other regions from resolving.
//
// The result is an immutable Mapping from region to image ID, which can be
// saved to and loaded from YAML so template synthesis can run offline.
package image

// Package image resolves the newest machine image of every region before
// any resource is declared.
//
// Per-region failures are collected rather than aborting the lookup. In
// strict mode any failure fails the phase; otherwise only the deployment
// region has to resolve and the rest are reported as warnings.
package image

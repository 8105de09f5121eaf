// Package retry runs provider calls again with exponential backoff.
//
// Errors wrapped with [Fatal] are never retried. A [WithRetryIf] classifier
// narrows retries further, e.g. to throttling responses only.
package retry

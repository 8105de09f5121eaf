// Package async provides utilities for bounded parallel task execution.
package async

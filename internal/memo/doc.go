// Package memo provides a concurrency-safe, never-evicting memo table keyed by
// comparable values.
package memo

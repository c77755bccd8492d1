// Package store defines the document container seeded data is written to.
package store

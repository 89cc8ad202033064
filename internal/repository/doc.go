// Package repository turns caller-facing queries into wire requests. It
// applies defaults, trims and drops blank filters, and rejects invalid
// parameters with a domain.ValidationError before any network call.
// Repositories hold no state between calls.
package repository

// Package policy holds the pure scheduling rules: the protected modification window,
// business hours, calendar arithmetic and caller capability predicates.
//
// Nothing in this package reads the clock. Callers pass "now" explicitly.
package policy

// Package matcher decides which dependency rules apply to an address.
//
// A rule pattern is either a literal address or a regular expression wrapped
// in slashes ("/^svc\./"). Expressions use ECMAScript syntax and are matched
// case-insensitively in multiline mode. Compilation happens on first use, so
// an invalid expression surfaces as a *PatternError only when an address is
// tested against it.
package matcher

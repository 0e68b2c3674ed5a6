// Package presentation wraps held credentials into signed presentations.
//
// The holder proof is bound to a single verifier through its domain, so a
// presentation captured by one verifier cannot be replayed to another.
package presentation

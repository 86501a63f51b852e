// Package ghostconstraints is the catalog of ready-made constraint kinds
// built on top of pkg/ghost: all-different, all-equal, a linear equation in
// its ≤/=/≥ flavors, and fix-value. It is a separate package from the
// engine on purpose — the engine only knows the ghost.Constraint
// vocabulary, never a specific constraint kind.
package ghostconstraints

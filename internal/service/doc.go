// Package service implements the mutation layer over the hosts document:
// vocabulary management with rename cascade, and group/entry CRUD with
// creation-on-demand and cross-group moves.
//
// Every mutating operation is a full read-modify-write cycle against the
// store. Which lookups fail and which silently no-op is part of the
// documented contract of each method; only UpdateEntry signals not-found.
package service

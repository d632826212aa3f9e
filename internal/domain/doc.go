// Package domain defines the core domain types for the hostsadmin console.
//
// The persisted aggregate is a Document: an ordered collection of host
// groups plus the two controlled vocabularies (categories and types) used
// to classify entries.
//
// # Core Types
//
// HostGroup is a bucket of entries keyed by its category value. The
// category acts as the de facto primary key: repository operations look
// groups up by category, not by id.
//
// HostEntry is a single record inside a group: either a hosts-file text
// blob or a comment-only placeholder. Entry content is opaque; it is never
// parsed into individual IP/domain pairs.
//
// # Patches
//
// GroupPatch and EntryPatch model partial updates. Every field is a
// pointer: nil means leave the existing value unchanged. There is no
// null-means-clear semantic.
//
// # Design Principles
//
// - No database or external dependencies
// - Pure domain logic without infrastructure concerns
package domain

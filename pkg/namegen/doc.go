// Package namegen produces collision-resistant, attacker-opaque storage
// names for uploaded files.
//
// A generated name has three parts: a UTC timestamp (useful for operators
// eyeballing a directory listing), a random UUIDv4 component (122 bits of
// entropy, making collisions across the process lifetime negligible), and an
// extension taken from a fixed mapping of verified content type to
// extension. The caller-supplied original filename never participates in
// name construction - that separation is the primary path-traversal defense.
//
// Generated names contain only lowercase alphanumerics, hyphens, and a
// single extension dot. No path separators, no dot-dot sequences.
//
// # Usage
//
//	name, err := namegen.Generate("image/png")
//	// 20250114093042-3b241101-e2bb-4255-8caf-4136c566a962.png
package namegen

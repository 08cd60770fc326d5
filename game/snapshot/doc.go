// Package snapshot converts a player and farm to and from the save format
// and keeps saves in named slots.
//
// A snapshot has exactly two top-level fields, player and farm. Decode is
// strict: anything structurally wrong comes back as a *DecodeError that
// matches ErrCorruptSnapshot, while a slot that was never written reports
// ErrNoSnapshot.
package snapshot

// Package sequence implements a deterministic 32-bit linear congruential
// sequence whose state survives across process runs.
//
// The recurrence is next = (1664525*current + 1013904223) mod 2^32. Advance
// is pure; Generator owns the read-advance-write cycle against a
// storage.StateStore so the sequence continues where the previous run left
// off. Seeding overwrites the state directly without a step.
//
// The generator is not a cryptographic source, and it assumes a single
// writer per record.
package sequence

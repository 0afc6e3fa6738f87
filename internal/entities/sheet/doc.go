// Package sheet defines the canonical character sheet document, the
// persisted envelope around it, and the binding to a remote file.
//
// Documents are plain values: Clone produces an independent copy suitable
// for history snapshots.
package sheet

// Package batch turns a project's test catalogue into a single
// ready-to-execute unit: a redacted project summary plus one entry per
// selected test, each paired with a freshly created run.
//
// Preparation is a pipeline of three pure-ish stages over the client
// repositories:
//
//  1. Filter narrows the active tests by explicit ID set or by one
//     expression rule (tag, page URL, or name substring).
//  2. Scope redacts the project summary so the batch carries only the
//     credentials its tests actually reference.
//  3. Preparer fans out per-test detail fetches and run starts, bounded by
//     the project's concurrency hint, and fails the whole call if any
//     single fan-out operation fails.
//
// An empty selection is a valid outcome; callers treat it as "nothing to
// do" rather than an error.
package batch

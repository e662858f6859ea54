// Package retrieval implements the policy-document collaborator: a corpus
// of reference documents queried with deterministic term-overlap scoring.
//
// The corpus is either the built-in policy excerpts or YAML documents
// loaded from a directory; an fsnotify watcher can reload the directory
// corpus when files change. Retrieval never blocks the pipeline: an empty
// or failed corpus yields an empty result set, not an error.
//
// Scoring is intentionally not semantic. Queries and documents are reduced
// to lowercase terms and ranked by overlap, which keeps retrieval a pure
// function of the corpus and query text.
package retrieval

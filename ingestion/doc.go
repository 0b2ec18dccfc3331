// Package ingestion builds article snapshots from corpus files.
//
// The Pipeline type loads a JSON corpus of maamarim, optionally enriches
// the articles with embeddings and AI-backfilled keywords, and writes the
// result into a snapshot repository together with the corpus's abbreviation
// table. Enrichment runs concurrently on worker pools; a failed enrichment
// of one article is logged and skipped rather than failing the snapshot.
package ingestion

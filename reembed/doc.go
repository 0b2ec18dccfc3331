// Package reembed regenerates the vector embeddings of an existing article
// snapshot, typically after switching to a new embedding model.
//
// The package iterates over the stored articles in batches, requests fresh
// embeddings with retry and exponential backoff, normalizes the vectors for
// cosine similarity, and writes the updated articles back to storage.
// Progress is reported to a configurable writer.
package reembed

// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package search ranks maamar articles against free-form Hebrew queries.
//
// The Searcher type routes a query onto one of three tracks:
//   - Name track: word-overlap matching of the cleaned title against
//     article names, with an optional year filter and keyword reordering.
//   - Question track: keyword coverage scoring from AI-extracted keywords
//     (or a stop-word filtered fallback), optionally blended with cosine
//     similarity over article embeddings.
//   - Year track: exact normalized-year lookup.
//
// All matching runs over an immutable in-memory Index built once from the
// article snapshot, so no query ever touches storage.
package search

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


// Package storage provides the snapshot storage abstraction for maamar.
//
// The article corpus is static: ingestion writes a snapshot once, and the
// search service reads the whole snapshot into memory at startup. This
// package defines the repository interfaces that decouple that snapshot
// format from business logic, so different backends can be used
// interchangeably.
//
// # Constructor Return Type Pattern
//
// Public constructors return interfaces to enforce the abstraction:
//
//	repo, err := badger.NewRepository(path)  // returns storage.ArticleRepository
//
// Internal package constructors may return concrete types since they are
// only used within the implementation package.
//
// # Architecture
//
//   - Repository: transaction support and lifecycle shared by all repositories
//   - ArticleRepository: article snapshot and abbreviation table operations
//
// # Usage
//
// Create a repository instance:
//
//	repo, err := badger.NewRepository("/path/to/snapshot")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repo.Close()
//
// Use in tests with in-memory storage:
//
//	repo, err := badger.NewMemoryRepository()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repo.Close()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation
// and timeout support. Pass context.Background() for operations
// without specific timeout requirements.
package storage

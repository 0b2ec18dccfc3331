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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidArticle indicates an Article failed validation.
	ErrInvalidArticle = errors.New("invalid article")

	// ErrEmptyArticleName indicates the Name field is empty.
	ErrEmptyArticleName = errors.New("article name cannot be empty")

	// ErrEmptyFilename indicates the Filename field is empty.
	ErrEmptyFilename = errors.New("article filename cannot be empty")

	// ErrInvalidTopN indicates a negative TopN value.
	ErrInvalidTopN = errors.New("top_n cannot be negative")

	// ErrInvalidMinScore indicates a MinScore outside [0,100].
	ErrInvalidMinScore = errors.New("min score must be between 0 and 100")
)

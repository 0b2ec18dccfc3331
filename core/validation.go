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

import "fmt"

// Validate checks that an Article is well-formed before it enters a snapshot.
// Text may be empty: some source discourses carry only a title line.
func (a *Article) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrEmptyArticleName)
	}
	if a.Filename == "" {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrEmptyFilename)
	}
	return nil
}

// Validate checks the numeric bounds of a Query. Zero values are allowed
// and mean "use defaults".
func (q Query) Validate() error {
	if q.TopN < 0 {
		return ErrInvalidTopN
	}
	if q.MinScore < 0 || q.MinScore > 100 {
		return ErrInvalidMinScore
	}
	return nil
}

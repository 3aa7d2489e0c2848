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

// Domain errors
var (
	// ErrInvalidRecord indicates a FacultyRecord failed validation.
	ErrInvalidRecord = errors.New("invalid faculty record")

	// ErrEmptyName indicates the required Name field is empty or a placeholder.
	ErrEmptyName = errors.New("faculty name cannot be empty")

	// ErrDuplicateName indicates two records share the same name.
	ErrDuplicateName = errors.New("duplicate faculty name")

	// ErrEmptyQuery indicates an empty or whitespace-only search query.
	// It is returned before any embedding call is made.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrInvalidTopK indicates a non-positive result count was requested.
	ErrInvalidTopK = errors.New("topK must be at least 1")

	// ErrEmptyCorpus indicates a search was attempted with zero indexed records.
	ErrEmptyCorpus = errors.New("no faculty records indexed")

	// ErrEmbeddingUnavailable indicates the embedding backend could not be
	// reached. Indexing and query operations fail fast with this error;
	// there is no silent degradation to keyword-only search.
	ErrEmbeddingUnavailable = errors.New("embedding backend unavailable")
)

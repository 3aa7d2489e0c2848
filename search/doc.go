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


// Package search provides hybrid semantic and keyword search over
// faculty records.
//
// The Searcher type implements a multi-stage search algorithm that combines:
//   - Semantic search using per-field vector embeddings with relevance weights
//   - Literal keyword matching against expanded query tokens
//   - A specialization-match boost for candidates whose area of
//     specialization contains the query verbatim
//
// Queries run through abbreviation expansion before embedding so that
// short forms like "ml" retrieve the same candidates as "machine
// learning". Result ordering is fully deterministic: descending final
// score, ties broken by ascending faculty identifier.
package search

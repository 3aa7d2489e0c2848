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


// Package ai provides the text embedding abstraction used by facsearch.
//
// The package defines the Embedder interface, which maps arbitrary text
// to fixed-length dense vectors. The index builder and the query path
// both go through this interface; the rest of the codebase never talks
// to an embedding backend directly.
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//     (Ollama, LocalAI, vLLM, hosted OpenAI)
//   - ai/mock: Deterministic test double for unit testing without an
//     external model
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewEmbedder) return the ai.Embedder
// INTERFACE to enforce abstraction and prevent accidental coupling to a
// concrete backend:
//
//	embedder, err := openai.NewEmbedder(config)  // returns ai.Embedder
//
// Test utility constructors (mock.NewMockEmbedder) return CONCRETE types
// to enable test assertions and behavior injection:
//
//	mockEmbed := mock.NewMockEmbedder()  // returns *mock.MockEmbedder
//	mockEmbed.EmbedTextFunc = ...        // needs concrete type
//	count := mockEmbed.CallCount()       // test assertion
//
// # Availability
//
// Embedding is a hard dependency of both indexing and querying. When the
// backend is unreachable, implementations return an error and callers
// surface it as core.ErrEmbeddingUnavailable; there is no implicit
// fallback to keyword-only search.
package ai

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


// Package cache persists built embeddings so process start can skip the
// expensive embedding step when the underlying data has not changed.
//
// The snapshot is a single versioned binary file carrying a content
// fingerprint, the normalized documents, and their embeddings. A
// fingerprint or version mismatch, a truncated file, or any decode
// failure is reported as a miss so the caller rebuilds from scratch;
// the cache never fails a startup.
package cache

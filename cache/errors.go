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


package cache

import "errors"

var (
	// ErrCacheMiss indicates no usable snapshot exists for the requested
	// fingerprint. The caller should rebuild.
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheCorrupt indicates the snapshot file exists but could not
	// be decoded. Callers treat it like a miss; the file is overwritten
	// on the next save.
	ErrCacheCorrupt = errors.New("cache file corrupt")

	// ErrPathRequired is returned when a Manager is created without a
	// snapshot path.
	ErrPathRequired = errors.New("cache path required")
)

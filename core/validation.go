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

import (
	"fmt"
	"strings"
)

// ValidateFacultyRecord validates a FacultyRecord according to domain rules.
//
// Validation rules:
//   - Name must not be empty after trimming whitespace
//
// NOT validated (handled downstream):
//   - Field presence (the normalizer decides which fields are placeholders)
//   - ID (derived from Name at ingestion time)
func ValidateFacultyRecord(record *FacultyRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}

	if strings.TrimSpace(record.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyName)
	}

	return nil
}

// ValidateFieldKind validates that a FieldKind has a known value.
func ValidateFieldKind(kind FieldKind) error {
	switch kind {
	case FieldName, FieldSpecialization, FieldBiography, FieldPublications, FieldEducation:
		return nil
	}
	return fmt.Errorf("%w: unknown field kind %d", ErrInvalidRecord, kind)
}

package core

import (
	"errors"
	"testing"
)

func TestValidateFacultyRecord(t *testing.T) {
	tests := []struct {
		name    string
		record  *FacultyRecord
		wantErr error
	}{
		{
			name: "valid record",
			record: &FacultyRecord{
				Name:           "Dr. Jane Smith",
				Specialization: "Machine Learning",
			},
			wantErr: nil,
		},
		{
			name: "valid record with only a name",
			record: &FacultyRecord{
				Name: "Dr. Jane Smith",
			},
			wantErr: nil,
		},
		{
			name:    "missing name",
			record:  &FacultyRecord{Specialization: "Machine Learning"},
			wantErr: ErrEmptyName,
		},
		{
			name:    "whitespace-only name",
			record:  &FacultyRecord{Name: "   \t"},
			wantErr: ErrEmptyName,
		},
		{
			name:    "nil record",
			record:  nil,
			wantErr: ErrInvalidRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFacultyRecord(tt.record)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateFacultyRecord() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateFacultyRecord() = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("ValidateFacultyRecord() = %v, should wrap ErrInvalidRecord", err)
			}
		})
	}
}

func TestValidateFieldKind(t *testing.T) {
	for _, kind := range ScoringFields {
		if err := ValidateFieldKind(kind); err != nil {
			t.Errorf("ValidateFieldKind(%s) = %v, want nil", kind, err)
		}
	}

	if err := ValidateFieldKind(FieldKind(0)); err == nil {
		t.Error("ValidateFieldKind(0) = nil, want error")
	}
	if err := ValidateFieldKind(FieldKind(42)); err == nil {
		t.Error("ValidateFieldKind(42) = nil, want error")
	}
}

package storage

import (
	"testing"
	"time"

	"github.com/poiesic/facsearch/core"
)

func TestIDRoundTrip(t *testing.T) {
	ids := []core.ID{0, 1, 255, 65536, core.IDFromContent("Alice Chen")}

	for _, id := range ids {
		data := MarshalID(id)
		got, err := UnmarshalID(data)
		if err != nil {
			t.Fatalf("Failed to unmarshal ID %d: %v", id, err)
		}
		if got != id {
			t.Fatalf("Expected ID %d, got %d", id, got)
		}
	}
}

func TestUnmarshalIDTruncated(t *testing.T) {
	if _, err := UnmarshalID(nil); err == nil {
		t.Fatal("Expected error for empty input")
	}
}

func TestFacultyRecordRoundTrip(t *testing.T) {
	record := &core.FacultyRecord{
		Id:             core.IDFromContent("Alice Chen"),
		Name:           "Alice Chen",
		Specialization: "Plasma Physics, Fusion Energy",
		Education:      "PhD Physics, MIT",
		Biography:      "Works on magnetically confined plasmas.",
		Publications:   "Tokamak stability under high beta; Edge turbulence models",
		Email:          "achen@example.edu",
		Phone:          "555-0142",
		Address:        "Physics Building, Room 301",
		InsertedAt:     time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt:      time.Date(2025, 4, 2, 16, 30, 0, 0, time.UTC),
	}

	data := MarshalFacultyRecord(record)
	got, err := UnmarshalFacultyRecord(data)
	if err != nil {
		t.Fatalf("Failed to unmarshal record: %v", err)
	}

	if *got != *record {
		t.Fatalf("Round trip mismatch:\nwant %+v\ngot  %+v", record, got)
	}
}

func TestFacultyRecordSparseFields(t *testing.T) {
	record := &core.FacultyRecord{
		Id:   core.IDFromContent("Bob Park"),
		Name: "Bob Park",
	}

	data := MarshalFacultyRecord(record)
	got, err := UnmarshalFacultyRecord(data)
	if err != nil {
		t.Fatalf("Failed to unmarshal sparse record: %v", err)
	}
	if got.Name != "Bob Park" || got.Specialization != "" {
		t.Fatalf("Unexpected record: %+v", got)
	}
}

func TestUnmarshalFacultyRecordCorrupt(t *testing.T) {
	record := &core.FacultyRecord{Id: 7, Name: "Alice Chen"}
	data := MarshalFacultyRecord(record)

	if _, err := UnmarshalFacultyRecord(data[:len(data)-2]); err == nil {
		t.Fatal("Expected error for truncated data")
	}
}

package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the persisted domain types. The
// serialized schema is small and stable, so the serializers are kept in
// this file instead of being generated.
//
// Field order is part of the wire format and must not change without a
// snapshot format version bump.

// VectorMUS serializes embedding vectors as raw little-endian float32s
// with a varint length prefix.
var VectorMUS = ord.NewSliceSer[float32](raw.Float32)

// IDMUS serializes ID values.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (id ID, n int, err error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) (size int) {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

// FieldKindMUS serializes FieldKind values.
var FieldKindMUS = fieldKindMUS{}

type fieldKindMUS struct{}

func (fieldKindMUS) Marshal(k FieldKind, bs []byte) (n int) {
	return varint.Int.Marshal(int(k), bs)
}

func (fieldKindMUS) Unmarshal(bs []byte) (k FieldKind, n int, err error) {
	v, n, err := varint.Int.Unmarshal(bs)
	return FieldKind(v), n, err
}

func (fieldKindMUS) Size(k FieldKind) (size int) {
	return varint.Int.Size(int(k))
}

func (fieldKindMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

// timeMUS serializes timestamps as Unix microseconds.
var timeMUS = timeMicroMUS{}

type timeMicroMUS struct{}

func (timeMicroMUS) Marshal(t time.Time, bs []byte) (n int) {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func (timeMicroMUS) Unmarshal(bs []byte) (t time.Time, n int, err error) {
	v, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(v).UTC(), n, nil
}

func (timeMicroMUS) Size(t time.Time) (size int) {
	return varint.Int64.Size(t.UnixMicro())
}

func (timeMicroMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int64.Skip(bs)
}

// FacultyRecordMUS serializes FacultyRecord values.
var FacultyRecordMUS = facultyRecordMUS{}

type facultyRecordMUS struct{}

func (facultyRecordMUS) Marshal(v FacultyRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.Specialization, bs[n:])
	n += ord.String.Marshal(v.Education, bs[n:])
	n += ord.String.Marshal(v.Biography, bs[n:])
	n += ord.String.Marshal(v.Publications, bs[n:])
	n += ord.String.Marshal(v.Email, bs[n:])
	n += ord.String.Marshal(v.Phone, bs[n:])
	n += ord.String.Marshal(v.Address, bs[n:])
	n += timeMUS.Marshal(v.InsertedAt, bs[n:])
	n += timeMUS.Marshal(v.UpdatedAt, bs[n:])
	return n
}

func (facultyRecordMUS) Unmarshal(bs []byte) (v FacultyRecord, n int, err error) {
	var n1 int
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.Name, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Specialization, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Education, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Biography, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Publications, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Email, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Phone, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Address, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.InsertedAt, n1, err = timeMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.UpdatedAt, n1, err = timeMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (facultyRecordMUS) Size(v FacultyRecord) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Name)
	size += ord.String.Size(v.Specialization)
	size += ord.String.Size(v.Education)
	size += ord.String.Size(v.Biography)
	size += ord.String.Size(v.Publications)
	size += ord.String.Size(v.Email)
	size += ord.String.Size(v.Phone)
	size += ord.String.Size(v.Address)
	size += timeMUS.Size(v.InsertedAt)
	size += timeMUS.Size(v.UpdatedAt)
	return size
}

func (facultyRecordMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = IDMUS.Skip(bs); err != nil {
		return
	}
	for i := 0; i < 8; i++ {
		if n1, err = ord.String.Skip(bs[n:]); err != nil {
			return n + n1, err
		}
		n += n1
	}
	for i := 0; i < 2; i++ {
		if n1, err = timeMUS.Skip(bs[n:]); err != nil {
			return n + n1, err
		}
		n += n1
	}
	return n, nil
}

// FieldTextMUS serializes FieldText values.
var FieldTextMUS = fieldTextMUS{}

type fieldTextMUS struct{}

func (fieldTextMUS) Marshal(v FieldText, bs []byte) (n int) {
	n = FieldKindMUS.Marshal(v.Kind, bs)
	n += ord.String.Marshal(v.Text, bs[n:])
	n += ord.Bool.Marshal(v.Present, bs[n:])
	return n
}

func (fieldTextMUS) Unmarshal(bs []byte) (v FieldText, n int, err error) {
	var n1 int
	if v.Kind, n, err = FieldKindMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.Text, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Present, n1, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (fieldTextMUS) Size(v FieldText) (size int) {
	return FieldKindMUS.Size(v.Kind) + ord.String.Size(v.Text) + ord.Bool.Size(v.Present)
}

func (fieldTextMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = FieldKindMUS.Skip(bs); err != nil {
		return
	}
	if n1, err = ord.String.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = ord.Bool.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	return n + n1, nil
}

// DocumentMUS serializes Document values.
var DocumentMUS = documentMUS{}

var fieldTextSliceMUS = ord.NewSliceSer[FieldText](FieldTextMUS)

type documentMUS struct{}

func (documentMUS) Marshal(v Document, bs []byte) (n int) {
	n = FacultyRecordMUS.Marshal(v.Faculty, bs)
	n += fieldTextSliceMUS.Marshal(v.Fields, bs[n:])
	return n
}

func (documentMUS) Unmarshal(bs []byte) (v Document, n int, err error) {
	var n1 int
	if v.Faculty, n, err = FacultyRecordMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.Fields, n1, err = fieldTextSliceMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (documentMUS) Size(v Document) (size int) {
	return FacultyRecordMUS.Size(v.Faculty) + fieldTextSliceMUS.Size(v.Fields)
}

func (documentMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = FacultyRecordMUS.Skip(bs); err != nil {
		return
	}
	if n1, err = fieldTextSliceMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	return n + n1, nil
}

// FieldVectorMUS serializes FieldVector values.
var FieldVectorMUS = fieldVectorMUS{}

type fieldVectorMUS struct{}

func (fieldVectorMUS) Marshal(v FieldVector, bs []byte) (n int) {
	n = FieldKindMUS.Marshal(v.Kind, bs)
	n += VectorMUS.Marshal(v.Vector, bs[n:])
	return n
}

func (fieldVectorMUS) Unmarshal(bs []byte) (v FieldVector, n int, err error) {
	var n1 int
	if v.Kind, n, err = FieldKindMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.Vector, n1, err = VectorMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (fieldVectorMUS) Size(v FieldVector) (size int) {
	return FieldKindMUS.Size(v.Kind) + VectorMUS.Size(v.Vector)
}

func (fieldVectorMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = FieldKindMUS.Skip(bs); err != nil {
		return
	}
	if n1, err = VectorMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	return n + n1, nil
}

// DocumentEmbeddingMUS serializes DocumentEmbedding values.
var DocumentEmbeddingMUS = documentEmbeddingMUS{}

var fieldVectorSliceMUS = ord.NewSliceSer[FieldVector](FieldVectorMUS)

type documentEmbeddingMUS struct{}

func (documentEmbeddingMUS) Marshal(v DocumentEmbedding, bs []byte) (n int) {
	n = VectorMUS.Marshal(v.Composite, bs)
	n += fieldVectorSliceMUS.Marshal(v.Fields, bs[n:])
	return n
}

func (documentEmbeddingMUS) Unmarshal(bs []byte) (v DocumentEmbedding, n int, err error) {
	var n1 int
	if v.Composite, n, err = VectorMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.Fields, n1, err = fieldVectorSliceMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (documentEmbeddingMUS) Size(v DocumentEmbedding) (size int) {
	return VectorMUS.Size(v.Composite) + fieldVectorSliceMUS.Size(v.Fields)
}

func (documentEmbeddingMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = VectorMUS.Skip(bs); err != nil {
		return
	}
	if n1, err = fieldVectorSliceMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	return n + n1, nil
}

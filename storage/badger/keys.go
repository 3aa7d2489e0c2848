package badger

import (
	"fmt"

	"github.com/poiesic/facsearch/core"
)

// Key prefixes for different data types
const (
	facultyRecordPrefix = "facrec"
	facultyNamePrefix   = "facname"
)

// makeFacultyRecordKey generates a key for a faculty record by ID.
func makeFacultyRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", facultyRecordPrefix, id))
}

// makeFacultyNameKey generates a key for the name index.
// Names sort lexicographically, so iterating this prefix yields records
// in ascending name order.
func makeFacultyNameKey(name string) []byte {
	return []byte(facultyNamePrefix + ":" + name)
}

// facultyNameKeyPrefix returns the iteration prefix for the name index.
func facultyNameKeyPrefix() []byte {
	return []byte(facultyNamePrefix + ":")
}

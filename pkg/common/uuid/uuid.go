package uuid

import (
	uuid "github.com/gofrs/uuid/v5"
)

// UUID aliases gofrs/uuid so callers keep IsNil, MarshalText and the
// sql/driver interfaces without importing the library everywhere.
type UUID = uuid.UUID

var Nil = uuid.Nil

func NewV4() UUID {
	u, _ := uuid.NewV4()
	return u
}

func FromString(s string) (UUID, error) {
	return uuid.FromString(s)
}

func MustFromString(s string) UUID {
	return uuid.Must(uuid.FromString(s))
}

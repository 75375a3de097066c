package domain

import "strconv"

// ID is the system-assigned identity of a stored entity. Identities start at 1
// and are never reused.
type ID int64

// String returns the decimal form of the identity
func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseID parses a decimal identity
func ParseID(s string) (ID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return ID(n), nil
}

// NullID is an optional reference to another entity. The zero value means
// "no reference", mirroring sql.NullInt64.
type NullID struct {
	ID    ID
	Valid bool
}

// SomeID returns a present reference to id
func SomeID(id ID) NullID {
	return NullID{ID: id, Valid: true}
}

// NoID is the absent reference
var NoID = NullID{}

// Equal reports whether both references are absent or both point at the same ID
func (n NullID) Equal(other NullID) bool {
	if n.Valid != other.Valid {
		return false
	}
	return !n.Valid || n.ID == other.ID
}

// String returns the identity, or "none" when absent
func (n NullID) String() string {
	if !n.Valid {
		return "none"
	}
	return n.ID.String()
}

// Package uuid generates the string primary keys used by every model.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New returns a UUIDv7. Version 7 IDs sort by creation time, which keeps
// B-tree inserts append-only. A random v4 is used if the v7 clock read fails.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.New().String()
	}
	return id.String()
}

// IsValid reports whether s is a UUID of any version in canonical
// 8-4-4-4-12 form.
func IsValid(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := googleuuid.Parse(s)
	return err == nil
}

package dao

import "database/sql"

type NullInt64 struct {
	sql.NullInt64
}

// Ptr returns the value as a pointer, nil when the column was NULL.
func (ni *NullInt64) Ptr() *int64 {
	if !ni.NullInt64.Valid {
		return nil
	}
	v := ni.NullInt64.Int64
	return &v
}

package domain

import "time"

// Category is an admin-defined classification offered when creating a
// ticket. Names are not unique; the id is the only stable key.
type Category struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

package domain

import "time"

// Comment is an append-only annotation on an issue. Comments carry no edit
// or delete operations and are removed only when the owning issue is.
type Comment struct {
	ID          int64
	IssueID     int64
	Content     string
	AuthorID    *int64
	AuthorEmail string
	CreatedAt   time.Time
}

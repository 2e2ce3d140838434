package domain

import "time"

// Message is one chat entry within a ticket thread. Threads are append
// only: messages are never edited, deleted or reordered. SupportSide
// marks which side of the conversation the author was on; all staff
// roles render as the same side.
type Message struct {
	ID          int64
	TicketID    int64
	AuthorID    int64
	AuthorName  string
	AuthorRole  Role
	SupportSide bool
	Body        string
	CreatedAt   time.Time
}

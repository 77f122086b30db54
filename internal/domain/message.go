package domain

// Message is a single posted text item attributed to an account.
// PostedAt is epoch seconds and never changes after creation.
type Message struct {
	ID       int64
	AuthorID int64
	Text     string
	PostedAt int64
}

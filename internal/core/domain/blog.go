package domain

import "time"

// Blog is a published post owned by a User. AuthorID must reference an
// existing user at creation time; the reference is not enforced
// transactionally by the store.
type Blog struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	AuthorID     string    `json:"author"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

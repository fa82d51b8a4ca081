package domain

import "time"

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Post represents a user-authored article.
type Post struct {
	ID         string      `json:"id"`
	UserID     string      `json:"userId"`
	Title      string      `json:"title"`
	Content    string      `json:"content"`
	Status     string      `json:"status"`
	Author     *PublicUser `json:"user,omitempty"`
	Categories []Category  `json:"categories,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

func (p *Post) IsActive() bool {
	return p != nil && p.Status == StatusActive
}

// OwnedBy reports whether the identity may edit or delete the post.
func (p *Post) OwnedBy(id Identity) bool {
	return p != nil && p.UserID != "" && p.UserID == id.UserID
}

// PostPage is one page of a paginated post listing.
type PostPage struct {
	Posts       []Post `json:"posts"`
	TotalPosts  int    `json:"totalPosts"`
	TotalPages  int    `json:"totalPages"`
	CurrentPage int    `json:"currentPage"`
}

// Comment is a reply attached to a post.
type Comment struct {
	ID        string      `json:"id"`
	PostID    string      `json:"postId"`
	UserID    string      `json:"userId"`
	Content   string      `json:"content"`
	Status    string      `json:"status"`
	Author    *PublicUser `json:"user,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Category groups posts.
type Category struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

const (
	LikeTypeLike    = "like"
	LikeTypeDislike = "dislike"
)

// Like is a single user's reaction to a post.
type Like struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

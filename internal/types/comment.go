package types

import (
	"time"

	"github.com/pageza/recipeshare/backend/internal/models"
)

// Comment is the wire representation of a comment. The User association must be
// loaded for AuthorUsername to be filled.
type Comment struct {
	ID             uint      `json:"id"`
	Recipe         uint      `json:"recipe"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
	Author         uint      `json:"author"`
	AuthorUsername string    `json:"author_username"`
}

func NewComment(c *models.Comment) Comment {
	return Comment{
		ID:             c.ID,
		Recipe:         c.RecipeID,
		Text:           c.Text,
		CreatedAt:      c.CreatedAt,
		Author:         c.UserID,
		AuthorUsername: c.User.Username,
	}
}

// NewCommentList serializes comments preserving order.
func NewCommentList(comments []models.Comment) []Comment {
	out := make([]Comment, len(comments))
	for i := range comments {
		out[i] = NewComment(&comments[i])
	}
	return out
}

// CommentRequest is the body of a new comment
type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// LikeStatus summarizes the likes of a recipe for the caller
type LikeStatus struct {
	Recipe uint  `json:"recipe"`
	Likes  int64 `json:"likes"`
	Liked  bool  `json:"liked"`
}

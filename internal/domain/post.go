package domain

import "time"

type Post struct {
	Id        PostId      `json:"id"`
	Title     PostTitle   `json:"title"`
	Content   PostContent `json:"content"`
	ImagePath string      `json:"imageUrl"`
	CreatorId UserId      `json:"creator"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// PostPage is one page of the feed plus the total number of stored posts.
type PostPage struct {
	Posts      []Post `json:"posts"`
	TotalItems int    `json:"totalItems"`
}

package domain

import "github.com/lib/pq"

type (
	Email    = string
	Password = string
	UserId   = int64

	PostId      = int64
	PostTitle   = string
	PostContent = string

	// PostIds is the ordered list of a user's posts, stored as a
	// postgres bigint array.
	PostIds = pq.Int64Array
)

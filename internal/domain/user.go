package domain

type User struct {
	Id       int64   `json:"id"`
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	PassHash string  `json:"-"`
	Status   string  `json:"status"`
	Posts    PostIds `json:"posts"`
}

// DefaultStatus is assigned on signup, before the user sets their own.
const DefaultStatus = "I am new!"

// Creator is the minimal owner summary returned alongside a created post.
type Creator struct {
	Id   int64  `json:"id"`
	Name string `json:"name"`
}

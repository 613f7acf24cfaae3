package models

// Account represents a registered user. Passwords are stored and returned as
// plain text to match the existing login contract; see DESIGN.md.
type Account struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"fname"`
	LastName  string `json:"lname"`
}

// Title represents a to-do list owned by an account. DateModified is an
// ISO-8601 string: a full timestamp on create/edit, date-only after a bulk
// task replacement.
type Title struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Title        string `json:"title"`
	DateModified string `json:"date_modified"`
	Status       bool   `json:"status"`
}

// Task represents a single item belonging to exactly one title. The wire and
// table name is "lists" for historical reasons.
type Task struct {
	ID      int64  `json:"id"`
	TitleID int64  `json:"title_id"`
	Desc    string `json:"list_desc"`
	Status  bool   `json:"status"`
}

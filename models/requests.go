package models

// CredentialsRequest is the body for /check-user.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the body for /register.
type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"fname"`
	LastName  string `json:"lname"`
}

// AddTodoRequest is the body for /add-to-do. Lists carries the descriptions
// of the initial tasks.
type AddTodoRequest struct {
	Username string   `json:"username"`
	Title    string   `json:"title"`
	Lists    []string `json:"lists"`
}

// UpdateTodoRequest is the body for /update-todo. List fully replaces the
// title's current tasks.
type UpdateTodoRequest struct {
	TitleID int64    `json:"title_id"`
	List    []string `json:"list"`
}

// DeleteTodoRequest is the body for /delete-todo.
type DeleteTodoRequest struct {
	TitleID int64 `json:"title_id"`
}

// StatusRequest is the body for the two status-update routes.
type StatusRequest struct {
	Status bool `json:"status"`
}

// EditTitleRequest is the body for /edit-title. Status is optional and
// defaults to false when omitted.
type EditTitleRequest struct {
	Title  string `json:"title"`
	Status *bool  `json:"status"`
}

// DeleteTasksRequest is the body for /delete-task.
type DeleteTasksRequest struct {
	ListIDs []int64 `json:"listIds"`
}

// UpdateTaskRequest is the body for /update-task.
type UpdateTaskRequest struct {
	TaskID  int64  `json:"task_id"`
	NewDesc string `json:"new_desc"`
}

// AddTaskRequest is the body for /add-task.
type AddTaskRequest struct {
	TitleID int64  `json:"title_id"`
	Desc    string `json:"list_desc"`
	Status  bool   `json:"status"`
}

package handlers

import "github.com/gorilla/mux"

// Routes registers every route on the router.
func (h *Handlers) Routes(r *mux.Router) {
	r.HandleFunc("/", h.Home).Methods("GET")
	r.HandleFunc("/to-do", h.TodoHome).Methods("GET")

	r.HandleFunc("/get-users", h.GetUsers).Methods("GET")
	r.HandleFunc("/check-user", h.CheckUser).Methods("POST")
	r.HandleFunc("/register", h.Register).Methods("POST")

	r.HandleFunc("/get-titles", h.GetTitles).Methods("GET")
	r.HandleFunc("/get-lists", h.GetLists).Methods("GET")
	r.HandleFunc("/get-lists/{titleId}", h.GetListsByTitle).Methods("GET")

	r.HandleFunc("/add-to-do", h.AddTodo).Methods("POST")
	r.HandleFunc("/update-todo", h.UpdateTodo).Methods("POST")
	r.HandleFunc("/delete-todo", h.DeleteTodo).Methods("POST")

	r.HandleFunc("/update-task-status/{taskId}", h.UpdateTaskStatus).Methods("PUT")
	r.HandleFunc("/update-title-status/{titleId}", h.UpdateTitleStatus).Methods("PUT")
	r.HandleFunc("/edit-title/{titleId}", h.EditTitle).Methods("PUT")

	r.HandleFunc("/delete-task", h.DeleteTask).Methods("POST")
	r.HandleFunc("/update-task", h.UpdateTask).Methods("POST")
	r.HandleFunc("/add-task", h.AddTask).Methods("POST")
}

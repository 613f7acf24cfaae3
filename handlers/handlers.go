package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/fritzgwapo0907/to-do-server/models"
	"github.com/fritzgwapo0907/to-do-server/store"
)

// Handlers holds the store and logger shared by all route methods.
type Handlers struct {
	Store *store.Store
	Log   *log.Logger
}

// New is a constructor for the Handlers struct.
func New(st *store.Store, logger *log.Logger) *Handlers {
	return &Handlers{Store: st, Log: logger}
}

// respondWithJSON is a helper function to format and send JSON responses.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// decodeBody parses the JSON request body into dst, answering a 400 itself
// on failure.
func (h *Handlers) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.Log.Warn("invalid request payload", "path", r.URL.Path, "err", err)
		respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false, "message": "Invalid request payload",
		})
		return false
	}
	return true
}

// pathID extracts a numeric path parameter, answering a 400 itself when the
// value is not an integer.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
			"message": "Invalid " + name,
		})
		return 0, false
	}
	return id, true
}

// Home answers the greeting route.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("HELLO WORLD"))
}

func (h *Handlers) TodoHome(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("This is to do homepage"))
}

// GetUsers returns every account. Debug/admin route, no pagination.
func (h *Handlers) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.ListAccounts(r.Context())
	if err != nil {
		h.Log.Error("fetching users", "err", err)
		respondWithJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"message": "Internal Server Error",
		})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

// CheckUser verifies credentials by exact match. A miss is a 200 with
// exist=false, never an error status.
func (h *Handlers) CheckUser(w http.ResponseWriter, r *http.Request) {
	var req models.CredentialsRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	exists, err := h.Store.VerifyAccount(r.Context(), req.Username, req.Password)
	if err != nil {
		h.Log.Error("checking user", "username", req.Username, "err", err)
		respondWithJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"message": "Internal Server Error",
		})
		return
	}

	if exists {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"exist": true, "message": "login successful",
		})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"exist": false, "message": "Invalid username or password",
	})
}

// Register creates a new account.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	err := h.Store.CreateAccount(r.Context(), models.Account{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.Log.Error("registering account", "username", req.Username, "err", err)
		respondWithJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false, "message": "Error registering account",
		})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// GetTitles returns the titles still marked open.
func (h *Handlers) GetTitles(w http.ResponseWriter, r *http.Request) {
	titles, err := h.Store.ListOpenTitles(r.Context())
	if err != nil {
		h.Log.Error("fetching titles", "err", err)
		respondWithJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"message": "Error fetching titles",
		})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"titles": titles})
}

// GetLists returns every task across all titles.
func (h *Handlers) GetLists(w http.ResponseWriter, r *http.Request) {
	lists, err := h.Store.ListAllTasks(r.Context())
	if err != nil {
		h.Log.Error("fetching lists", "err", err)
		respondWithJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"message": "Internal Server Error",
		})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"lists": lists})
}

// AddTodo creates a title together with its initial tasks.
func (h *Handlers) AddTodo(w http.ResponseWriter, r *http.Request) {
	var req models.AddTodoRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	_, err := h.Store.CreateTitleWithTasks(r.Context(), req.Username, req.Title, req.Lists)
	if errors.Is(err, store.ErrInvalidInput) {
		respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false, "message": "Lists must be a non-empty array",
		})
		return
	}
	if err != nil {
		h.Log.Error("adding to-do", "username", req.Username, "err", err)
		respondWithJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false, "message": "Error adding To-Do List",
		})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true, "message": "To-Do List added successfully",
	})
}

// UpdateTodo replaces all tasks under a title.
func (h *Handlers) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateTodoRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	err := h.Store.ReplaceTitleTasks(r.Context(), req.TitleID, req.List)
	if errors.Is(err, store.ErrNotFound) {
		respondWithJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false, "message": "Title not found",
		})
		return
	}
	if err != nil {
		h.Log.Error("updating to-do", "title_id", req.TitleID, "err", err)
		respondWithJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false, "message": "Error updating To-Do List",
		})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true, "message": "To-do Successfully Updated",
	})
}

// DeleteTodo removes a title and all its tasks.
func (h *Handlers) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	var req models.DeleteTodoRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if err := h.Store.DeleteTitleCascade(r.Context(), req.TitleID); err != nil {
		h.Log.Error("deleting to-do", "title_id", req.TitleID, "err", err)
		respondWithJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false, "message": "Error deleting To-Do List",
		})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true, "message": "To-do Successfully Deleted",
	})
}

// GetListsByTitle returns a title's text and its tasks. A title with no
// tasks answers 200 with an empty array; only a missing title is a 404.
func (h *Handlers) GetListsByTitle(w http.ResponseWriter, r *http.Request) {
	titleID, ok := pathID(w, r, "titleId")
	if !ok {
		return
	}

	title, tasks, err := h.Store.GetTitleWithTasks(r.Context(), titleID)
	if errors.Is(err, store.ErrNotFound) {
		respondWithJSON(w, http.StatusNotFound, map[string]interface{}{
			"message": "Title not found",
		})
		return
	}
	if err != nil {
		h.Log.Error("fetching lists by title", "title_id", titleID, "err", err)
		respondWithJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"message": "Internal Server Error",
		})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"title": title.Title,
		"lists": tasks,
	})
}

// UpdateTaskStatus flips a single task's done flag.
func (h *Handlers) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(w, r, "taskId")
	if !ok {
		return
	}
	var req models.StatusRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	err := h.Store.SetTaskStatus(r.Context(), taskID, req.Status)
	if errors.Is(err, store.ErrNotFound) {
		respondWithJSON(w, http.StatusNotFound, map[string]interface{}{
			"message": "Task not found",
		})
		return
	}
	if err != nil {
		h.Log.Error("updating task status", "task_id", taskID, "err", err)
		respondWithJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"message": "Internal server error",
		})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Task status updated successfully",
	})
}

// UpdateTitleStatus flips a title's done flag. Marking a title done while
// open tasks remain is rejected with a 400.
func (h *Handlers) UpdateTitleStatus(w http.ResponseWriter, r *http.Request) {
	titleID, ok := pathID(w, r, "titleId")
	if !ok {
		return
	}
	var req models.StatusRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	err := h.Store.SetTitleStatus(r.Context(), titleID, req.Status)
	if errors.Is(err, store.ErrNotFound) {
		respondWithJSON(w, http.StatusNotFound, map[string]interface{}{
			"message": "Title not found",
		})
		return
	}
	if errors.Is(err, store.ErrInvalidInput) {
		respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
			"message": "Title still has open tasks",
		})
		return
	}
	if err != nil {
		h.Log.Error("updating title status", "title_id", titleID, "err", err)
		respondWithJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"message": "Internal server error",
		})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Title status updated to done successfully",
	})
}

// EditTitle rewrites a title's text and, optionally, its status.
func (h *Handlers) EditTitle(w http.ResponseWriter, r *http.Request) {
	titleID, ok := pathID(w, r, "titleId")
	if !ok {
		return
	}
	var req models.EditTitleRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	// Status defaults to open when the client omits it.
	status := false
	if req.Status != nil {
		status = *req.Status
	}

	title, err := h.Store.UpdateTitleText(r.Context(), titleID, req.Title, status)
	if errors.Is(err, store.ErrNotFound) {
		respondWithJSON(w, http.StatusNotFound, map[string]interface{}{
			"message": "Title not found",
		})
		return
	}
	if err != nil {
		h.Log.Error("editing title", "title_id", titleID, "err", err)
		respondWithJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"message": "Internal Server Error",
		})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Title updated successfully",
		"title":   title,
	})
}

// DeleteTask removes a batch of tasks by id; ids with no matching row are
// ignored.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	var req models.DeleteTasksRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	err := h.Store.DeleteTasks(r.Context(), req.ListIDs)
	if errors.Is(err, store.ErrInvalidInput) {
		respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false, "message": "List IDs are required.",
		})
		return
	}
	if err != nil {
		h.Log.Error("deleting tasks", "err", err)
		respondWithJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false, "message": "Internal Server Error.",
		})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true, "message": "Selected lists deleted successfully!",
	})
}

// UpdateTask rewrites a task's description.
func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateTaskRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	err := h.Store.UpdateTaskDescription(r.Context(), req.TaskID, req.NewDesc)
	if errors.Is(err, store.ErrInvalidInput) {
		respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false, "message": "Task ID and new description are required.",
		})
		return
	}
	if err != nil {
		h.Log.Error("updating task", "task_id", req.TaskID, "err", err)
		respondWithJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false, "message": "Internal Server Error.",
		})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true, "message": "Task updated successfully!",
	})
}

// AddTask inserts a single task under an existing title.
func (h *Handlers) AddTask(w http.ResponseWriter, r *http.Request) {
	var req models.AddTaskRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	listID, err := h.Store.AddTask(r.Context(), req.TitleID, req.Desc, req.Status)
	if errors.Is(err, store.ErrInvalidInput) {
		respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false, "message": "Task ID and List description are required.",
		})
		return
	}
	if err != nil {
		h.Log.Error("adding task", "title_id", req.TitleID, "err", err)
		respondWithJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false, "message": "Internal Server Error.",
		})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true, "message": "List added successfully!", "list_id": listID,
	})
}

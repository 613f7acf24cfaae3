package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/fritzgwapo0907/to-do-server/database"
	"github.com/fritzgwapo0907/to-do-server/models"
	"github.com/fritzgwapo0907/to-do-server/store"
)

func testRouter(t *testing.T) *mux.Router {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", filepath.Join(t.TempDir(), "test.db"))
	db, err := database.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db, "sqlite3"); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	h := New(store.New(db, 5*time.Second), log.New(io.Discard))
	router := mux.NewRouter()
	h.Routes(router)
	return router
}

// do sends a JSON request through the router and decodes the JSON response
// into out (when out is non-nil).
func do(t *testing.T, router *mux.Router, method, path string, body, out interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("%s %s: decode response %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code
}

func register(t *testing.T, router *mux.Router, username string) {
	t.Helper()
	code := do(t, router, http.MethodPost, "/register", models.RegisterRequest{
		Username: username, Password: "secret", FirstName: "Test", LastName: "User",
	}, nil)
	if code != http.StatusOK {
		t.Fatalf("register %s: status %d", username, code)
	}
}

// addTodo creates a title with tasks and returns its id via /get-titles.
func addTodo(t *testing.T, router *mux.Router, username, title string, lists []string) int64 {
	t.Helper()
	code := do(t, router, http.MethodPost, "/add-to-do", models.AddTodoRequest{
		Username: username, Title: title, Lists: lists,
	}, nil)
	if code != http.StatusOK {
		t.Fatalf("add-to-do: status %d", code)
	}

	var resp struct {
		Titles []models.Title `json:"titles"`
	}
	if code := do(t, router, http.MethodGet, "/get-titles", nil, &resp); code != http.StatusOK {
		t.Fatalf("get-titles: status %d", code)
	}
	for _, tt := range resp.Titles {
		if tt.Title == title {
			return tt.ID
		}
	}
	t.Fatalf("title %q not in /get-titles", title)
	return 0
}

func TestRegisterAndCheckUser(t *testing.T) {
	router := testRouter(t)
	register(t, router, "alice")

	var resp struct {
		Exist   bool   `json:"exist"`
		Message string `json:"message"`
	}
	code := do(t, router, http.MethodPost, "/check-user",
		models.CredentialsRequest{Username: "alice", Password: "secret"}, &resp)
	if code != http.StatusOK || !resp.Exist || resp.Message != "login successful" {
		t.Fatalf("check-user hit: code=%d resp=%+v", code, resp)
	}

	// Unknown credentials are a normal 200/false outcome.
	code = do(t, router, http.MethodPost, "/check-user",
		models.CredentialsRequest{Username: "alice", Password: "nope"}, &resp)
	if code != http.StatusOK || resp.Exist {
		t.Fatalf("check-user miss: code=%d resp=%+v", code, resp)
	}
}

func TestGetUsers(t *testing.T) {
	router := testRouter(t)
	register(t, router, "alice")
	register(t, router, "bob")

	var resp struct {
		Users []models.Account `json:"users"`
	}
	code := do(t, router, http.MethodGet, "/get-users", nil, &resp)
	if code != http.StatusOK || len(resp.Users) != 2 {
		t.Fatalf("get-users: code=%d users=%d", code, len(resp.Users))
	}
}

func TestAddTodoValidation(t *testing.T) {
	router := testRouter(t)
	register(t, router, "alice")

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	code := do(t, router, http.MethodPost, "/add-to-do", models.AddTodoRequest{
		Username: "alice", Title: "Empty", Lists: nil,
	}, &resp)
	if code != http.StatusBadRequest || resp.Success {
		t.Fatalf("empty lists: code=%d resp=%+v", code, resp)
	}
	if resp.Message != "Lists must be a non-empty array" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestAddTodoAndGetLists(t *testing.T) {
	router := testRouter(t)
	register(t, router, "alice")
	id := addTodo(t, router, "alice", "Groceries", []string{"milk", "eggs"})

	var resp struct {
		Title string        `json:"title"`
		Lists []models.Task `json:"lists"`
	}
	code := do(t, router, http.MethodGet, fmt.Sprintf("/get-lists/%d", id), nil, &resp)
	if code != http.StatusOK {
		t.Fatalf("get-lists/%d: status %d", id, code)
	}
	if resp.Title != "Groceries" || len(resp.Lists) != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}

	// Missing title is a 404.
	if code := do(t, router, http.MethodGet, "/get-lists/9999", nil, nil); code != http.StatusNotFound {
		t.Fatalf("missing title: status %d", code)
	}
}

func TestUpdateTodoReplacesTasks(t *testing.T) {
	router := testRouter(t)
	register(t, router, "alice")
	id := addTodo(t, router, "alice", "Chores", []string{"sweep"})

	code := do(t, router, http.MethodPost, "/update-todo", models.UpdateTodoRequest{
		TitleID: id, List: []string{"vacuum", "dust"},
	}, nil)
	if code != http.StatusOK {
		t.Fatalf("update-todo: status %d", code)
	}

	var resp struct {
		Lists []models.Task `json:"lists"`
	}
	do(t, router, http.MethodGet, fmt.Sprintf("/get-lists/%d", id), nil, &resp)
	if len(resp.Lists) != 2 {
		t.Fatalf("want 2 tasks after replace, got %d", len(resp.Lists))
	}
	for _, task := range resp.Lists {
		if !task.Status {
			t.Fatalf("replaced task %q should be done", task.Desc)
		}
	}

	// Unknown title is a 404.
	code = do(t, router, http.MethodPost, "/update-todo", models.UpdateTodoRequest{
		TitleID: 9999, List: []string{"x"},
	}, nil)
	if code != http.StatusNotFound {
		t.Fatalf("update-todo missing title: status %d", code)
	}
}

func TestDeleteTodoCascades(t *testing.T) {
	router := testRouter(t)
	register(t, router, "alice")
	id := addTodo(t, router, "alice", "Doomed", []string{"a", "b"})

	code := do(t, router, http.MethodPost, "/delete-todo", models.DeleteTodoRequest{TitleID: id}, nil)
	if code != http.StatusOK {
		t.Fatalf("delete-todo: status %d", code)
	}

	if code := do(t, router, http.MethodGet, fmt.Sprintf("/get-lists/%d", id), nil, nil); code != http.StatusNotFound {
		t.Fatalf("deleted title still found: status %d", code)
	}

	var resp struct {
		Lists []models.Task `json:"lists"`
	}
	do(t, router, http.MethodGet, "/get-lists", nil, &resp)
	if len(resp.Lists) != 0 {
		t.Fatalf("cascade left %d tasks behind", len(resp.Lists))
	}
}

func TestUpdateTaskStatusNotFound(t *testing.T) {
	router := testRouter(t)

	code := do(t, router, http.MethodPut, "/update-task-status/9999",
		models.StatusRequest{Status: true}, nil)
	if code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", code)
	}
}

func TestUpdateTitleStatusGuard(t *testing.T) {
	router := testRouter(t)
	register(t, router, "alice")
	id := addTodo(t, router, "alice", "Guarded", []string{"open task"})

	// Done with open tasks is rejected.
	code := do(t, router, http.MethodPut, fmt.Sprintf("/update-title-status/%d", id),
		models.StatusRequest{Status: true}, nil)
	if code != http.StatusBadRequest {
		t.Fatalf("guard: status %d, want 400", code)
	}

	var listResp struct {
		Lists []models.Task `json:"lists"`
	}
	do(t, router, http.MethodGet, fmt.Sprintf("/get-lists/%d", id), nil, &listResp)
	code = do(t, router, http.MethodPut, fmt.Sprintf("/update-task-status/%d", listResp.Lists[0].ID),
		models.StatusRequest{Status: true}, nil)
	if code != http.StatusOK {
		t.Fatalf("complete task: status %d", code)
	}

	code = do(t, router, http.MethodPut, fmt.Sprintf("/update-title-status/%d", id),
		models.StatusRequest{Status: true}, nil)
	if code != http.StatusOK {
		t.Fatalf("mark done: status %d", code)
	}

	// Unknown title is a 404.
	code = do(t, router, http.MethodPut, "/update-title-status/9999",
		models.StatusRequest{Status: true}, nil)
	if code != http.StatusNotFound {
		t.Fatalf("missing title: status %d, want 404", code)
	}
}

func TestEditTitle(t *testing.T) {
	router := testRouter(t)
	register(t, router, "alice")
	id := addTodo(t, router, "alice", "Old Name", []string{"task"})

	var resp struct {
		Message string       `json:"message"`
		Title   models.Title `json:"title"`
	}
	code := do(t, router, http.MethodPut, fmt.Sprintf("/edit-title/%d", id),
		models.EditTitleRequest{Title: "New Name"}, &resp)
	if code != http.StatusOK {
		t.Fatalf("edit-title: status %d", code)
	}
	if resp.Title.Title != "New Name" {
		t.Fatalf("title text = %q, want %q", resp.Title.Title, "New Name")
	}
	// Omitted status defaults back to open.
	if resp.Title.Status {
		t.Fatal("omitted status should default to false")
	}

	code = do(t, router, http.MethodPut, "/edit-title/9999",
		models.EditTitleRequest{Title: "x"}, nil)
	if code != http.StatusNotFound {
		t.Fatalf("missing title: status %d, want 404", code)
	}
}

func TestDeleteTaskValidation(t *testing.T) {
	router := testRouter(t)

	code := do(t, router, http.MethodPost, "/delete-task", models.DeleteTasksRequest{}, nil)
	if code != http.StatusBadRequest {
		t.Fatalf("empty ids: status %d, want 400", code)
	}
}

func TestAddTaskFlow(t *testing.T) {
	router := testRouter(t)
	register(t, router, "alice")
	id := addTodo(t, router, "alice", "Host", []string{"seed"})

	// Blank description is rejected before the store is touched.
	code := do(t, router, http.MethodPost, "/add-task", models.AddTaskRequest{
		TitleID: id, Desc: "   ",
	}, nil)
	if code != http.StatusBadRequest {
		t.Fatalf("blank desc: status %d, want 400", code)
	}

	var resp struct {
		Success bool  `json:"success"`
		ListID  int64 `json:"list_id"`
	}
	code = do(t, router, http.MethodPost, "/add-task", models.AddTaskRequest{
		TitleID: id, Desc: "call plumber",
	}, &resp)
	if code != http.StatusOK || !resp.Success || resp.ListID == 0 {
		t.Fatalf("add-task: code=%d resp=%+v", code, resp)
	}
}

func TestUpdateTaskValidation(t *testing.T) {
	router := testRouter(t)

	code := do(t, router, http.MethodPost, "/update-task", models.UpdateTaskRequest{TaskID: 1}, nil)
	if code != http.StatusBadRequest {
		t.Fatalf("missing desc: status %d, want 400", code)
	}
}

func TestStoreFailureHidesInternalError(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", filepath.Join(t.TempDir(), "test.db"))
	db, err := database.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db, "sqlite3"); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	h := New(store.New(db, 5*time.Second), log.New(io.Discard))
	router := mux.NewRouter()
	h.Routes(router)

	// Kill the store out from under the handler.
	db.Close()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/get-titles", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	// The client sees only the fixed message, never driver error text.
	if resp.Message != "Error fetching titles" {
		t.Fatalf("message = %q, want the fixed failure message", resp.Message)
	}
	if strings.Contains(rec.Body.String(), "closed") || strings.Contains(rec.Body.String(), "sql:") {
		t.Fatalf("response leaks internal error text: %q", rec.Body.String())
	}
}

func TestInvalidJSONBody(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid body: status %d, want 400", rec.Code)
	}
}

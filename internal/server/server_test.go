package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"planit/internal/auth"
	"planit/internal/repository"
	"planit/internal/server"
	"planit/internal/service"
)

func newTestHandler(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := repository.NewDB(dsn)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	srv := server.New(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		service.NewAuthService(userRepo),
		service.NewTaskService(taskRepo, categoryRepo),
		service.NewCategoryService(categoryRepo),
		auth.NewTokenIssuer("test-secret", time.Hour),
	)
	return srv.Handler(), db
}

func doForm(h http.Handler, path string, values url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func doJSON(h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), out))
}

func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == "planit_session" && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func signup(t *testing.T, h http.Handler, username, password string) *http.Cookie {
	t.Helper()
	rr := doForm(h, "/signup", url.Values{
		"username":         {username},
		"password":         {password},
		"password_confirm": {password},
	}, nil)
	require.Equal(t, http.StatusSeeOther, rr.Code, rr.Body.String())
	require.Equal(t, "/tasks", rr.Header().Get("Location"))
	return sessionCookie(t, rr)
}

func login(t *testing.T, h http.Handler, username, password string) string {
	t.Helper()
	rr := doJSON(h, http.MethodPost, "/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	decode(t, rr, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

type taskJSON struct {
	ID           uint    `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	IsCompleted  bool    `json:"is_completed"`
	Priority     string  `json:"priority"`
	DueDate      *string `json:"due_date"`
	Category     *uint   `json:"category"`
	CategoryName *string `json:"category_name"`
}

type categoryJSON struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func TestSignupThroughCompletionFlow(t *testing.T) {
	h, _ := newTestHandler(t)

	signup(t, h, "alice", "P@ssw0rd1")
	token := login(t, h, "alice", "P@ssw0rd1")

	// Registration seeded the three default categories.
	rr := doJSON(h, http.MethodGet, "/api/v1/categories", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var categories []categoryJSON
	decode(t, rr, &categories)
	require.Len(t, categories, 3)
	var workID uint
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
		if c.Name == "Work" {
			workID = c.ID
		}
	}
	assert.ElementsMatch(t, []string{"Home", "Work", "Personal"}, names)
	require.NotZero(t, workID)

	// Create a task in Work.
	rr = doJSON(h, http.MethodPost, "/api/v1/tasks", token, map[string]interface{}{
		"title":    "Buy milk",
		"category": workID,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created taskJSON
	decode(t, rr, &created)
	assert.Equal(t, "Buy milk", created.Title)
	assert.Equal(t, "medium", created.Priority)
	require.NotNil(t, created.CategoryName)
	assert.Equal(t, "Work", *created.CategoryName)

	// It shows up as pending, and only there.
	rr = doJSON(h, http.MethodGet, "/api/v1/tasks/pending", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var pending []taskJSON
	decode(t, rr, &pending)
	require.Len(t, pending, 1)
	assert.Equal(t, created.ID, pending[0].ID)

	// Toggle, then the lists swap.
	rr = doJSON(h, http.MethodPost, fmt.Sprintf("/api/v1/tasks/%d/toggle", created.ID), token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var toggled taskJSON
	decode(t, rr, &toggled)
	assert.True(t, toggled.IsCompleted)

	rr = doJSON(h, http.MethodGet, "/api/v1/tasks/completed", token, nil)
	var completed []taskJSON
	decode(t, rr, &completed)
	require.Len(t, completed, 1)
	assert.Equal(t, created.ID, completed[0].ID)

	rr = doJSON(h, http.MethodGet, "/api/v1/tasks/pending", token, nil)
	decode(t, rr, &pending)
	assert.Empty(t, pending)
}

func TestSignupValidationErrors(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := doForm(h, "/signup", url.Values{
		"username":         {"alice"},
		"password":         {"P@ssw0rd1"},
		"password_confirm": {"different1"},
	}, nil)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	decode(t, rr, &resp)
	assert.Contains(t, resp.Errors, "password_confirm")
}

func TestSignupWhileAuthenticatedRedirects(t *testing.T) {
	h, db := newTestHandler(t)
	cookie := signup(t, h, "alice", "P@ssw0rd1")

	rr := doForm(h, "/signup", url.Values{
		"username":         {"second"},
		"password":         {"P@ssw0rd1"},
		"password_confirm": {"P@ssw0rd1"},
	}, cookie)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/tasks", rr.Header().Get("Location"))

	// No side effects: the second account was never created.
	var count int64
	require.NoError(t, db.Table("users").Where("username = ?", "second").Count(&count).Error)
	assert.Zero(t, count)
}

func TestLoginFailureIsGeneric(t *testing.T) {
	h, _ := newTestHandler(t)
	signup(t, h, "alice", "P@ssw0rd1")

	wrongPass := doJSON(h, http.MethodPost, "/login", "", map[string]string{
		"username": "alice", "password": "wrong",
	})
	unknown := doJSON(h, http.MethodPost, "/login", "", map[string]string{
		"username": "nobody", "password": "P@ssw0rd1",
	})
	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.JSONEq(t, wrongPass.Body.String(), unknown.Body.String())
}

func TestWebRequiresSession(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
}

func TestAPIRequiresBearer(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := doJSON(h, http.MethodGet, "/api/v1/tasks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doJSON(h, http.MethodGet, "/api/v1/tasks", "bogus-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

// A token survives in the client after its account is gone; both
// surfaces must stop honoring it.
func TestTokenForDeletedAccountRejected(t *testing.T) {
	h, db := newTestHandler(t)
	cookie := signup(t, h, "alice", "P@ssw0rd1")
	token := login(t, h, "alice", "P@ssw0rd1")

	require.NoError(t, db.Exec("DELETE FROM users").Error)

	rr := doJSON(h, http.MethodGet, "/api/v1/tasks", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.AddCookie(cookie)
	web := httptest.NewRecorder()
	h.ServeHTTP(web, req)
	assert.Equal(t, http.StatusFound, web.Code)
	assert.Equal(t, "/login", web.Header().Get("Location"))
}

// A category value that is not an id filters to an empty list instead
// of quietly returning everything.
func TestMalformedCategoryFilterMatchesNothing(t *testing.T) {
	h, _ := newTestHandler(t)
	cookie := signup(t, h, "alice", "P@ssw0rd1")
	token := login(t, h, "alice", "P@ssw0rd1")

	rr := doJSON(h, http.MethodPost, "/api/v1/tasks", token, map[string]interface{}{"title": "one"})
	require.Equal(t, http.StatusCreated, rr.Code)

	list := doJSON(h, http.MethodGet, "/api/v1/tasks?category=abc", token, nil)
	require.Equal(t, http.StatusOK, list.Code)
	var tasks []taskJSON
	decode(t, list, &tasks)
	assert.Empty(t, tasks)

	req := httptest.NewRequest(http.MethodGet, "/tasks?category=abc", nil)
	req.AddCookie(cookie)
	webRR := httptest.NewRecorder()
	h.ServeHTTP(webRR, req)
	require.Equal(t, http.StatusOK, webRR.Code)

	var view struct {
		Tasks      []taskJSON `json:"tasks"`
		Category   string     `json:"category"`
		TotalTasks int64      `json:"total_tasks"`
	}
	decode(t, webRR, &view)
	assert.Empty(t, view.Tasks)
	assert.Equal(t, "abc", view.Category)
	assert.Equal(t, int64(1), view.TotalTasks)
}

func TestCrossOwnerLooksMissing(t *testing.T) {
	h, _ := newTestHandler(t)

	signup(t, h, "alice", "P@ssw0rd1")
	aliceToken := login(t, h, "alice", "P@ssw0rd1")
	signup(t, h, "mallory", "P@ssw0rd1")
	malloryToken := login(t, h, "mallory", "P@ssw0rd1")

	rr := doJSON(h, http.MethodPost, "/api/v1/tasks", aliceToken, map[string]interface{}{
		"title": "private",
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	var created taskJSON
	decode(t, rr, &created)

	taskPath := fmt.Sprintf("/api/v1/tasks/%d", created.ID)
	missingPath := "/api/v1/tasks/999999"
	for _, path := range []string{taskPath, missingPath} {
		get := doJSON(h, http.MethodGet, path, malloryToken, nil)
		assert.Equal(t, http.StatusNotFound, get.Code)
		del := doJSON(h, http.MethodDelete, path, malloryToken, nil)
		assert.Equal(t, http.StatusNotFound, del.Code)
	}

	// Mallory's list is empty; Alice still owns her task.
	list := doJSON(h, http.MethodGet, "/api/v1/tasks", malloryToken, nil)
	var tasks []taskJSON
	decode(t, list, &tasks)
	assert.Empty(t, tasks)

	get := doJSON(h, http.MethodGet, taskPath, aliceToken, nil)
	assert.Equal(t, http.StatusOK, get.Code)
}

func TestPatchDoesNotClobber(t *testing.T) {
	h, _ := newTestHandler(t)
	signup(t, h, "alice", "P@ssw0rd1")
	token := login(t, h, "alice", "P@ssw0rd1")

	rr := doJSON(h, http.MethodPost, "/api/v1/tasks", token, map[string]interface{}{
		"title":    "keep my fields",
		"priority": "high",
		"due_date": "2026-09-15",
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	var created taskJSON
	decode(t, rr, &created)

	rr = doJSON(h, http.MethodPatch, fmt.Sprintf("/api/v1/tasks/%d", created.ID), token,
		map[string]interface{}{"is_completed": true})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var patched taskJSON
	decode(t, rr, &patched)
	assert.True(t, patched.IsCompleted)
	assert.Equal(t, "keep my fields", patched.Title)
	assert.Equal(t, "high", patched.Priority)
	require.NotNil(t, patched.DueDate)
	assert.Equal(t, "2026-09-15", *patched.DueDate)
}

func TestAPIRejectsInvalidPriority(t *testing.T) {
	h, _ := newTestHandler(t)
	signup(t, h, "alice", "P@ssw0rd1")
	token := login(t, h, "alice", "P@ssw0rd1")

	rr := doJSON(h, http.MethodPost, "/api/v1/tasks", token, map[string]interface{}{
		"title":    "t",
		"priority": "urgent",
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	decode(t, rr, &resp)
	assert.Contains(t, resp.Errors, "priority")
}

func TestWebTaskListViewModel(t *testing.T) {
	h, _ := newTestHandler(t)
	cookie := signup(t, h, "alice", "P@ssw0rd1")
	token := login(t, h, "alice", "P@ssw0rd1")

	for _, title := range []string{"one", "two"} {
		rr := doJSON(h, http.MethodPost, "/api/v1/tasks", token, map[string]interface{}{"title": title})
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/tasks?status=pending&search=one", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var view struct {
		Tasks          []taskJSON     `json:"tasks"`
		Categories     []categoryJSON `json:"categories"`
		Status         string         `json:"status"`
		Search         string         `json:"search"`
		TotalTasks     int64          `json:"total_tasks"`
		PendingTasks   int64          `json:"pending_tasks"`
		CompletedTasks int64          `json:"completed_tasks"`
	}
	decode(t, rr, &view)
	assert.Len(t, view.Tasks, 1)
	assert.Len(t, view.Categories, 3)
	assert.Equal(t, "pending", view.Status)
	assert.Equal(t, "one", view.Search)
	// Counts cover the whole set, not the filtered view.
	assert.Equal(t, int64(2), view.TotalTasks)
	assert.Equal(t, int64(2), view.PendingTasks)
	assert.Equal(t, int64(0), view.CompletedTasks)
}

func TestWebCategoryDuplicateRedirectsAsNoOp(t *testing.T) {
	h, db := newTestHandler(t)
	cookie := signup(t, h, "alice", "P@ssw0rd1")

	// "Work" already exists from the default seeding.
	rr := doForm(h, "/categories", url.Values{"name": {"Work"}}, cookie)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/categories", rr.Header().Get("Location"))

	var count int64
	require.NoError(t, db.Table("categories").Where("name = ?", "Work").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestWebTaskFormFlow(t *testing.T) {
	h, _ := newTestHandler(t)
	cookie := signup(t, h, "alice", "P@ssw0rd1")
	token := login(t, h, "alice", "P@ssw0rd1")

	rr := doForm(h, "/tasks", url.Values{
		"title":    {"From the form"},
		"priority": {"high"},
		"due_date": {"2026-09-15"},
	}, cookie)
	require.Equal(t, http.StatusSeeOther, rr.Code, rr.Body.String())
	assert.Equal(t, "/tasks", rr.Header().Get("Location"))

	list := doJSON(h, http.MethodGet, "/api/v1/tasks", token, nil)
	var tasks []taskJSON
	decode(t, list, &tasks)
	require.Len(t, tasks, 1)
	task := tasks[0]

	// Wholesale edit with the checkbox ticked.
	rr = doForm(h, fmt.Sprintf("/tasks/%d/edit", task.ID), url.Values{
		"title":        {"Edited"},
		"priority":     {"low"},
		"is_completed": {"on"},
	}, cookie)
	require.Equal(t, http.StatusSeeOther, rr.Code, rr.Body.String())
	assert.Equal(t, fmt.Sprintf("/tasks/%d", task.ID), rr.Header().Get("Location"))

	get := doJSON(h, http.MethodGet, fmt.Sprintf("/api/v1/tasks/%d", task.ID), token, nil)
	var edited taskJSON
	decode(t, get, &edited)
	assert.Equal(t, "Edited", edited.Title)
	assert.Equal(t, "low", edited.Priority)
	assert.True(t, edited.IsCompleted)
	assert.Nil(t, edited.DueDate)

	rr = doForm(h, fmt.Sprintf("/tasks/%d/delete", task.ID), nil, cookie)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	get = doJSON(h, http.MethodGet, fmt.Sprintf("/api/v1/tasks/%d", task.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, get.Code)
}

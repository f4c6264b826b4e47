package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"shareit/pkg/database"
	"shareit/pkg/repository"
	"shareit/pkg/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	// A plain ":memory:" DSN gives every pooled connection its own empty
	// database; a named shared-cache DSN lets all connections in this test
	// see the same in-memory database.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", url.PathEscape(t.Name()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	users := service.NewUserService(db, repository.NewUserRepository(db))
	requests := service.NewRequestService(db, repository.NewRequestRepository(db), users)
	bookings := service.NewBookingService(db, repository.NewBookingRepository(db), repository.NewItemRepository(db), users)
	items := service.NewItemService(db, repository.NewItemRepository(db), users, bookings, requests)
	comments := service.NewCommentService(db, repository.NewCommentRepository(db), bookings)

	h := NewHandlers(users, items, bookings, requests, comments)
	return NewRouter(h, zerolog.Nop())
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, userID uint, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("X-Sharer-User-Id", fmt.Sprint(userID))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeID(t *testing.T, w *httptest.ResponseRecorder) uint {
	t.Helper()
	var out struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out.ID
}

func newUser(t *testing.T, r *gin.Engine, name, email string) uint {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/users", 0, gin.H{"name": name, "email": email})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeID(t, w)
}

func newItem(t *testing.T, r *gin.Engine, ownerID uint, name string) uint {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/items", ownerID, gin.H{
		"name":        name,
		"description": name + " description",
		"available":   true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeID(t, w)
}

func TestBookingLifecycleEndToEnd(t *testing.T) {
	r := setupRouter(t)
	owner := newUser(t, r, "owner", "owner@example.com")
	booker := newUser(t, r, "booker", "booker@example.com")
	item := newItem(t, r, owner, "drill")

	start := time.Now().Add(time.Hour).Format(time.RFC3339)
	end := time.Now().Add(2 * time.Hour).Format(time.RFC3339)
	w := doJSON(t, r, http.MethodPost, "/bookings", booker, gin.H{
		"itemId": item,
		"start":  start,
		"end":    end,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
		Booker struct {
			ID uint `json:"id"`
		} `json:"booker"`
		Item struct {
			ID uint `json:"id"`
		} `json:"item"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "WAITING", created.Status)
	assert.Equal(t, booker, created.Booker.ID)
	assert.Equal(t, item, created.Item.ID)

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/bookings/%d?approved=true", created.ID), owner, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var approved struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &approved))
	assert.Equal(t, "APPROVED", approved.Status)

	// the transition is final
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/bookings/%d?approved=false", created.ID), owner, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"booking already approved or rejected"}`, w.Body.String())

	// booker and owner can read it, a third party cannot
	stranger := newUser(t, r, "stranger", "stranger@example.com")
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/bookings/%d", created.ID), booker, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/bookings/%d", created.ID), stranger, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingUnknownStateBody(t *testing.T) {
	r := setupRouter(t)
	booker := newUser(t, r, "booker", "booker@example.com")

	w := doJSON(t, r, http.MethodGet, "/bookings?state=wtf", booker, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Unknown state: wtf"}`, w.Body.String())
}

func TestBookingPaginationBody(t *testing.T) {
	r := setupRouter(t)
	booker := newUser(t, r, "booker", "booker@example.com")

	w := doJSON(t, r, http.MethodGet, "/bookings?from=-1&size=20", booker, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"not positive value in pagination"}`, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/bookings?from=0&size=0", booker, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMissingUserHeader(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/bookings", 0, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "X-Sharer-User-Id")
}

func TestSearchNeedsNoUserHeader(t *testing.T) {
	r := setupRouter(t)
	owner := newUser(t, r, "owner", "owner@example.com")
	newItem(t, r, owner, "drill")

	w := doJSON(t, r, http.MethodGet, "/items/search?text=drill", 0, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var items []json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 1)
}

func TestSearchBlankTextReturnsEmptyArray(t *testing.T) {
	r := setupRouter(t)
	owner := newUser(t, r, "owner", "owner@example.com")
	newItem(t, r, owner, "drill")

	w := doJSON(t, r, http.MethodGet, "/items/search", 0, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCreateUserStatusCreated(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/users", 0, gin.H{"name": "alice", "email": "alice@example.com"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateItemStatusCreated(t *testing.T) {
	r := setupRouter(t)
	owner := newUser(t, r, "owner", "owner@example.com")

	w := doJSON(t, r, http.MethodPost, "/items", owner, gin.H{
		"name":        "drill",
		"description": "a drill",
		"available":   true,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateItemValidationBody(t *testing.T) {
	r := setupRouter(t)
	owner := newUser(t, r, "owner", "owner@example.com")

	w := doJSON(t, r, http.MethodPost, "/items", owner, gin.H{"name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var fields map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fields))
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "description")
	assert.Contains(t, fields, "available")
}

func TestDuplicateEmailConflictBody(t *testing.T) {
	r := setupRouter(t)
	newUser(t, r, "alice", "alice@example.com")

	w := doJSON(t, r, http.MethodPost, "/users", 0, gin.H{"name": "bob", "email": "alice@example.com"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"data integrity violation"}`, w.Body.String())
}

func TestDeleteReferencedUserConflict(t *testing.T) {
	r := setupRouter(t)
	owner := newUser(t, r, "owner", "owner@example.com")
	newItem(t, r, owner, "drill")

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/users/%d", owner), 0, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"user has related records"}`, w.Body.String())
}

func TestRequestsAllExcludesOwn(t *testing.T) {
	r := setupRouter(t)
	alice := newUser(t, r, "alice", "alice@example.com")
	bob := newUser(t, r, "bob", "bob@example.com")

	w := doJSON(t, r, http.MethodPost, "/requests", alice, gin.H{"description": "need a drill"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/requests/all", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/requests/all", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var requests []json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &requests))
	assert.Len(t, requests, 1)
}

func TestApproveRequiresBooleanFlag(t *testing.T) {
	r := setupRouter(t)
	owner := newUser(t, r, "owner", "owner@example.com")

	w := doJSON(t, r, http.MethodPatch, "/bookings/1?approved=maybe", owner, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvalidBodyRejected(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid request body"}`, w.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPut, "/users", 0, gin.H{})
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.JSONEq(t, `{"error":"method not allowed"}`, w.Body.String())
}

func TestHealthCheck(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/manage/health", 0, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"UP"}`, w.Body.String())
}

func TestRequestIDStamped(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/manage/health", 0, nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	req := httptest.NewRequest(http.MethodGet, "/manage/health", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-Id"))
}

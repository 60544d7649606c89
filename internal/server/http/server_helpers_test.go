package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/avasilenko/smart-todo/internal/errs"
	"github.com/avasilenko/smart-todo/internal/model"
	"github.com/avasilenko/smart-todo/internal/repository"
	"github.com/avasilenko/smart-todo/internal/service"
	"github.com/avasilenko/smart-todo/internal/token"
	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap/zaptest"
)

const testSignKey = "test-sign-key"

// memUsers is an in-memory UserRepository.
type memUsers struct {
	byName map[string]*model.User
}

var _ repository.UserRepository = (*memUsers)(nil)

func (m *memUsers) Create(_ context.Context, u *model.User) error {
	if _, exists := m.byName[u.Username]; exists {
		return errs.ErrAlreadyExists
	}
	u.CreatedAt = time.Now()
	cpy := *u
	m.byName[u.Username] = &cpy
	return nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	u, ok := m.byName[username]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range m.byName {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

// memTasks is an in-memory TaskRepository with the same ownership and
// completion-stamping semantics as the SQL implementation.
type memTasks struct {
	byID map[uuid.UUID]*model.Task
	last time.Time
}

var _ repository.TaskRepository = (*memTasks)(nil)

func (m *memTasks) Create(_ context.Context, t *model.Task) error {
	// strictly increasing creation times so ordering is deterministic,
	// without stamping into the future past later CompletedAt values
	t.CreatedAt = time.Now()
	if !t.CreatedAt.After(m.last) {
		t.CreatedAt = m.last.Add(time.Nanosecond)
	}
	m.last = t.CreatedAt
	cpy := *t
	m.byID[t.ID] = &cpy
	return nil
}

func (m *memTasks) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Task, error) {
	out := []model.Task{}
	for _, t := range m.byID {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memTasks) Update(_ context.Context, userID, taskID uuid.UUID, patch model.TaskPatch) (*model.Task, error) {
	t, ok := m.byID[taskID]
	if !ok || t.UserID != userID {
		return nil, errs.ErrNotFound
	}
	if patch.Text != nil {
		t.Text = *patch.Text
	}
	if patch.Category != nil {
		t.Category = *patch.Category
	}
	if patch.IsCompleted != nil {
		t.IsCompleted = *patch.IsCompleted
		if *patch.IsCompleted {
			now := time.Now()
			t.CompletedAt = &now
		}
	}
	if patch.DueDate != nil {
		t.DueDate = patch.DueDate
	}
	if patch.Priority != nil {
		t.Priority = patch.Priority
	}
	if patch.Location != nil {
		t.Location = patch.Location
	}
	if patch.Notes != nil {
		t.Notes = patch.Notes
	}
	if patch.Tags != nil {
		t.Tags = patch.Tags
	}
	cpy := *t
	return &cpy, nil
}

func (m *memTasks) Delete(_ context.Context, userID, taskID uuid.UUID) error {
	t, ok := m.byID[taskID]
	if !ok || t.UserID != userID {
		return errs.ErrNotFound
	}
	delete(m.byID, taskID)
	return nil
}

// newTestServer wires real services over in-memory repositories.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	tokens := token.NewService([]byte(testSignKey), time.Hour)
	auth := service.NewAuthService(&memUsers{byName: map[string]*model.User{}}, tokens)
	tasks := service.NewTaskService(&memTasks{byID: map[uuid.UUID]*model.Task{}})
	srv := New(auth, tasks, tokens, zaptest.NewLogger(t))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func makeJWT(t *testing.T, sub string, key []byte, method jwt.SigningMethod, iat time.Time, ttl time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   sub,
		IssuedAt:  jwt.NewNumericDate(iat),
		ExpiresAt: jwt.NewNumericDate(iat.Add(ttl)),
	}
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	return s
}

func doJSON(t *testing.T, client *http.Client, method, url, bearer, body string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != "" {
		req, err = http.NewRequest(method, url, strings.NewReader(body))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/gatherly/events-api/internal/application"
	"github.com/gatherly/events-api/internal/domain/entity"
	"github.com/gatherly/events-api/internal/interface/middleware"
	"github.com/gatherly/events-api/pkg/helpers"
	"github.com/gatherly/events-api/pkg/validation"
)

var initOnce sync.Once

// testEnv wires real services and handlers onto an in-memory store behind a
// Gin engine with the production route layout.
type testEnv struct {
	engine *gin.Engine
	store  *fakeStore
	jwt    *helpers.JWTManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	initOnce.Do(func() {
		gin.SetMode(gin.TestMode)
		validation.Init()
	})

	store := newFakeStore()
	logger := helpers.NewLogger("test", "test")
	jwt := helpers.NewJWTManager("testsecret", time.Hour)

	authSvc := application.NewAuthService(store, jwt, logger)
	eventSvc := application.NewEventService(fakeEventRepo{store}, store, logger)
	regSvc := application.NewRegistrationService(fakeRegRepo{store}, fakeEventRepo{store}, store, dropPublisher{}, logger, true)

	authH := NewAuthHandler(authSvc, logger)
	eventH := NewEventHandler(eventSvc, logger)
	regH := NewRegistrationHandler(regSvc, logger)

	routes := NewEventRoutes(eventH, regH, jwt)

	// Same shape the event module mounts: the two-segment /events routes
	// are parameter-only and EventRoutes dispatches them.
	engine := gin.New()
	api := engine.Group("/api")
	api.POST("/auth/register", authH.Register)
	api.POST("/auth/login", authH.Login)
	api.GET("/events", eventH.List)
	api.GET("/events/:id", eventH.Get)
	api.GET("/events/:id/:sub", routes.GetSub)

	authed := api.Group("", middleware.Auth(jwt))
	authed.POST("/events", eventH.Create)
	authed.PUT("/events/:id", eventH.Update)
	authed.DELETE("/events/:id", eventH.Delete)
	authed.POST("/events/:id/:sub", routes.PostSub)
	authed.GET("/user/registrations", regH.ListMine)

	return &testEnv{engine: engine, store: store, jwt: jwt}
}

// addUser seeds a user directly and returns it together with a valid token.
func (env *testEnv) addUser(t *testing.T, username string) (*entity.User, string) {
	t.Helper()
	u := &entity.User{Username: username, Email: username + "@example.com", Password: "irrelevant-hash"}
	require.NoError(t, env.store.Create(context.Background(), u))
	token, _, err := env.jwt.Generate(u.ID, u.Username)
	require.NoError(t, err)
	return u, token
}

func (env *testEnv) addEvent(t *testing.T, title string, date time.Time, location string, organizer *entity.User) *entity.Event {
	t.Helper()
	e := &entity.Event{
		Title:       title,
		Description: title + " description",
		Date:        date,
		Location:    location,
		OrganizerID: organizer.ID,
		Organizer:   organizer.Username,
	}
	require.NoError(t, fakeEventRepo{env.store}.Create(context.Background(), e))
	return e
}

// do performs a request; body may be nil, a raw string, or any JSON-encodable
// value. token "" means unauthenticated.
func (env *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf *bytes.Buffer
	switch b := body.(type) {
	case nil:
		buf = bytes.NewBuffer(nil)
	case string:
		buf = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		buf = bytes.NewBuffer(raw)
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	return w
}

// envelope mirrors the response wrapper with untyped data for assertions.
type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
	Error   string          `json:"error"`
	Details map[string]any  `json:"details"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) (envelope, T) {
	t.Helper()
	env := decode(t, w)
	var out T
	if len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, &out))
	}
	return env, out
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "unexpected status, body: %s", w.Body.String())
}

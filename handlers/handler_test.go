package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"boomiis-api/config"
	"boomiis-api/middleware"
	"boomiis-api/payments"
	"boomiis-api/store"
)

const testPassword = "password"

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeProvider keeps intents in memory.
type fakeProvider struct {
	mu        sync.Mutex
	intents   map[string]*payments.Intent
	metadata  map[string]string
	createErr error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{intents: map[string]*payments.Intent{}}
}

func (f *fakeProvider) CreateIntent(_ context.Context, amountMinor int64, currency string, metadata map[string]string) (*payments.Intent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return nil, f.createErr
	}

	id := fmt.Sprintf("pi_%d", len(f.intents)+1)
	intent := &payments.Intent{
		ID:           id,
		ClientSecret: id + "_secret",
		Status:       "requires_payment_method",
		Amount:       amountMinor,
		Currency:     currency,
	}
	f.intents[id] = intent
	f.metadata = metadata

	cp := *intent
	return &cp, nil
}

func (f *fakeProvider) GetIntent(_ context.Context, id string) (*payments.Intent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	intent, ok := f.intents[id]
	if !ok {
		return nil, errors.New("no such payment_intent: " + id)
	}
	cp := *intent
	return &cp, nil
}

func (f *fakeProvider) succeed(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.intents[id].Status = payments.StatusSucceeded
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, store.Migrate(db), "failed to migrate test database")

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Port:                    8000,
		GinMode:                 gin.TestMode,
		SiteName:                "BoomiisUK",
		CORSOrigins:             []string{"*"},
		ReservationSlotCapacity: 20,
		LoginAttemptsPerMinute:  5,
		DB:                      config.Database{Name: "boomiis"},
		Admin: config.Admin{
			Email:         "admin@boomiis.uk",
			PasswordHash:  middleware.HashPassword(testPassword),
			SessionSecret: "test-secret",
		},
		Pricing: config.Pricing{Currency: "GBP"},
	}
}

type testEnv struct {
	db     *gorm.DB
	cfg    *config.Config
	auth   *middleware.Authenticator
	h      *Handler
	router *gin.Engine
}

func newTestEnv(t *testing.T, provider payments.Provider, mutate ...func(*config.Config)) *testEnv {
	t.Helper()

	cfg := testConfig()
	for _, m := range mutate {
		m(cfg)
	}

	db := setupTestDB(t)
	auth := middleware.NewAuthenticator(cfg.Admin)
	h := New(db, cfg, auth, provider)

	r := gin.New()
	r.GET("/test", h.TestDatabase)
	r.GET("/schema", h.Schema)
	r.GET("/health", h.Health)

	api := r.Group("/api")
	api.GET("/menu", h.GetMenu)
	api.GET("/blog", h.ListBlog)
	api.GET("/blog/:slug", h.GetBlogPost)
	api.GET("/gallery", h.ListGallery)
	api.POST("/subscribe", h.Subscribe)
	api.POST("/orders", h.PlaceOrder)
	api.POST("/orders/confirm", h.ConfirmOrder)
	api.POST("/reservations", h.CreateReservation)
	api.POST("/events/inquiry", h.CreateInquiry)
	api.GET("/state-machine", h.GetStateMachineInfo)
	api.POST("/admin/login", h.Login)
	api.POST("/admin/logout", h.Logout)

	admin := r.Group("/api/admin", auth.RequireAdmin())
	admin.GET("/session", h.GetSession)
	admin.GET("/menu", h.AdminGetMenu)
	admin.POST("/menu/category", h.AdminUpsertCategory)
	admin.POST("/menu/item", h.AdminUpsertItem)
	admin.GET("/orders", h.AdminGetAllOrders)
	admin.PUT("/orders/:id/status", h.AdminUpdateOrderStatus)
	admin.GET("/reservations", h.AdminGetReservations)
	admin.GET("/inquiries", h.AdminGetInquiries)
	admin.GET("/subscribers", h.AdminGetSubscribers)
	admin.GET("/settings", h.AdminGetSettings)
	admin.POST("/settings", h.AdminUpsertSetting)
	admin.POST("/blog", h.AdminUpsertBlogPost)
	admin.POST("/gallery", h.AdminCreateGalleryImage)

	return &testEnv{db: db, cfg: cfg, auth: auth, h: h, router: r}
}

// do sends body (marshalled unless it is a string) and returns the recorded response.
func (e *testEnv) do(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// admin sends an authenticated request.
func (e *testEnv) admin(method, path string, body any) *httptest.ResponseRecorder {
	cookie := &http.Cookie{Name: middleware.SessionCookie, Value: e.auth.SessionValue()}
	return e.do(method, path, body, cookie)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short", "declined", 120, "declined"},
		{"ascii cut", "abcdef", 3, "abc"},
		{"keeps whole rune", "ab£cd", 3, "ab"},
		{"rune fits", "ab£cd", 4, "ab£"},
		{"multi byte at limit", "€€", 4, "€"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.n)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/application/orderimport"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func ok(c *gin.Context) { c.String(http.StatusOK, c.FullPath()) }

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	NewRouter(engine, WithAPIVersion("v2")).
		Register(NewDomainGroup("ping", "/ping").GET("", ok)).
		Setup()

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v2/ping").Code)
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/v1/ping").Code)
}

func TestRouterUse_AppliesToAPIGroupOnly(t *testing.T) {
	engine := gin.New()
	engine.GET("/health", ok)

	r := NewRouter(engine)
	r.Use(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusUnauthorized)
	})
	r.Register(NewDomainGroup("orders", "/orders").GET("/:id", ok))
	r.Setup()

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/health").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodGet, "/api/v1/orders/1").Code)
}

func TestDomainGroup(t *testing.T) {
	engine := gin.New()
	var groupHits int
	g := NewDomainGroup("orders", "/orders").
		Use(func(c *gin.Context) { groupHits++; c.Next() }).
		GET("/:id", ok).
		POST("/import", ok)
	NewRouter(engine).Register(g).Setup()

	assert.Equal(t, "orders", g.Name())
	assert.Equal(t, "/orders", g.Prefix())

	w := serve(engine, http.MethodGet, "/api/v1/orders/42")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/api/v1/orders/:id", w.Body.String())

	w = serve(engine, http.MethodPost, "/api/v1/orders/import")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/api/v1/orders/import", w.Body.String())

	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodPost, "/api/v1/orders/42/cancel").Code)
	assert.Equal(t, 2, groupHits)
}

type stubImporter struct {
	order *order.Order
}

func (s stubImporter) ImportJSON(context.Context, orderimport.Caller, []byte) (*order.Order, error) {
	return s.order, nil
}

func (s stubImporter) GetOrder(_ context.Context, id uuid.UUID) (*order.Order, error) {
	if s.order != nil && s.order.ID == id {
		return s.order, nil
	}
	return nil, shared.ErrNotFound
}

func TestOrderRoutes(t *testing.T) {
	o := order.NewOrder("api")
	engine := NewEngine(EngineConfig{Logger: zap.NewNop()})
	NewRouter(engine).
		Use(func(c *gin.Context) {
			c.Set(middleware.CallerKey, orderimport.Caller{UserID: uuid.New()})
			c.Next()
		}).
		Register(OrderRoutes(handler.NewOrderHandler(stubImporter{order: o}), 32)).
		Setup()

	t.Run("import", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/import", strings.NewReader(`{}`))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("import payload over route limit", func(t *testing.T) {
		body := `{"email":"someone-with-a-long-name@example.com"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/import", strings.NewReader(body))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("get", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/orders/"+o.ID.String()).Code)
		assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/v1/orders/"+uuid.NewString()).Code)
	})
}

func TestNewEngine_Middleware(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")

	engine := NewEngine(EngineConfig{
		Logger:      zap.NewNop(),
		MaxBodySize: 8,
		Meter:       meter,
	})
	engine.GET("/ping", ok)
	engine.POST("/echo", ok)
	engine.GET("/panic", func(*gin.Context) { panic("boom") })

	w := serve(engine, http.MethodGet, "/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	assert.Equal(t, http.StatusInternalServerError, serve(engine, http.MethodGet, "/panic").Code)

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("0123456789"))
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	assert.NotEmpty(t, rm.ScopeMetrics)
}

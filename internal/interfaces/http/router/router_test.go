package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Equal(t, "/api/v1", r.BasePath())
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "/api/v2", r.BasePath())
}

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewDomainGroup("reconciliations", "/reconciliations")
		assert.Equal(t, "reconciliations", g.Name())
		assert.Equal(t, "/reconciliations", g.Prefix())
	})

	t.Run("registers methods", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		g.GET("/items", func(c *gin.Context) { c.String(http.StatusOK, "list") }).
			POST("/items", func(c *gin.Context) { c.String(http.StatusCreated, "created") }).
			PATCH("/items/:id", func(c *gin.Context) { c.String(http.StatusOK, c.Param("id")) })
		g.RegisterRoutes(engine.Group("/api/v1"))

		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/test/items").Code)
		assert.Equal(t, http.StatusCreated, serve(engine, http.MethodPost, "/api/v1/test/items").Code)
		w := serve(engine, http.MethodPatch, "/api/v1/test/items/42")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "42", w.Body.String())
	})

	t.Run("empty path registers the group root", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("reconciliations", "/reconciliations")
		g.GET("", func(c *gin.Context) { c.String(http.StatusOK, "root") })
		g.RegisterRoutes(engine.Group("/api/v1"))

		w := serve(engine, http.MethodGet, "/api/v1/reconciliations")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "root", w.Body.String())
	})

	t.Run("middleware applies to the group only", func(t *testing.T) {
		engine := gin.New()
		guarded := NewDomainGroup("guarded", "/guarded").Use(func(c *gin.Context) {
			c.AbortWithStatus(http.StatusUnauthorized)
		})
		guarded.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
		open := NewDomainGroup("open", "/open")
		open.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		r := NewRouter(engine)
		r.Register(guarded).Register(open)
		r.Setup()

		assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodGet, "/api/v1/guarded/x").Code)
		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/open/x").Code)
	})

	t.Run("subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("reconciliations", "/reconciliations")
		g.Group("details", "/:id/details").GET("", func(c *gin.Context) {
			c.String(http.StatusOK, "details of "+c.Param("id"))
		})
		g.RegisterRoutes(engine.Group("/api/v1"))

		w := serve(engine, http.MethodGet, "/api/v1/reconciliations/7/details")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "details of 7", w.Body.String())
	})
}

func TestDomainGroupRoutes(t *testing.T) {
	noop := func(c *gin.Context) {}
	g := NewDomainGroup("reconciliations", "/reconciliations")
	g.POST("", noop).GET("/:id", noop)
	g.Group("comments", "/:id/comments").GET("", noop)

	assert.Equal(t, []RouteInfo{
		{Method: http.MethodPost, Path: "/reconciliations"},
		{Method: http.MethodGet, Path: "/reconciliations/:id"},
		{Method: http.MethodGet, Path: "/reconciliations/:id/comments"},
	}, g.Routes())
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "/auth", joinPath("/auth", ""))
	assert.Equal(t, "/auth/login", joinPath("/auth", "/login"))
	assert.Equal(t, "/swagger/", joinPath("/swagger", "/"))
}

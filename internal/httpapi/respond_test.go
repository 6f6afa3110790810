package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitrine/catalog-service/internal/apperr"
	"github.com/vitrine/catalog-service/pkg/i18n"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := i18n.Init(); err != nil {
		panic(err)
	}
	m.Run()
}

func record(handler func(c *gin.Context)) (*httptest.ResponseRecorder, Response) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handler(c)

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		panic(err)
	}
	return w, resp
}

func TestFail(t *testing.T) {
	t.Run("not found maps to 404 with the translated message", func(t *testing.T) {
		w, resp := record(func(c *gin.Context) {
			Fail(c, apperr.NotFound("category.not_found"))
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.False(t, resp.Success)
		assert.Equal(t, "Categoria não encontrada", resp.Message)
	})

	t.Run("conflict maps to 409", func(t *testing.T) {
		w, resp := record(func(c *gin.Context) {
			Fail(c, apperr.Conflict("category.slug_conflict"))
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.False(t, resp.Success)
	})

	t.Run("validation maps to 400 and renders template data", func(t *testing.T) {
		w, resp := record(func(c *gin.Context) {
			Fail(c, apperr.ValidationData("validation.required", map[string]any{"Fields": "name, slug"}))
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, resp.Message, "name, slug")
	})

	t.Run("untagged errors map to 500 without leaking the cause", func(t *testing.T) {
		w, resp := record(func(c *gin.Context) {
			Fail(c, errors.New("pq: connection refused"))
		})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, resp.Message, "connection refused")
	})
}

func TestSuccessEnvelopes(t *testing.T) {
	t.Run("OKData carries the payload", func(t *testing.T) {
		w, resp := record(func(c *gin.Context) {
			OKData(c, map[string]string{"id": "p1"})
		})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.Success)
		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "p1", data["id"])
	})

	t.Run("OKMessage renders a pre-built message verbatim", func(t *testing.T) {
		w, resp := record(func(c *gin.Context) {
			OKMessage(c, i18n.TData("category.bulk_deleted", map[string]any{"Count": 0}))
		})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Excluídos 0 itens!", resp.Message)
	})

	t.Run("Created answers 201", func(t *testing.T) {
		w, resp := record(func(c *gin.Context) {
			Created(c, "product.created", map[string]string{"id": "p1"})
		})
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, resp.Success)
	})
}

func TestAdminAuth(t *testing.T) {
	router := gin.New()
	router.Use(AdminAuth("s3cret"))
	router.GET("/admin", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("missing token is unauthorized", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong token is unauthorized", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("X-Admin-Token", "nope")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("header token passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("X-Admin-Token", "s3cret")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("bearer token passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer s3cret")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("empty configured token lets everything through", func(t *testing.T) {
		open := gin.New()
		open.Use(AdminAuth(""))
		open.GET("/admin", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		open.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

package middleware

import (
	"ProjectShelf/internal/pkg/consts"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func baseURLFromRequest(t *testing.T, setup func(req *http.Request)) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var got string
	r := gin.New()
	r.Use(CommonMiddleware())
	r.GET("/echo", func(c *gin.Context) {
		got, _ = c.Request.Context().Value(consts.BaseURL).(string)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "http://api.example.com/echo", nil)
	if setup != nil {
		setup(req)
	}
	r.ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func TestCommonMiddlewarePrefersReferer(t *testing.T) {
	got := baseURLFromRequest(t, func(req *http.Request) {
		req.Header.Set("Referer", "https://shelf.example/jane/projects/demo?tab=media")
	})
	if got != "https://shelf.example" {
		t.Fatalf("expected referer origin, got %q", got)
	}
}

func TestCommonMiddlewareFallsBackToHost(t *testing.T) {
	got := baseURLFromRequest(t, nil)
	if got != "http://api.example.com" {
		t.Fatalf("expected request host origin, got %q", got)
	}
}

func TestCommonMiddlewareHonorsForwardedProto(t *testing.T) {
	got := baseURLFromRequest(t, func(req *http.Request) {
		req.Header.Set("X-Forwarded-Proto", "https")
	})
	if got != "https://api.example.com" {
		t.Fatalf("expected https origin behind proxy, got %q", got)
	}
}

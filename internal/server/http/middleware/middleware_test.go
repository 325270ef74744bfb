package middleware

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainErrors "github.com/gradovikov/storefront/internal/domain/errors"
	"github.com/gradovikov/storefront/internal/domain/model"
	pkgAuth "github.com/gradovikov/storefront/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type tokenParserStub struct {
	id  uuid.UUID
	err error
}

func (s tokenParserStub) ParseToken(string) (uuid.UUID, error) {
	return s.id, s.err
}

type roleLookupStub struct {
	role model.Role
	err  error
}

func (s roleLookupStub) UserRole(context.Context, uuid.UUID) (model.Role, error) {
	return s.role, s.err
}

func TestAuthRequired(t *testing.T) {
	router := gin.New()
	router.Use(AuthRequired(tokenParserStub{}))
	router.GET("/", func(c *gin.Context) {})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.Code)
	}

	router = gin.New()
	router.Use(AuthRequired(tokenParserStub{err: pkgAuth.ErrInvalidToken}))
	router.GET("/", func(c *gin.Context) {})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", resp.Code)
	}

	router = gin.New()
	router.Use(AuthRequired(tokenParserStub{err: context.DeadlineExceeded}))
	router.GET("/", func(c *gin.Context) {})
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}

	subject := uuid.New()
	var storedID uuid.UUID
	router = gin.New()
	router.Use(AuthRequired(tokenParserStub{id: subject}))
	router.GET("/", func(c *gin.Context) {
		if v, ok := c.Get(UserIDContextKey); ok {
			storedID = v.(uuid.UUID)
		}
		c.Status(http.StatusOK)
	})
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if storedID != subject {
		t.Fatalf("expected user id %s, got %s", subject, storedID)
	}
}

func TestAdminRequired(t *testing.T) {
	tests := []struct {
		name     string
		setUser  bool
		lookup   roleLookupStub
		expected int
	}{
		{"no identity", false, roleLookupStub{}, http.StatusUnauthorized},
		{"unknown user", true, roleLookupStub{err: domainErrors.ErrNotFound}, http.StatusUnauthorized},
		{"lookup failure", true, roleLookupStub{err: context.DeadlineExceeded}, http.StatusInternalServerError},
		{"customer", true, roleLookupStub{role: model.RoleCustomer}, http.StatusForbidden},
		{"admin", true, roleLookupStub{role: model.RoleAdmin}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			if tt.setUser {
				router.Use(func(c *gin.Context) {
					c.Set(UserIDContextKey, uuid.New())
				})
			}
			router.Use(AdminRequired(tt.lookup))
			router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
			if resp.Code != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, resp.Code)
			}
		})
	}
}

func TestExtractToken(t *testing.T) {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)
	if token := extractToken(c); token != "" {
		t.Fatalf("expected empty token, got %q", token)
	}
	c.Request.Header.Set("Authorization", "Bearer abc")
	if token := extractToken(c); token != "abc" {
		t.Fatalf("expected token from header, got %q", token)
	}
	c.Request.Header.Del("Authorization")
	c.Request.AddCookie(&http.Cookie{Name: authCookieName, Value: "cookie"})
	if token := extractToken(c); token != "cookie" {
		t.Fatalf("expected token from cookie, got %q", token)
	}
}

func TestDecompressRequest(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, _ = gz.Write([]byte("payload"))
	_ = gz.Close()

	router := gin.New()
	router.Use(DecompressRequest())
	var body string
	router.POST("/", func(c *gin.Context) {
		data, _ := io.ReadAll(c.Request.Body)
		body = string(data)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Encoding", "gzip")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if body != "payload" {
		t.Fatalf("expected decompressed body, got %q", body)
	}
}

func TestDecompressRequestBadPayload(t *testing.T) {
	router := gin.New()
	router.Use(DecompressRequest())
	router.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not gzip"))
	req.Header.Set("Content-Encoding", "gzip")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for corrupt payload, got %d", resp.Code)
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(RequestLogger(logger))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	logged := buf.String()
	if !strings.Contains(logged, `"path":"/ping"`) || !strings.Contains(logged, `"status":200`) {
		t.Fatalf("expected request details in log output, got %q", logged)
	}
}

package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/avezina/signalhub/internal/auth"
)

func newSignupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(sessions.Sessions("SignalhubSessions", cookie.NewStore([]byte("test-secret"))))

	h := &AuthHandler{Auth: auth.NewService(auth.NewMemoryStore(), bcrypt.MinCost)}
	r.POST("/api/auth/signup", h.SignUp)
	return r
}

func postSignup(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignUpEndpointCreatesAccount(t *testing.T) {
	r := newSignupRouter(t)

	w := postSignup(r, `{"name":"Alice","email":"alice@example.com","password":"long-enough-pass"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s; want 201", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, `"email":"alice@example.com"`) {
		t.Fatalf("body = %s; want created account email", body)
	}
	if strings.Contains(body, "password") || strings.Contains(body, "hash") {
		t.Fatalf("body leaks credentials: %s", body)
	}
	if len(w.Result().Cookies()) == 0 {
		t.Fatal("expected a session cookie on signup")
	}
}

func TestSignUpEndpointValidatesPayload(t *testing.T) {
	r := newSignupRouter(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing email", `{"name":"A","password":"long-enough-pass"}`},
		{"bad email", `{"name":"A","email":"not-an-email","password":"long-enough-pass"}`},
		{"short password", `{"name":"A","email":"a@example.com","password":"short"}`},
		{"not json", `oops`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if w := postSignup(r, tc.body); w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d; want 400", w.Code)
			}
		})
	}
}

func TestSignUpEndpointRejectsDuplicate(t *testing.T) {
	r := newSignupRouter(t)

	body := `{"name":"Alice","email":"alice@example.com","password":"long-enough-pass"}`
	if w := postSignup(r, body); w.Code != http.StatusCreated {
		t.Fatalf("first signup status = %d", w.Code)
	}
	if w := postSignup(r, body); w.Code != http.StatusConflict {
		t.Fatalf("duplicate signup status = %d; want 409", w.Code)
	}
}

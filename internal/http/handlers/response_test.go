package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("json: %v (body=%s)", err, w.Body.String())
	}
	return env
}

func Test_fail_500_LogsAndBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	// capture logs from LoggerFrom(c)
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	r.Use(func(c *gin.Context) {
		c.Set("logger", &logger)
		c.Next()
	})

	r.GET("/boom", func(c *gin.Context) {
		fail(c, http.StatusInternalServerError, "kaboom", emptyObject())
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env.StatusCode != 500 || env.Message != MsgInternal || env.Description != "kaboom" {
		t.Fatalf("unexpected body: %+v", env)
	}
	if !strings.Contains(buf.String(), `"level":"error"`) {
		t.Fatalf("expected error log, got: %s", buf.String())
	}
}

func Test_Fail_And_ok(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/missing", func(c *gin.Context) { Fail(c, http.StatusNotFound, "nope") })
	r.GET("/ok", func(c *gin.Context) { ok(c, gin.H{"n": 1}) })
	r.GET("/list", func(c *gin.Context) { fail(c, http.StatusBadRequest, "bad", emptyList()) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"data":{}`) {
		t.Fatalf("expected empty object data: %s", w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if env.StatusCode != 404 || env.Message != MsgNotFound || env.Description != "nope" {
		t.Fatalf("unexpected 404 body: %+v", env)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	env = decodeEnvelope(t, w)
	if w.Code != http.StatusOK || env.Message != MsgSuccess || env.Description != "" {
		t.Fatalf("unexpected ok body: %d %+v", w.Code, env)
	}
	if data, _ := env.Data.(map[string]any); data["n"] != float64(1) {
		t.Fatalf("unexpected data: %#v", env.Data)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/list", nil))
	if !strings.Contains(w.Body.String(), `"data":[]`) {
		t.Fatalf("expected empty list data: %s", w.Body.String())
	}
}

func TestMessageFor(t *testing.T) {
	cases := map[int]string{
		200: "Success",
		400: "Bad request",
		401: "Unauthorized",
		404: "Not Found",
		405: "Method Not Allowed",
		429: "Too Many Requests",
		500: "Internal server error",
		418: http.StatusText(418),
	}
	for status, want := range cases {
		if got := MessageFor(status); got != want {
			t.Fatalf("MessageFor(%d) = %q; want %q", status, got, want)
		}
	}
}

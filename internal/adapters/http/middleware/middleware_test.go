package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/pencil-api/internal/adapters/http/dto"
	"github.com/jsamuelsen/pencil-api/internal/platform/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// withLogger installs a JSON logger writing to buf as the context logger.
func withLogger(buf *bytes.Buffer) gin.HandlerFunc {
	logger := slog.New(slog.NewJSONHandler(buf, nil))

	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), logger))
		c.Next()
	}
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestIDMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		mw      func() gin.HandlerFunc
		header  string
		get     func(*gin.Context) string
		logAttr string
	}{
		{"request id", RequestID, HeaderRequestID, GetRequestID, "request_id"},
		{"correlation id", CorrelationID, HeaderCorrelationID, GetCorrelationID, "correlation_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cases := []struct {
				name     string
				incoming string
				keep     bool
			}{
				{"generated when absent", "", false},
				{"propagated when present", "abc-123", true},
				{"replaced when too long", strings.Repeat("a", maxIDLength+1), false},
				{"replaced when not printable", "bad id\n", false},
			}

			for _, tc := range cases {
				t.Run(tc.name, func(t *testing.T) {
					var buf bytes.Buffer
					var captured string

					router := gin.New()
					router.Use(withLogger(&buf), tt.mw())
					router.GET("/api/v1/quotes/random", func(c *gin.Context) {
						captured = tt.get(c)
						logging.FromContext(c.Request.Context()).Info("handled")
						c.Status(http.StatusOK)
					})

					req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/random", nil)
					if tc.incoming != "" {
						req.Header.Set(tt.header, tc.incoming)
					}

					w := serve(router, req)

					assert.Equal(t, captured, w.Header().Get(tt.header))

					if tc.keep {
						assert.Equal(t, tc.incoming, captured)
					} else {
						_, err := uuid.Parse(captured)
						assert.NoError(t, err)
					}

					var entry map[string]any
					require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
					assert.Equal(t, captured, entry[tt.logAttr])
				})
			}
		})
	}
}

func TestGetIDFromContext(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Empty(t, GetRequestID(c))

	c.Set(ContextKeyRequestID, 42)
	assert.Empty(t, GetRequestID(c))

	c.Set(ContextKeyCorrelationID, "corr-1")
	assert.Equal(t, "corr-1", GetCorrelationID(c))
}

func TestLogging(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		status    int
		skip      []string
		wantLevel string
		wantPath  string
	}{
		{"success at info", "/api/v1/quotes/random", http.StatusOK, nil, "INFO", "/api/v1/quotes/random"},
		{"client error at warn", "/api/v1/users/abc", http.StatusBadRequest, nil, "WARN", "/api/v1/users/abc"},
		{"server error at error", "/api/v1/quotes", http.StatusInternalServerError, nil, "ERROR", "/api/v1/quotes"},
		{"query string kept", "/api/v1/quotes/random?lang=zh", http.StatusOK, nil, "INFO", "/api/v1/quotes/random?lang=zh"},
		{"operational paths skipped", "/-/ready", http.StatusOK, nil, "", ""},
		{"configured paths skipped", "/favicon.ico", http.StatusOK, []string{"/favicon.ico"}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			router := gin.New()
			router.Use(withLogger(&buf), Logging(tt.skip...))
			router.NoRoute(func(c *gin.Context) { c.Status(tt.status) })

			serve(router, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if tt.wantLevel == "" {
				assert.Empty(t, buf.String())
				return
			}

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, "request completed", entry["msg"])
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, tt.wantPath, entry["path"])
			assert.InDelta(t, tt.status, entry["status"], 0)
		})
	}
}

func TestRecovery(t *testing.T) {
	t.Run("panic becomes 500", func(t *testing.T) {
		var buf bytes.Buffer

		router := gin.New()
		router.Use(withLogger(&buf), Recovery())
		router.GET("/boom", func(*gin.Context) { panic("store invariant broken") })

		req := httptest.NewRequest(http.MethodGet, "/boom", nil)
		req.Header.Set(HeaderRequestID, "req-9")

		w := serve(router, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrorCodeInternal, resp.Error.Code)
		assert.Equal(t, "req-9", resp.TraceID)

		assert.Contains(t, buf.String(), "panic recovered")
		assert.Contains(t, buf.String(), "store invariant broken")
	})

	t.Run("panic after write keeps response", func(t *testing.T) {
		router := gin.New()
		router.Use(withLogger(&bytes.Buffer{}), Recovery())
		router.GET("/late", func(c *gin.Context) {
			c.String(http.StatusOK, "partial")
			panic("late")
		})

		w := serve(router, httptest.NewRequest(http.MethodGet, "/late", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "partial", w.Body.String())
	})
}

func TestTimeout(t *testing.T) {
	t.Run("sets deadline", func(t *testing.T) {
		var hasDeadline bool

		router := gin.New()
		router.Use(Timeout(time.Second))
		router.GET("/", func(c *gin.Context) {
			_, hasDeadline = c.Request.Context().Deadline()
			c.Status(http.StatusNoContent)
		})

		w := serve(router, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.True(t, hasDeadline)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("silent handler past deadline gets 504", func(t *testing.T) {
		router := gin.New()
		router.Use(withLogger(&bytes.Buffer{}), Timeout(5*time.Millisecond))
		router.GET("/slow", func(c *gin.Context) {
			<-c.Request.Context().Done()
		})

		w := serve(router, httptest.NewRequest(http.MethodGet, "/slow", nil))

		assert.Equal(t, http.StatusGatewayTimeout, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrorCodeTimeout, resp.Error.Code)
	})

	t.Run("written response is kept", func(t *testing.T) {
		router := gin.New()
		router.Use(Timeout(5 * time.Millisecond))
		router.GET("/slow", func(c *gin.Context) {
			c.Status(http.StatusAccepted)
			c.Writer.WriteHeaderNow()
			<-c.Request.Context().Done()
		})

		w := serve(router, httptest.NewRequest(http.MethodGet, "/slow", nil))

		assert.Equal(t, http.StatusAccepted, w.Code)
	})
}

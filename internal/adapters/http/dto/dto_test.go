package dto

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/pencil-api/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	return c, w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	return resp
}

func TestHTTPStatusFromCode(t *testing.T) {
	tests := map[string]int{
		ErrorCodeNotFound:   http.StatusNotFound,
		ErrorCodeConflict:   http.StatusConflict,
		ErrorCodeValidation: http.StatusBadRequest,
		ErrorCodeBadRequest: http.StatusBadRequest,
		ErrorCodeTimeout:    http.StatusGatewayTimeout,
		ErrorCodeTooLarge:   http.StatusRequestEntityTooLarge,
		ErrorCodeInternal:   http.StatusInternalServerError,
		"SOMETHING_ELSE":    http.StatusInternalServerError,
	}

	for code, want := range tests {
		assert.Equal(t, want, HTTPStatusFromCode(code), code)
	}
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "not found",
			err:         domain.NewNotFoundError("quote", "q-1"),
			wantStatus:  http.StatusNotFound,
			wantCode:    ErrorCodeNotFound,
			wantMessage: `quote with id "q-1" not found`,
		},
		{
			name:        "already exists",
			err:         domain.NewAlreadyExistsError("user", "username", "alice"),
			wantStatus:  http.StatusConflict,
			wantCode:    ErrorCodeConflict,
			wantMessage: "alice",
		},
		{
			name:        "validation",
			err:         domain.NewValidationError("title", "must not be empty"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    ErrorCodeValidation,
			wantMessage: "title",
		},
		{
			name:        "storage",
			err:         domain.NewStorageError(domain.StorageKindIO, "quotes", "/data/hitokoto.json", errors.New("disk full")),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    ErrorCodeInternal,
			wantMessage: "an internal error occurred",
		},
		{
			name:        "unknown",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    ErrorCodeInternal,
			wantMessage: "an internal error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := MapDomainError(tt.err)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Contains(t, resp.Error.Message, tt.wantMessage)
		})
	}
}

func TestMapDomainError_ValidationDetails(t *testing.T) {
	_, resp := MapDomainError(domain.NewValidationError("username", "must not be empty"))

	assert.Equal(t, map[string]string{"username": "must not be empty"}, resp.Error.Details)
}

func TestMapDomainError_StorageHidesPath(t *testing.T) {
	_, resp := MapDomainError(domain.NewStorageError(domain.StorageKindIO, "quotes", "/secret/path", errors.New("eio")))

	assert.NotContains(t, resp.Error.Message, "/secret/path")
}

func TestGetTraceID(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*gin.Context)
		want  string
	}{
		{"none", func(*gin.Context) {}, ""},
		{"context value", func(c *gin.Context) { c.Set("trace_id", "ctx-1") }, "ctx-1"},
		{"request id header", func(c *gin.Context) { c.Request.Header.Set("X-Request-ID", "req-1") }, "req-1"},
		{
			"context over header",
			func(c *gin.Context) {
				c.Set("trace_id", "ctx-1")
				c.Request.Header.Set("X-Request-ID", "req-1")
			},
			"ctx-1",
		},
		{"non-string context value", func(c *gin.Context) { c.Set("trace_id", 42) }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := testContext("")
			tt.setup(c)

			assert.Equal(t, tt.want, GetTraceID(c))
		})
	}
}

func TestHandleError(t *testing.T) {
	c, w := testContext("")
	c.Set("trace_id", "trace-123")

	HandleError(c, domain.NewNotFoundError("collection", "c-9"))

	assert.Equal(t, http.StatusNotFound, w.Code)

	resp := decodeError(t, w)
	assert.Equal(t, ErrorCodeNotFound, resp.Error.Code)
	assert.Equal(t, "trace-123", resp.TraceID)
}

func TestHandleBindError(t *testing.T) {
	t.Run("malformed json", func(t *testing.T) {
		c, w := testContext(`{"hitokoto":`)

		var req CreateQuoteRequest
		err := BindAndValidate(c, &req)
		require.ErrorIs(t, err, ErrBinding)

		HandleBindError(c, err)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, ErrorCodeBadRequest, decodeError(t, w).Error.Code)
	})

	t.Run("body over the size limit", func(t *testing.T) {
		c, w := testContext(`{"username":"` + strings.Repeat("a", 100) + `"}`)
		c.Request.Body = http.MaxBytesReader(w, c.Request.Body, 32)

		var req RegisterUserRequest
		err := BindAndValidate(c, &req)
		require.ErrorIs(t, err, ErrBinding)

		HandleBindError(c, err)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, ErrorCodeTooLarge, decodeError(t, w).Error.Code)
	})

	t.Run("failed validation", func(t *testing.T) {
		c, w := testContext(`{"hitokoto":"   ","user_id":0}`)

		var req CreateQuoteRequest
		err := BindAndValidate(c, &req)
		require.ErrorIs(t, err, ErrValidation)

		HandleBindError(c, err)

		resp := decodeError(t, w)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, ErrorCodeValidation, resp.Error.Code)
		assert.Equal(t, "must not be empty", resp.Error.Details["hitokoto"])
		assert.Equal(t, "this field is required", resp.Error.Details["user_id"])
	})
}

func TestRespondWithErrorCode(t *testing.T) {
	c, w := testContext("")

	RespondWithErrorCode(c, ErrorCodeBadRequest, "invalid user id")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid user id", decodeError(t, w).Error.Message)
}

func TestAbortWithErrorCode(t *testing.T) {
	c, w := testContext("")

	AbortWithErrorCode(c, ErrorCodeTimeout, "request timed out")

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestValidate_Requests(t *testing.T) {
	long := strings.Repeat("x", 73)
	short := "short"
	ok := "long enough"
	wide := strings.Repeat("日", 25)    // 25 characters, 75 bytes
	accented := strings.Repeat("é", 36) // 36 characters, 72 bytes

	tests := []struct {
		name      string
		req       any
		wantField string
	}{
		{"quote ok", CreateQuoteRequest{Text: "Stay hungry.", UserID: 1}, ""},
		{"quote blank text", CreateQuoteRequest{Text: " ", UserID: 1}, "hitokoto"},
		{"quote missing user", CreateQuoteRequest{Text: "x"}, "user_id"},
		{"user ok without password", RegisterUserRequest{Username: "alice"}, ""},
		{"user ok with password", RegisterUserRequest{Username: "alice", Password: &ok}, ""},
		{"user blank name", RegisterUserRequest{Username: "\t"}, "username"},
		{"user short password", RegisterUserRequest{Username: "alice", Password: &short}, "password"},
		{"user long password", RegisterUserRequest{Username: "alice", Password: &long}, "password"},
		{"user password over 72 bytes", RegisterUserRequest{Username: "alice", Password: &wide}, "password"},
		{"user password at 72 bytes", RegisterUserRequest{Username: "alice", Password: &accented}, ""},
		{"collection ok", CreateCollectionRequest{UserID: 1, Title: "Favourites"}, ""},
		{"collection blank title", CreateCollectionRequest{UserID: 1, Title: ""}, "title"},
		{"add quote blank id", AddQuoteRequest{}, "hitokoto_uuid"},
		{"verify missing password", VerifyCredentialsRequest{}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.req)

			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, ValidationErrors(err), tt.wantField)
		})
	}
}

func TestValidationMessages(t *testing.T) {
	short := "short"
	err := Validate(RegisterUserRequest{Username: "alice", Password: &short})

	assert.Equal(t, "must be at least 8 characters", ValidationErrors(err)["password"])

	wide := strings.Repeat("日", 25)
	err = Validate(RegisterUserRequest{Username: "alice", Password: &wide})
	assert.Equal(t, "must be at most 72 bytes", ValidationErrors(err)["password"])

	assert.True(t, IsValidationError(err))
	assert.False(t, IsValidationError(errors.New("plain")))
	assert.Empty(t, ValidationErrors(errors.New("plain")))
}

func TestNewQuoteResponse(t *testing.T) {
	who := "Steve Jobs"
	q := domain.NewQuote("q-1", "Stay hungry.", "speech", "Stanford", &who, "alice", 7, time.Unix(1700000000, 0).UTC())

	raw, err := json.Marshal(NewQuoteResponse(q))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"uuid": "q-1",
		"hitokoto": "Stay hungry.",
		"type": "speech",
		"from": "Stanford",
		"from_who": "Steve Jobs",
		"user": "alice",
		"user_id": 7,
		"created_at": 1700000000,
		"length": 12
	}`, string(raw))
}

func TestNewUserDetailsResponse(t *testing.T) {
	created := time.Unix(1700000000, 0).UTC()
	q := domain.NewQuote("q-1", "hi", "", "", nil, "alice", 7, created)

	resp := NewUserDetailsResponse(domain.UserDetails{
		ID:       7,
		Username: "alice",
		Quotes:   []domain.Quote{q},
		Collections: []domain.CollectionDetails{
			{ID: "c-1", Title: "Favourites", OwnerID: 7, Quotes: []domain.Quote{q}, CreatedAt: created},
		},
	})

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Len(t, decoded["items"], 1)

	collections := decoded["collections"].([]any)
	require.Len(t, collections, 1)

	first := collections[0].(map[string]any)
	assert.Equal(t, "c-1", first["collection_id"])
	assert.Len(t, first["hitokoto_items"], 1)
	assert.InDelta(t, 1700000000, first["created_at"], 0)
}

func TestNewUserResponse_EmptyListsEncodeAsArrays(t *testing.T) {
	raw, err := json.Marshal(NewUserResponse(domain.User{ID: 1, Username: "bob"}))
	require.NoError(t, err)

	assert.JSONEq(t, `{"user_id":1,"username":"bob","items":[],"collections":[]}`, string(raw))
}

func TestNewCollectionResponse(t *testing.T) {
	c, err := domain.NewCollection("c-1", "Favourites", nil, 7, time.Unix(1700000000, 0).UTC())
	require.NoError(t, err)

	raw, err := json.Marshal(NewCollectionResponse(c))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"collection_id": "c-1",
		"title": "Favourites",
		"description": null,
		"user_id": 7,
		"hitokoto_ids": [],
		"created_at": 1700000000
	}`, string(raw))
}

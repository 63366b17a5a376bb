package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubTokenizer struct {
	claims map[string]interface{}
	err    error
}

func (s stubTokenizer) Generate(map[string]interface{}, time.Duration) (string, error) {
	return "", nil
}

func (s stubTokenizer) Decode(string) (map[string]interface{}, error) {
	return s.claims, s.err
}

func serve(ts stubTokenizer, header string) (*httptest.ResponseRecorder, uuid.UUID) {
	gin.SetMode(gin.TestMode)
	var seen uuid.UUID
	r := gin.New()
	r.GET("/", Authorize(ts, "roundID"), func(c *gin.Context) {
		seen = c.MustGet(ContextRoundID).(uuid.UUID)
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w, seen
}

func TestAuthorize(t *testing.T) {
	id := uuid.New()
	valid := stubTokenizer{claims: map[string]interface{}{"roundID": id.String()}}

	t.Run("passes the round id on", func(t *testing.T) {
		w, seen := serve(valid, "Bearer abc")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, id, seen)
	})

	tests := []struct {
		name   string
		ts     stubTokenizer
		header string
	}{
		{name: "missing header", ts: valid, header: ""},
		{name: "wrong scheme", ts: valid, header: "Basic abc"},
		{name: "no token", ts: valid, header: "Bearer"},
		{name: "bad token", ts: stubTokenizer{err: errors.New("expired")}, header: "Bearer abc"},
		{name: "no round claim", ts: stubTokenizer{claims: map[string]interface{}{}}, header: "Bearer abc"},
		{name: "malformed round claim", ts: stubTokenizer{claims: map[string]interface{}{"roundID": "nope"}}, header: "Bearer abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := serve(tt.ts, tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

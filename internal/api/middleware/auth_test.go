package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	var gotUserID int64
	var gotOK bool

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, gotOK = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUserID int64
	}{
		{name: "valid user id", header: "42", wantStatus: http.StatusNoContent, wantUserID: 42},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "non-numeric", header: "admin", wantStatus: http.StatusUnauthorized},
		{name: "zero", header: "0", wantStatus: http.StatusUnauthorized},
		{name: "negative", header: "-1", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID, gotOK = 0, false

			req := httptest.NewRequest(http.MethodPost, "/api/v1/employee-queue", nil)
			if tt.header != "" {
				req.Header.Set("X-User-ID", tt.header)
			}

			rec := httptest.NewRecorder()
			Auth(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusNoContent {
				require.True(t, gotOK)
				assert.Equal(t, tt.wantUserID, gotUserID)
			} else {
				assert.False(t, gotOK)
			}
		})
	}
}

func TestUserIDFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := UserIDFromContext(req.Context())
	assert.False(t, ok)
}

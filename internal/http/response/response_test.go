package response

import (
	"encoding/json/v2"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/cinepick/cinepick-server/internal/errors"
)

func TestSuccess_WritesBarePayload(t *testing.T) {
	rec := httptest.NewRecorder()

	Success(rec, []string{"a", "b"}, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var got []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestError_WritesErrorBody(t *testing.T) {
	rec := httptest.NewRecorder()

	BadRequest(rec, "genres is required", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "genres is required", got["error"])
}

func TestDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "validation error surfaces its message",
			err:        domainerrors.Validation("genres is required"),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "genres is required",
		},
		{
			name:       "upstream error is masked",
			err:        domainerrors.Upstream("tmdb discover failed"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal server error",
		},
		{
			name:       "plain error is masked",
			err:        assert.AnError,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			DomainError(rec, tt.err, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var got map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.wantMsg, got["error"])
		})
	}
}

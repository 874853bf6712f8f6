package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/cinepick/cinepick-server/internal/errors"
	"github.com/cinepick/cinepick-server/internal/validation"
)

type discoverBody struct {
	Genres    []int   `json:"genres" validate:"required,min=1"`
	MinRating float64 `json:"minRating" validate:"gte=0,lte=10"`
	Count     int     `json:"count" validate:"gte=1,lte=20"`
}

func TestValidator_Success(t *testing.T) {
	v := validation.New()

	err := v.Validate(discoverBody{
		Genres:    []int{28, 12},
		MinRating: 7,
		Count:     3,
	})
	assert.NoError(t, err)
}

func TestValidator_Errors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		req       discoverBody
		wantField string
	}{
		{
			name:      "missing genres",
			req:       discoverBody{MinRating: 7, Count: 1},
			wantField: "genres",
		},
		{
			name:      "empty genres",
			req:       discoverBody{Genres: []int{}, MinRating: 7, Count: 1},
			wantField: "genres",
		},
		{
			name:      "rating out of range",
			req:       discoverBody{Genres: []int{28}, MinRating: 11, Count: 1},
			wantField: "minRating",
		},
		{
			name:      "count too small",
			req:       discoverBody{Genres: []int{28}, MinRating: 5, Count: 0},
			wantField: "count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			var domainErr *domainerrors.Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

			// Field errors use the JSON tag name.
			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok, "details should be a field error map")
			assert.Contains(t, details, tt.wantField)
		})
	}
}

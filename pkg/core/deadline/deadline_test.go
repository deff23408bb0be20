package deadline

import (
	"testing"
	"time"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDueDates(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		class      model.DelayClass
		wantEntero *time.Time
		wantYeast  *time.Time
	}{
		{
			name:       "24h gates the entero track",
			class:      model.Delay24h,
			wantEntero: ptr(time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)),
		},
		{
			name:       "48h gates the entero track",
			class:      model.Delay48h,
			wantEntero: ptr(time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)),
		},
		{
			name:      "5d gates the yeast track",
			class:     model.Delay5d,
			wantYeast: ptr(time.Date(2025, 6, 6, 10, 0, 0, 0, time.UTC)),
		},
		{
			name:  "empty class yields no deadline",
			class: "",
		},
		{
			name:  "unknown class yields no deadline",
			class: "72h",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDueDates(createdAt, tt.class)
			assert.Equal(t, tt.wantEntero, got.EnteroDue)
			assert.Equal(t, tt.wantYeast, got.YeastDue)

			if tt.class.Valid() {
				// exactly one track gated per class
				assert.True(t, (got.EnteroDue != nil) != (got.YeastDue != nil))
			} else {
				assert.Nil(t, got.EnteroDue)
				assert.Nil(t, got.YeastDue)
			}
		})
	}
}

func TestComputeDueDatesIdempotent(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	for _, class := range []model.DelayClass{model.Delay24h, model.Delay48h, model.Delay5d} {
		first := ComputeDueDates(createdAt, class)
		second := ComputeDueDates(createdAt, class)
		require.Equal(t, first, second, "class %s", class)
	}
}

func ptr(t time.Time) *time.Time {
	return &t
}

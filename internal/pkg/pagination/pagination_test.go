package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"valid", 3, 25, 3, 25},
		{"zero page", 0, 25, 1, 25},
		{"negative page", -4, 25, 1, 25},
		{"zero limit falls back to default", 2, 0, 2, DefaultLimit},
		{"oversized limit capped", 1, 5000, 1, MaxLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Clamp(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
		})
	}
}

func TestSlice(t *testing.T) {
	p := &Params{Page: 2, Limit: 10}

	start, end := p.Slice(25)
	assert.Equal(t, 10, start)
	assert.Equal(t, 20, end)

	// last partial page
	start, end = (&Params{Page: 3, Limit: 10}).Slice(25)
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)

	// page past the end comes back empty
	start, end = (&Params{Page: 9, Limit: 10}).Slice(25)
	assert.Equal(t, 25, start)
	assert.Equal(t, 25, end)
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 3, PageCount(25, 10))
	assert.Equal(t, 2, PageCount(20, 10))
	assert.Equal(t, 0, PageCount(0, 10))
	assert.Equal(t, 0, PageCount(10, 0))
}

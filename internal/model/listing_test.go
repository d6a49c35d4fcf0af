package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestFilterCriteria_Matches(t *testing.T) {
	listing := Listing{
		HostID:             "42",
		Price:              100,
		Accommodates:       2,
		ReviewScoresRating: 4.5,
	}

	tests := []struct {
		name     string
		criteria FilterCriteria
		want     bool
	}{
		{
			name:     "no bounds set matches everything",
			criteria: FilterCriteria{},
			want:     true,
		},
		{
			name:     "min price inclusive",
			criteria: FilterCriteria{MinPrice: floatPtr(100)},
			want:     true,
		},
		{
			name:     "min price excludes cheaper listing",
			criteria: FilterCriteria{MinPrice: floatPtr(100.01)},
			want:     false,
		},
		{
			name:     "max price inclusive",
			criteria: FilterCriteria{MaxPrice: floatPtr(100)},
			want:     true,
		},
		{
			name:     "max price excludes pricier listing",
			criteria: FilterCriteria{MaxPrice: floatPtr(99.99)},
			want:     false,
		},
		{
			name:     "zero max price is an active bound",
			criteria: FilterCriteria{MaxPrice: floatPtr(0)},
			want:     false,
		},
		{
			name:     "room range",
			criteria: FilterCriteria{MinRooms: intPtr(2), MaxRooms: intPtr(4)},
			want:     true,
		},
		{
			name:     "min rooms excludes small listing",
			criteria: FilterCriteria{MinRooms: intPtr(3)},
			want:     false,
		},
		{
			name:     "min review score inclusive",
			criteria: FilterCriteria{MinReviewScore: floatPtr(4.5)},
			want:     true,
		},
		{
			name:     "min review score excludes lower rating",
			criteria: FilterCriteria{MinReviewScore: floatPtr(4.6)},
			want:     false,
		},
		{
			name: "all bounds must hold",
			criteria: FilterCriteria{
				MinPrice: floatPtr(50),
				MaxPrice: floatPtr(150),
				MinRooms: intPtr(1),
				MaxRooms: intPtr(1),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.criteria.Matches(listing))
		})
	}
}

func TestFilterCriteria_IsEmpty(t *testing.T) {
	assert.True(t, FilterCriteria{}.IsEmpty())
	assert.False(t, FilterCriteria{MinPrice: floatPtr(0)}.IsEmpty())
	assert.False(t, FilterCriteria{MaxRooms: intPtr(3)}.IsEmpty())
}

func TestListing_PricePerRoom(t *testing.T) {
	l := Listing{Price: 100, Accommodates: 4}
	assert.InDelta(t, 25.0, l.PricePerRoom(), 1e-9)
}

// Copyright (c) 2026 Critica. All rights reserved.

package title

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/critica-app/critica/pkg/pointer"
)

// driveScan returns a scan function feeding one fixed row, in the
// titleReadColumns order, into the caller's targets.
func driveScan(values ...any) func(...any) error {
	return func(targets ...any) error {
		if len(targets) != len(values) {
			return fmt.Errorf("scan arity mismatch: %d targets for %d values", len(targets), len(values))
		}
		for i, value := range values {
			switch target := targets[i].(type) {
			case *int64:
				*target = value.(int64)
			case *int:
				*target = value.(int)
			case *string:
				*target = value.(string)
			case **float64:
				*target = value.(*float64)
			case **string:
				*target = value.(*string)
			case *[]byte:
				*target = value.([]byte)
			default:
				return fmt.Errorf("unexpected scan target %T", target)
			}
		}
		return nil
	}
}

// titleRow builds the read-shape row: id, name, year, description, rating,
// category name, category slug, genres JSON.
func titleRow(rating *float64, categoryName, categorySlug *string, genresJSON string) []any {
	return []any{
		int64(1), "Solaris", 1972, "A space station drama.",
		rating, categoryName, categorySlug, []byte(genresJSON),
	}
}

/*
TestScanTitle_RatingRoundTrip verifies the hydration contract of the read
shape: a rated title carries the one-decimal average as a JSON number, an
unrated title serializes rating as null.
*/
func TestScanTitle_RatingRoundTrip(t *testing.T) {
	tests := []struct {
		name        string
		rating      *float64
		wantJSON    string
		wantAbsence bool
	}{
		{"averaged_and_rounded", pointer.To(7.3), `"rating":7.3`, false},
		{"integral_average", pointer.To(10.0), `"rating":10`, false},
		{"no_reviews_yet", nil, `"rating":null`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scan := driveScan(titleRow(tt.rating, pointer.To("Films"), pointer.To("films"), `[]`)...)

			title, err := scanTitle(scan, nil)
			require.NoError(t, err)

			if tt.wantAbsence {
				assert.Nil(t, title.Rating)
			} else {
				require.NotNil(t, title.Rating)
				assert.Equal(t, *tt.rating, *title.Rating)
			}

			serialized, err := json.Marshal(title)
			require.NoError(t, err)
			assert.Contains(t, string(serialized), tt.wantJSON)
		})
	}
}

/*
TestScanTitle_NestedShapes verifies category and genre hydration: a NULL
category join yields a nil Category, and the aggregated genre JSON unfolds
into the slice (empty array included).
*/
func TestScanTitle_NestedShapes(t *testing.T) {
	t.Run("uncategorized", func(t *testing.T) {
		scan := driveScan(titleRow(nil, nil, nil, `[]`)...)

		title, err := scanTitle(scan, nil)
		require.NoError(t, err)
		assert.Nil(t, title.Category)
		assert.Empty(t, title.Genres)
	})

	t.Run("with_category_and_genres", func(t *testing.T) {
		genres := `[{"name":"Drama","slug":"drama"},{"name":"Science Fiction","slug":"science-fiction"}]`
		scan := driveScan(titleRow(pointer.To(8.5), pointer.To("Films"), pointer.To("films"), genres)...)

		title, err := scanTitle(scan, nil)
		require.NoError(t, err)

		require.NotNil(t, title.Category)
		assert.Equal(t, "films", title.Category.Slug)

		require.Len(t, title.Genres, 2)
		assert.Equal(t, "drama", title.Genres[0].Slug)
		assert.Equal(t, "science-fiction", title.Genres[1].Slug)
	})

	t.Run("malformed_genre_payload", func(t *testing.T) {
		scan := driveScan(titleRow(nil, nil, nil, `{not json`)...)

		_, err := scanTitle(scan, nil)
		assert.Error(t, err)
	})
}

/*
TestScanTitle_WindowedCount verifies the list query's extra total-count
column lands in the provided counter.
*/
func TestScanTitle_WindowedCount(t *testing.T) {
	values := append(titleRow(nil, nil, nil, `[]`), 37)
	totalCount := 0

	_, err := scanTitle(driveScan(values...), &totalCount)
	require.NoError(t, err)
	assert.Equal(t, 37, totalCount)
}

package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-dashboard-api/internal/models"
)

// pagedFixture serves items in pages of size and counts fetches.
type pagedFixture struct {
	items   []string
	size    int
	fetches int
	failOn  int
}

func (p *pagedFixture) fetch(_ context.Context, token string) (models.Page[string], error) {
	p.fetches++
	if p.failOn > 0 && p.fetches == p.failOn {
		return models.Page[string]{}, errors.New("upstream down")
	}
	start := 0
	if token != "" {
		start, _ = strconv.Atoi(token)
	}
	end := start + p.size
	if end > len(p.items) {
		end = len(p.items)
	}
	page := models.Page[string]{Items: p.items[start:end]}
	if end < len(p.items) {
		page.NextPageToken = strconv.Itoa(end)
	}
	return page, nil
}

func TestListAllConcatenatesPages(t *testing.T) {
	fx := &pagedFixture{items: []string{"a", "b", "c", "d", "e"}, size: 2}
	items, err := ListAll[string](context.Background(), fx.fetch, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, items)
	assert.Equal(t, 3, fx.fetches)
}

func TestListAllStopsAtLimit(t *testing.T) {
	for limit := 1; limit <= 7; limit++ {
		fx := &pagedFixture{items: []string{"a", "b", "c", "d", "e"}, size: 2}
		items, err := ListAll[string](context.Background(), fx.fetch, limit)
		require.NoError(t, err)

		want := limit
		if want > 5 {
			want = 5
		}
		assert.Len(t, items, want)
		assert.Equal(t, fx.items[:want], items)
		// never more pages than needed to cover the limit
		assert.Equal(t, (want+1)/2, fx.fetches, "limit %d", limit)
	}
}

func TestListAllPropagatesFailure(t *testing.T) {
	fx := &pagedFixture{items: []string{"a", "b", "c"}, size: 1, failOn: 2}
	items, err := ListAll[string](context.Background(), fx.fetch, 0)
	assert.EqualError(t, err, "upstream down")
	assert.Nil(t, items)
}

func TestListAllEmpty(t *testing.T) {
	fx := &pagedFixture{size: 10}
	items, err := ListAll[string](context.Background(), fx.fetch, 0)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

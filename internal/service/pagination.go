package service

import (
	"context"

	"github.com/noah-isme/classroom-dashboard-api/internal/models"
)

// PageFetcher fetches one page of a provider listing. An empty token requests
// the first page.
type PageFetcher[T any] func(ctx context.Context, pageToken string) (models.Page[T], error)

// ListAll walks a paged listing in provider order. It stops when a page has no
// continuation token or, when limit > 0, as soon as limit items are collected;
// the result is then truncated to exactly limit. Fetch errors are returned as
// is and discard what was collected.
func ListAll[T any](ctx context.Context, fetch PageFetcher[T], limit int) ([]T, error) {
	var (
		items []T
		token string
	)
	for {
		page, err := fetch(ctx, token)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
		if limit > 0 && len(items) >= limit {
			return items[:limit], nil
		}
		if page.NextPageToken == "" {
			break
		}
		token = page.NextPageToken
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

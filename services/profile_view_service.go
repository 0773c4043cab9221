package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"wander_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/google/uuid"
)

// DefaultViewerDaysBack bounds the "who viewed me" window.
const DefaultViewerDaysBack = 30

// viewTimeLayout is fixed-width RFC3339 with nanoseconds so the sort key
// orders lexicographically. time.RFC3339Nano trims trailing zeros and
// would break that.
const viewTimeLayout = "2006-01-02T15:04:05.000000000Z"

// ProfileViewService records profile-view events and answers "who viewed
// me". Events are append-only: every visit is a new row, no dedup.
type ProfileViewService struct {
	Dynamo *DynamoService
	Users  *UserService
}

// RecordView inserts a view event. Visits to one's own profile are not
// events and are rejected.
func (ps *ProfileViewService) RecordView(ctx context.Context, viewerID, viewedID string) (*models.ProfileView, error) {
	if viewerID == viewedID {
		return nil, ErrSelfView
	}

	now := time.Now().UTC()
	view := models.ProfileView{
		ViewedID:  viewedID,
		ViewID:    uuid.NewString(),
		ViewerID:  viewerID,
		CreatedAt: now,
	}
	view.SortKey = viewSortKey(now, view.ViewID)

	if err := ps.Dynamo.PutItem(ctx, models.ProfileViewsTable, view); err != nil {
		log.Printf("RecordView: insert failed for viewer %s -> viewed %s: %v", viewerID, viewedID, err)
		return nil, err
	}
	return &view, nil
}

// ProfileViewers returns a page of viewers ordered most-recent-first, plus
// the total event count inside the window. Viewer identities are resolved
// with a single batched lookup over the distinct viewer-ID set, then view
// timestamps are re-associated by ID.
func (ps *ProfileViewService) ProfileViewers(ctx context.Context, userID string, limit, offset, daysBack int) (*models.ProfileViewersResponse, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	if daysBack <= 0 {
		daysBack = DefaultViewerDaysBack
	}

	events, err := ps.viewEventsSince(ctx, userID, time.Now().UTC().AddDate(0, 0, -daysBack))
	if err != nil {
		log.Printf("ProfileViewers: query failed for user %s: %v", userID, err)
		return nil, err
	}

	total := len(events)
	if offset >= total {
		return &models.ProfileViewersResponse{Users: []models.ProfileViewer{}, Total: total}, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	page := events[offset:end]

	viewerIDs := make([]string, 0, len(page))
	for _, event := range page {
		viewerIDs = append(viewerIDs, event.ViewerID)
	}
	viewers, err := ps.Users.GetUsersByIDs(ctx, viewerIDs)
	if err != nil {
		log.Printf("ProfileViewers: viewer lookup failed for user %s: %v", userID, err)
		return nil, err
	}

	users := make([]models.ProfileViewer, 0, len(page))
	for _, event := range page {
		viewer, ok := viewers[event.ViewerID]
		if !ok {
			continue // viewer account no longer exists
		}
		users = append(users, models.ProfileViewer{
			UserID:      viewer.UserID,
			DisplayName: viewer.DisplayName,
			PhotoURL:    viewer.PhotoURL,
			ViewedAt:    event.CreatedAt,
		})
	}

	return &models.ProfileViewersResponse{Users: users, Total: total}, nil
}

// DistinctViewerCount counts unique viewers over the whole partition,
// regardless of repeat views.
func (ps *ProfileViewService) DistinctViewerCount(ctx context.Context, userID string) (int, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("viewedId").Equal(expression.Value(userID))).
		Build()
	if err != nil {
		return 0, fmt.Errorf("failed to build view query: %w", err)
	}

	var events []models.ProfileView
	if err := ps.Dynamo.QueryWithExpression(ctx, models.ProfileViewsTable, "", expr, false, &events); err != nil {
		return 0, err
	}

	distinct := make(map[string]struct{}, len(events))
	for _, event := range events {
		distinct[event.ViewerID] = struct{}{}
	}
	return len(distinct), nil
}

// viewEventsSince queries one partition newest-first, bounded by the sort
// key so the recency window is part of the key condition, not a post-read
// filter.
func (ps *ProfileViewService) viewEventsSince(ctx context.Context, userID string, since time.Time) ([]models.ProfileView, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.KeyAnd(
			expression.Key("viewedId").Equal(expression.Value(userID)),
			expression.Key("sortKey").GreaterThanEqual(expression.Value(since.Format(viewTimeLayout))),
		)).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build view query: %w", err)
	}

	var events []models.ProfileView
	if err := ps.Dynamo.QueryWithExpression(ctx, models.ProfileViewsTable, "", expr, false, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func viewSortKey(t time.Time, viewID string) string {
	return t.UTC().Format(viewTimeLayout) + "#" + viewID
}

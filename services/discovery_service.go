package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"wander_server/models"
	"wander_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Proximity search defaults. The "recommended" feed reuses the nearby query
// with a wider radius and a 24-hour activity window.
const (
	DefaultRadiusKm            = 5
	DefaultPageSize            = 20
	DefaultActiveWithinMinutes = 30

	RecommendedRadiusKm            = 10
	RecommendedActiveWithinMinutes = 24 * 60
)

// NearbyParams carries the optional clauses of a proximity query. Zero
// values fall back to the defaults above.
type NearbyParams struct {
	Latitude            float64
	Longitude           float64
	RadiusKm            float64
	Limit               int
	Offset              int
	ActiveOnly          bool
	ActiveWithinMinutes int
}

// DiscoveryService answers "which users are near this one". Every query
// runs behind the relationship guard.
type DiscoveryService struct {
	Dynamo        *DynamoService
	Relationships *RelationshipService
	Users         *UserService
	Profiles      *UserProfileService
}

type nearbyCandidate struct {
	user       models.User
	distanceKm float64
}

// NearbyUsers returns users within params.RadiusKm of the given coordinate,
// ordered by ascending distance and annotated with distanceKm rounded to
// one decimal. Total counts every candidate matching the page's exact
// filter set, so offset+len(users) < total reliably means more pages.
func (ds *DiscoveryService) NearbyUsers(ctx context.Context, requesterID string, params NearbyParams) (*models.NearbyUsersResponse, error) {
	if !utils.ValidCoordinate(params.Latitude, params.Longitude) {
		return nil, ErrInvalidCoordinates
	}
	if params.RadiusKm <= 0 {
		params.RadiusKm = DefaultRadiusKm
	}
	if params.Limit <= 0 {
		params.Limit = DefaultPageSize
	}
	if params.Offset < 0 {
		params.Offset = 0
	}
	if params.ActiveWithinMinutes <= 0 {
		params.ActiveWithinMinutes = DefaultActiveWithinMinutes
	}

	// Guard first: never search with an incomplete exclusion set
	excluded, err := ds.Relationships.ExcludedUserIDs(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	candidates, err := ds.candidatesWithinRadius(ctx, params, excluded)
	if err != nil {
		log.Printf("NearbyUsers: query failed for user %s: %v", requesterID, err)
		return nil, err
	}

	if params.ActiveOnly {
		candidates, err = ds.filterByActivity(ctx, candidates, params.ActiveWithinMinutes)
		if err != nil {
			log.Printf("NearbyUsers: activity filter failed for user %s: %v", requesterID, err)
			return nil, err
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].distanceKm < candidates[j].distanceKm
	})

	total := len(candidates)
	page := paginate(candidates, params.Offset, params.Limit)

	users := make([]models.NearbyUser, 0, len(page))
	for _, c := range page {
		users = append(users, models.NearbyUser{
			UserID:      c.user.UserID,
			DisplayName: c.user.DisplayName,
			PhotoURL:    c.user.PhotoURL,
			DistanceKm:  utils.RoundDistanceKm(c.distanceKm),
		})
	}

	return &models.NearbyUsersResponse{Users: users, Total: total}, nil
}

// RecommendedUsers is the location-based feed: nearby users within 10 km of
// the requester's own stored coordinates, active in the last 24 hours.
// A requester who never shared a location gets ErrNoLocation, not an empty
// list.
func (ds *DiscoveryService) RecommendedUsers(ctx context.Context, requesterID string, limit, offset int) (*models.NearbyUsersResponse, error) {
	user, err := ds.Users.GetUser(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	coord, ok := user.Coordinate()
	if !ok {
		return nil, ErrNoLocation
	}

	return ds.NearbyUsers(ctx, requesterID, NearbyParams{
		Latitude:            coord.Latitude,
		Longitude:           coord.Longitude,
		RadiusKm:            RecommendedRadiusKm,
		Limit:               limit,
		Offset:              offset,
		ActiveOnly:          true,
		ActiveWithinMinutes: RecommendedActiveWithinMinutes,
	})
}

// candidatesWithinRadius scans for users with a stored location, drops
// everyone in the exclusion set, and keeps those within the radius. Rows
// with null coordinates never match (attribute_exists clauses).
func (ds *DiscoveryService) candidatesWithinRadius(ctx context.Context, params NearbyParams, excluded map[string]struct{}) ([]nearbyCandidate, error) {
	expr, err := expression.NewBuilder().
		WithFilter(expression.And(
			expression.AttributeExists(expression.Name("latitude")),
			expression.AttributeExists(expression.Name("longitude")),
		)).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build proximity filter: %w", err)
	}

	var users []models.User
	err = ds.Dynamo.ScanWithExpression(ctx, models.UsersTable, expr, func(item map[string]types.AttributeValue) bool {
		_, skip := excluded[utils.ExtractString(item, "userId")]
		return !skip
	}, &users)
	if err != nil {
		return nil, err
	}

	candidates := make([]nearbyCandidate, 0, len(users))
	for _, user := range users {
		coord, ok := user.Coordinate()
		if !ok {
			continue
		}
		distance := utils.CalculateDistance(params.Latitude, params.Longitude, coord.Latitude, coord.Longitude)
		if distance > params.RadiusKm {
			continue
		}
		candidates = append(candidates, nearbyCandidate{user: user, distanceKm: distance})
	}
	return candidates, nil
}

// filterByActivity keeps candidates whose profile was active within the
// window. Missing profiles and null lastActiveAt both drop.
func (ds *DiscoveryService) filterByActivity(ctx context.Context, candidates []nearbyCandidate, withinMinutes int) ([]nearbyCandidate, error) {
	if len(candidates) == 0 {
		return candidates, nil
	}

	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.user.UserID)
	}
	profiles, err := ds.Profiles.GetProfilesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-time.Duration(withinMinutes) * time.Minute)
	active := make([]nearbyCandidate, 0, len(candidates))
	for _, c := range candidates {
		profile, ok := profiles[c.user.UserID]
		if !ok || profile.LastActiveAt == nil {
			continue
		}
		if profile.LastActiveAt.Before(cutoff) {
			continue
		}
		active = append(active, c)
	}
	return active, nil
}

func paginate(candidates []nearbyCandidate, offset, limit int) []nearbyCandidate {
	if offset >= len(candidates) {
		return nil
	}
	end := offset + limit
	if end > len(candidates) {
		end = len(candidates)
	}
	return candidates[offset:end]
}

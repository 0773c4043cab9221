package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"wander_server/models"
	"wander_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	// FetchLimit caps the candidate pool read from the store.
	FetchLimit = 100

	// RecommendationLimit caps the homepage feed.
	RecommendationLimit = 20

	// DefaultPreferredRatio is the preferred/fill proportion of the feed.
	// Business policy, not a derived constant.
	DefaultPreferredRatio = 0.75
)

// RecommendationService builds the preference-ranked homepage feed:
// most-recently-active candidates filtered by the requester's age range,
// partitioned by gender preference, and assembled preferred-first.
type RecommendationService struct {
	Dynamo        *DynamoService
	Relationships *RelationshipService
	Users         *UserService
	Profiles      *UserProfileService

	// PreferredRatio overrides DefaultPreferredRatio when > 0.
	PreferredRatio float64
}

// HomepageRecommendations returns up to RecommendationLimit candidates for
// the requester. A requester without a profile record is a not-found fault
// before any candidate work happens.
func (rs *RecommendationService) HomepageRecommendations(ctx context.Context, userID string) ([]models.HomepageRecommendation, error) {
	requester, err := rs.Profiles.GetUserProfile(ctx, userID)
	if err != nil {
		log.Printf("HomepageRecommendations: profile fetch failed for user %s: %v", userID, err)
		return nil, err
	}
	if requester == nil {
		return nil, ErrProfileNotFound
	}

	excluded, err := rs.Relationships.ExcludedUserIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	pool, err := rs.fetchCandidatePool(ctx, excluded)
	if err != nil {
		log.Printf("HomepageRecommendations: candidate fetch failed for user %s: %v", userID, err)
		return nil, err
	}

	now := time.Now()
	pool = filterByAge(pool, requester.MinAgePreference, requester.MaxAgePreference, now)

	var ranked []models.UserProfile
	if requester.GenderPreference == "" {
		// No stated preference: the age-filtered pool stands as-is,
		// still ordered by recent activity
		if len(pool) > RecommendationLimit {
			pool = pool[:RecommendationLimit]
		}
		ranked = pool
	} else {
		preferred, fill := partitionByPreference(pool, requester.GenderPreference)
		ranked = assembleRanked(preferred, fill, RecommendationLimit, rs.preferredRatio())
	}

	return rs.toRecommendations(ctx, ranked, now)
}

// fetchCandidatePool returns up to FetchLimit profiles with a known
// lastActiveAt, most recently active first. That ordering is the baseline
// tie-break for every downstream step.
func (rs *RecommendationService) fetchCandidatePool(ctx context.Context, excluded map[string]struct{}) ([]models.UserProfile, error) {
	expr, err := expression.NewBuilder().
		WithFilter(expression.AttributeExists(expression.Name("lastActiveAt"))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build candidate filter: %w", err)
	}

	var profiles []models.UserProfile
	err = rs.Dynamo.ScanWithExpression(ctx, models.UserProfilesTable, expr, func(item map[string]types.AttributeValue) bool {
		_, skip := excluded[utils.ExtractString(item, "userId")]
		return !skip
	}, &profiles)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(profiles, func(i, j int) bool {
		a, b := profiles[i].LastActiveAt, profiles[j].LastActiveAt
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		return a.After(*b)
	})

	if len(profiles) > FetchLimit {
		profiles = profiles[:FetchLimit]
	}
	return profiles, nil
}

// toRecommendations resolves display fields with one batched identity
// lookup and recomputes each age from birthDate.
func (rs *RecommendationService) toRecommendations(ctx context.Context, ranked []models.UserProfile, now time.Time) ([]models.HomepageRecommendation, error) {
	ids := make([]string, 0, len(ranked))
	for _, profile := range ranked {
		ids = append(ids, profile.UserID)
	}
	users, err := rs.Users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	recommendations := make([]models.HomepageRecommendation, 0, len(ranked))
	for _, profile := range ranked {
		user, ok := users[profile.UserID]
		if !ok {
			continue // identity record no longer exists
		}
		rec := models.HomepageRecommendation{
			ID:          profile.UserID,
			DisplayName: user.DisplayName,
			PhotoURL:    user.PhotoURL,
		}
		if age, ok := utils.AgeFromBirthDate(profile.BirthDate, now); ok {
			rec.Age = age
		}
		recommendations = append(recommendations, rec)
	}
	return recommendations, nil
}

func (rs *RecommendationService) preferredRatio() float64 {
	if rs.PreferredRatio > 0 {
		return rs.PreferredRatio
	}
	return DefaultPreferredRatio
}

// filterByAge keeps candidates whose whole-year age fits the requester's
// preferred range. Candidates without a birth date are unrankable and drop
// unconditionally; a nil preference imposes no bound on that side.
func filterByAge(pool []models.UserProfile, minPref, maxPref *int, now time.Time) []models.UserProfile {
	filtered := make([]models.UserProfile, 0, len(pool))
	for _, candidate := range pool {
		age, ok := utils.AgeFromBirthDate(candidate.BirthDate, now)
		if !ok {
			continue
		}
		if minPref != nil && age < *minPref {
			continue
		}
		if maxPref != nil && age > *maxPref {
			continue
		}
		filtered = append(filtered, candidate)
	}
	return filtered
}

// partitionByPreference splits the pool into the preferred group (gender
// matches the stated preference) and the fill group ("other" always fills;
// the opposite binary gender fills only for a male/female preference).
// Candidates with no gender drop; relative order is preserved.
func partitionByPreference(pool []models.UserProfile, preference string) (preferred, fill []models.UserProfile) {
	for _, candidate := range pool {
		if candidate.Gender == "" {
			continue
		}
		if matchesPreference(candidate.Gender, preference) {
			preferred = append(preferred, candidate)
			continue
		}
		if candidate.Gender == models.GenderOther ||
			preference == models.PreferenceMale || preference == models.PreferenceFemale {
			fill = append(fill, candidate)
		}
	}
	return preferred, fill
}

func matchesPreference(gender, preference string) bool {
	switch preference {
	case models.PreferenceMale:
		return gender == models.GenderMale
	case models.PreferenceFemale:
		return gender == models.GenderFemale
	case models.PreferenceBoth:
		return gender == models.GenderMale || gender == models.GenderFemale
	}
	return false
}

// assembleRanked takes ceil(limit*ratio) preferred candidates, backfills
// the remainder from the fill group, and truncates to limit. When the pool
// is smaller than the target the whole pool comes back, preferred first.
func assembleRanked(preferred, fill []models.UserProfile, limit int, ratio float64) []models.UserProfile {
	target := int(math.Ceil(float64(limit) * ratio))
	if target > len(preferred) {
		target = len(preferred)
	}

	result := make([]models.UserProfile, 0, limit)
	result = append(result, preferred[:target]...)

	needed := limit - len(result)
	if needed > len(fill) {
		needed = len(fill)
	}
	if needed > 0 {
		result = append(result, fill[:needed]...)
	}

	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

package services

import (
	"context"
	"fmt"

	"wander_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// UserProfileService reads demographic/preference profiles. Profile
// mutation belongs to the profile-update flows, not the engine.
type UserProfileService struct {
	Dynamo *DynamoService
}

// GetUserProfile retrieves a user profile by ID. Returns (nil, nil) when
// the user has no profile record.
func (ups *UserProfileService) GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	item, err := ups.Dynamo.GetItem(ctx, models.UserProfilesTable, key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

// GetProfilesByIDs resolves a set of profiles in one batched lookup, keyed
// by user ID. Users without a profile are absent from the result.
func (ups *UserProfileService) GetProfilesByIDs(ctx context.Context, userIDs []string) (map[string]models.UserProfile, error) {
	if len(userIDs) == 0 {
		return map[string]models.UserProfile{}, nil
	}

	keys := make([]map[string]types.AttributeValue, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, map[string]types.AttributeValue{
			"userId": &types.AttributeValueMemberS{Value: id},
		})
	}

	var profiles []models.UserProfile
	if err := ups.Dynamo.BatchGetItems(ctx, models.UserProfilesTable, keys, &profiles); err != nil {
		return nil, err
	}

	byID := make(map[string]models.UserProfile, len(profiles))
	for _, profile := range profiles {
		byID[profile.UserID] = profile
	}
	return byID, nil
}

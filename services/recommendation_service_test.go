package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"wander_server/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecommendationService(client *fakeDynamoClient) *RecommendationService {
	dynamo := &DynamoService{Client: client}
	return &RecommendationService{
		Dynamo:        dynamo,
		Relationships: &RelationshipService{Dynamo: dynamo},
		Users:         &UserService{Dynamo: dynamo},
		Profiles:      &UserProfileService{Dynamo: dynamo},
	}
}

// candidate builds an active profile plus its identity record for the fake.
func candidate(id, gender, birthDate string, lastActive time.Time) (models.UserProfile, models.User) {
	profile := models.UserProfile{
		UserID:       id,
		Gender:       gender,
		BirthDate:    birthDate,
		LastActiveAt: timePtr(lastActive),
	}
	user := models.User{UserID: id, DisplayName: "User " + id, PhotoURL: "https://cdn.example.com/" + id + ".jpg"}
	return profile, user
}

func TestHomepageRecommendations(t *testing.T) {
	now := time.Now()

	t.Run("requester without profile is not found before any candidate work", func(t *testing.T) {
		client := &fakeDynamoClient{
			getItemFn: func(input *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
				return &dynamodb.GetItemOutput{}, nil
			},
		}
		service := newRecommendationService(client)

		_, err := service.HomepageRecommendations(context.Background(), "ghost")
		assert.ErrorIs(t, err, ErrProfileNotFound)
		assert.Zero(t, client.scanCalls)
	})

	t.Run("preferred group leads, fill follows, activity order preserved", func(t *testing.T) {
		male1Profile, male1User := candidate("male1", models.GenderMale, "1995-05-01", now.Add(-1*time.Hour))
		male2Profile, male2User := candidate("male2", models.GenderMale, "1993-02-01", now.Add(-2*time.Hour))
		femaleProfile, femaleUser := candidate("female1", models.GenderFemale, "1996-09-01", now.Add(-3*time.Hour))

		client := &fakeDynamoClient{
			getItemFn: func(input *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
				require.Equal(t, models.UserProfilesTable, *input.TableName)
				return &dynamodb.GetItemOutput{Item: mustMarshalItem(t, models.UserProfile{
					UserID:           "me",
					GenderPreference: models.PreferenceMale,
				})}, nil
			},
			queryFn: noBlocksQueryFn,
			scanFn: func(input *dynamodb.ScanInput) (*dynamodb.ScanOutput, error) {
				// Deliberately unsorted; the service orders by lastActiveAt
				return &dynamodb.ScanOutput{Items: mustMarshalItems(t, femaleProfile, male2Profile, male1Profile)}, nil
			},
			batchGetFn: func(input *dynamodb.BatchGetItemInput) (*dynamodb.BatchGetItemOutput, error) {
				return batchResponse(models.UsersTable, mustMarshalItems(t, male1User, male2User, femaleUser)), nil
			},
		}
		service := newRecommendationService(client)

		recommendations, err := service.HomepageRecommendations(context.Background(), "me")
		require.NoError(t, err)

		require.Len(t, recommendations, 3)
		assert.Equal(t, "male1", recommendations[0].ID)
		assert.Equal(t, "male2", recommendations[1].ID)
		assert.Equal(t, "female1", recommendations[2].ID)
		assert.Equal(t, "User male1", recommendations[0].DisplayName)
		assert.NotZero(t, recommendations[0].Age)
	})

	t.Run("no stated preference returns the pool in activity order", func(t *testing.T) {
		aProfile, aUser := candidate("recent", models.GenderFemale, "1994-01-01", now.Add(-10*time.Minute))
		bProfile, bUser := candidate("older", models.GenderMale, "1990-01-01", now.Add(-5*time.Hour))
		cProfile, cUser := candidate("oldest", models.GenderOther, "1998-01-01", now.Add(-20*time.Hour))

		client := &fakeDynamoClient{
			getItemFn: func(input *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
				return &dynamodb.GetItemOutput{Item: mustMarshalItem(t, models.UserProfile{UserID: "me"})}, nil
			},
			queryFn: noBlocksQueryFn,
			scanFn: func(input *dynamodb.ScanInput) (*dynamodb.ScanOutput, error) {
				return &dynamodb.ScanOutput{Items: mustMarshalItems(t, cProfile, aProfile, bProfile)}, nil
			},
			batchGetFn: func(input *dynamodb.BatchGetItemInput) (*dynamodb.BatchGetItemOutput, error) {
				return batchResponse(models.UsersTable, mustMarshalItems(t, aUser, bUser, cUser)), nil
			},
		}
		service := newRecommendationService(client)

		recommendations, err := service.HomepageRecommendations(context.Background(), "me")
		require.NoError(t, err)

		require.Len(t, recommendations, 3)
		assert.Equal(t, "recent", recommendations[0].ID)
		assert.Equal(t, "older", recommendations[1].ID)
		assert.Equal(t, "oldest", recommendations[2].ID)
	})

	t.Run("age preferences bound the pool", func(t *testing.T) {
		youngProfile, youngUser := candidate("young", models.GenderFemale, "2004-01-01", now.Add(-1*time.Hour))
		fitProfile, fitUser := candidate("fit", models.GenderFemale, "1992-01-01", now.Add(-2*time.Hour))
		oldProfile, oldUser := candidate("old", models.GenderFemale, "1980-01-01", now.Add(-3*time.Hour))
		noBirthProfile := models.UserProfile{UserID: "no-birth", Gender: models.GenderFemale, LastActiveAt: timePtr(now)}

		client := &fakeDynamoClient{
			getItemFn: func(input *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
				return &dynamodb.GetItemOutput{Item: mustMarshalItem(t, models.UserProfile{
					UserID:           "me",
					GenderPreference: models.PreferenceFemale,
					MinAgePreference: intPtr(30),
					MaxAgePreference: intPtr(40),
				})}, nil
			},
			queryFn: noBlocksQueryFn,
			scanFn: func(input *dynamodb.ScanInput) (*dynamodb.ScanOutput, error) {
				return &dynamodb.ScanOutput{Items: mustMarshalItems(t, youngProfile, fitProfile, oldProfile, noBirthProfile)}, nil
			},
			batchGetFn: func(input *dynamodb.BatchGetItemInput) (*dynamodb.BatchGetItemOutput, error) {
				return batchResponse(models.UsersTable, mustMarshalItems(t, youngUser, fitUser, oldUser)), nil
			},
		}
		service := newRecommendationService(client)

		recommendations, err := service.HomepageRecommendations(context.Background(), "me")
		require.NoError(t, err)

		require.Len(t, recommendations, 1)
		assert.Equal(t, "fit", recommendations[0].ID)
	})

	t.Run("blocked candidates never reach the pool", func(t *testing.T) {
		blockedProfile, _ := candidate("blocked-user", models.GenderFemale, "1994-01-01", now)
		okProfile, okUser := candidate("visible", models.GenderFemale, "1995-01-01", now.Add(-time.Hour))

		client := &fakeDynamoClient{
			getItemFn: func(input *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
				return &dynamodb.GetItemOutput{Item: mustMarshalItem(t, models.UserProfile{UserID: "me"})}, nil
			},
			queryFn: func(input *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
				if input.IndexName == nil {
					return &dynamodb.QueryOutput{Items: mustMarshalItems(t,
						models.UserRelationship{RequesterID: "me", RecipientID: "blocked-user", Type: models.RelationshipTypeBlocked},
					)}, nil
				}
				return &dynamodb.QueryOutput{}, nil
			},
			scanFn: func(input *dynamodb.ScanInput) (*dynamodb.ScanOutput, error) {
				return &dynamodb.ScanOutput{Items: mustMarshalItems(t, blockedProfile, okProfile)}, nil
			},
			batchGetFn: func(input *dynamodb.BatchGetItemInput) (*dynamodb.BatchGetItemOutput, error) {
				// Only the surviving candidate should be resolved
				require.Len(t, input.RequestItems[models.UsersTable].Keys, 1)
				return batchResponse(models.UsersTable, mustMarshalItems(t, okUser)), nil
			},
		}
		service := newRecommendationService(client)

		recommendations, err := service.HomepageRecommendations(context.Background(), "me")
		require.NoError(t, err)

		require.Len(t, recommendations, 1)
		assert.Equal(t, "visible", recommendations[0].ID)
	})

	t.Run("candidate store fault surfaces as an error", func(t *testing.T) {
		client := &fakeDynamoClient{
			getItemFn: func(input *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
				return &dynamodb.GetItemOutput{Item: mustMarshalItem(t, models.UserProfile{UserID: "me"})}, nil
			},
			queryFn: noBlocksQueryFn,
			scanFn: func(input *dynamodb.ScanInput) (*dynamodb.ScanOutput, error) {
				return nil, errors.New("scan throttled")
			},
		}
		service := newRecommendationService(client)

		recommendations, err := service.HomepageRecommendations(context.Background(), "me")
		assert.Error(t, err)
		assert.Nil(t, recommendations)
	})
}

package services

import (
	"context"
	"fmt"

	"wander_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// UserService reads identity records. The identity collaborator owns them;
// the engine never writes to this table.
type UserService struct {
	Dynamo *DynamoService
}

// GetUser retrieves an identity record by ID. Returns (nil, nil) when no
// such user exists.
func (us *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	item, err := us.Dynamo.GetItem(ctx, models.UsersTable, key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(item, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}

// GetUsersByIDs resolves a set of user IDs in one batched lookup, keyed by
// ID. IDs with no matching record are simply absent from the result.
func (us *UserService) GetUsersByIDs(ctx context.Context, userIDs []string) (map[string]models.User, error) {
	if len(userIDs) == 0 {
		return map[string]models.User{}, nil
	}

	seen := make(map[string]struct{}, len(userIDs))
	keys := make([]map[string]types.AttributeValue, 0, len(userIDs))
	for _, id := range userIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		keys = append(keys, map[string]types.AttributeValue{
			"userId": &types.AttributeValueMemberS{Value: id},
		})
	}

	var users []models.User
	if err := us.Dynamo.BatchGetItems(ctx, models.UsersTable, keys, &users); err != nil {
		return nil, err
	}

	byID := make(map[string]models.User, len(users))
	for _, user := range users {
		byID[user.UserID] = user
	}
	return byID, nil
}

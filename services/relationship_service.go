package services

import (
	"context"
	"fmt"

	"wander_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
)

// RelationshipService resolves the relationship guard: the set of user IDs
// that must never appear in a requester's discovery results.
type RelationshipService struct {
	Dynamo *DynamoService
}

// ExcludedUserIDs returns the requester's own ID plus every counterpart of
// a blocked relationship, whichever side initiated it. Any store error is
// fatal for the request: discovery must never run with an incomplete
// exclusion set.
func (rs *RelationshipService) ExcludedUserIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	excluded := map[string]struct{}{userID: {}}

	outbound, err := rs.blockedRelationships(ctx, "requesterId", userID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to resolve outbound blocks for user %s: %w", userID, err)
	}
	for _, rel := range outbound {
		excluded[rel.RecipientID] = struct{}{}
	}

	inbound, err := rs.blockedRelationships(ctx, "recipientId", userID, models.RecipientIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve inbound blocks for user %s: %w", userID, err)
	}
	for _, rel := range inbound {
		excluded[rel.RequesterID] = struct{}{}
	}

	return excluded, nil
}

// IsBlocked reports whether either direction of a blocked relationship
// exists between two users.
func (rs *RelationshipService) IsBlocked(ctx context.Context, userID, otherID string) (bool, error) {
	excluded, err := rs.ExcludedUserIDs(ctx, userID)
	if err != nil {
		return false, err
	}
	_, blocked := excluded[otherID]
	return blocked, nil
}

func (rs *RelationshipService) blockedRelationships(ctx context.Context, keyName, userID, indexName string) ([]models.UserRelationship, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key(keyName).Equal(expression.Value(userID))).
		WithFilter(expression.Name("type").Equal(expression.Value(models.RelationshipTypeBlocked))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build relationship query: %w", err)
	}

	var relationships []models.UserRelationship
	if err := rs.Dynamo.QueryWithExpression(ctx, models.UserRelationshipsTable, indexName, expr, true, &relationships); err != nil {
		return nil, err
	}
	return relationships, nil
}

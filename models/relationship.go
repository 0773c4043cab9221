package models

import "time"

// UserRelationship is a directed pair (requester -> recipient). A single
// row per unordered pair is authoritative; a "blocked" row hides both users
// from each other regardless of which side created it.
type UserRelationship struct {
	RequesterID string     `dynamodbav:"requesterId" json:"requesterId"` // Partition key
	RecipientID string     `dynamodbav:"recipientId" json:"recipientId"` // Sort key, indexed via GSI
	Type        string     `dynamodbav:"type" json:"type"`
	CreatedAt   *time.Time `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// UserRelationshipsTable is the DynamoDB table name for relationships
const UserRelationshipsTable = "UserRelationships"

// RecipientIndex is the GSI keyed on recipientId, used for the inbound
// direction of blocked-relationship lookups
const RecipientIndex = "recipientId-index"

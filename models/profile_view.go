package models

import "time"

// ProfileView is an append-only event recorded on every profile visit by a
// different user. Never updated or deleted by the engine.
type ProfileView struct {
	ViewedID   string    `dynamodbav:"viewedId" json:"viewedId"` // Partition key
	SortKey    string    `dynamodbav:"sortKey" json:"-"`         // createdAt#viewId, keeps the partition recency-ordered
	ViewID     string    `dynamodbav:"viewId" json:"viewId"`
	ViewerID   string    `dynamodbav:"viewerId" json:"viewerId"`
	Anonymous  bool      `dynamodbav:"anonymous" json:"anonymous"`
	IsNotified bool      `dynamodbav:"isNotified" json:"isNotified"`
	CreatedAt  time.Time `dynamodbav:"createdAt" json:"createdAt"`
}

// ProfileViewsTable is the DynamoDB table name for profile view events
const ProfileViewsTable = "ProfileViews"

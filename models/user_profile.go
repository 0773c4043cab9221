package models

import "time"

// UserProfile holds the demographic and preference attributes used by the
// discovery pipeline. One-to-one with User; mutated by the profile-update
// flows, read-only here.
type UserProfile struct {
	UserID           string     `dynamodbav:"userId" json:"userId"`
	Gender           string     `dynamodbav:"gender,omitempty" json:"gender,omitempty"`
	GenderPreference string     `dynamodbav:"genderPreference,omitempty" json:"genderPreference,omitempty"`
	MinAgePreference *int       `dynamodbav:"minAgePreference,omitempty" json:"minAgePreference,omitempty"`
	MaxAgePreference *int       `dynamodbav:"maxAgePreference,omitempty" json:"maxAgePreference,omitempty"`
	BirthDate        string     `dynamodbav:"birthDate,omitempty" json:"birthDate,omitempty"` // YYYY-MM-DD
	LastActiveAt     *time.Time `dynamodbav:"lastActiveAt,omitempty" json:"lastActiveAt,omitempty"`
	IsPublic         bool       `dynamodbav:"isPublic" json:"isPublic"`
}

// UserProfilesTable is the DynamoDB table name for user profiles
const UserProfilesTable = "UserProfiles"

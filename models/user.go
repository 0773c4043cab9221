package models

import "time"

// User is the identity record owned by the auth/identity collaborator.
// The discovery engine only reads it; latitude/longitude stay nil until
// the user shares a location.
type User struct {
	UserID      string     `dynamodbav:"userId" json:"userId"`
	DisplayName string     `dynamodbav:"displayName,omitempty" json:"displayName,omitempty"`
	PhotoURL    string     `dynamodbav:"photoURL,omitempty" json:"photoURL,omitempty"`
	Latitude    *float64   `dynamodbav:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude   *float64   `dynamodbav:"longitude,omitempty" json:"longitude,omitempty"`
	CreatedAt   *time.Time `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// Coordinate is a latitude/longitude pair in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Coordinate returns the user's last known location. The second return
// value is false when the user has never shared a location.
func (u *User) Coordinate() (Coordinate, bool) {
	if u.Latitude == nil || u.Longitude == nil {
		return Coordinate{}, false
	}
	return Coordinate{Latitude: *u.Latitude, Longitude: *u.Longitude}, true
}

// SetCoordinate stores a location on the user record.
func (u *User) SetCoordinate(c Coordinate) {
	lat, lon := c.Latitude, c.Longitude
	u.Latitude = &lat
	u.Longitude = &lon
}

// UsersTable is the DynamoDB table name for identity records
const UsersTable = "Users"

package models

import "time"

// NearbyUser is a discovery result annotated with the geodesic distance to
// the requester, rounded to one decimal place.
type NearbyUser struct {
	UserID      string  `json:"userId"`
	DisplayName string  `json:"displayName,omitempty"`
	PhotoURL    string  `json:"photoURL,omitempty"`
	DistanceKm  float64 `json:"distanceKm"`
}

// NearbyUsersResponse is the paginated payload for nearby/recommended
// discovery. Total counts every candidate matching the page's filters.
type NearbyUsersResponse struct {
	Users []NearbyUser `json:"users"`
	Total int          `json:"total"`
}

// ProfileViewer is a "who viewed me" entry.
type ProfileViewer struct {
	UserID      string    `json:"userId"`
	DisplayName string    `json:"displayName,omitempty"`
	PhotoURL    string    `json:"photoURL,omitempty"`
	ViewedAt    time.Time `json:"viewedAt"`
}

// ProfileViewersResponse is the paginated "who viewed me" payload.
type ProfileViewersResponse struct {
	Users []ProfileViewer `json:"users"`
	Total int             `json:"total"`
}

// HomepageRecommendation is the preference-ranked recommendation shape.
// Age is recomputed from birthDate at response time, never cached.
type HomepageRecommendation struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL,omitempty"`
	Age         int    `json:"age,omitempty"`
}

package models

// Gender values. "other" is the permanent catch-all bucket; a deprecated
// "prefer not to say" value is no longer issued and must not come back.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Gender preference values
const (
	PreferenceMale   = "male"
	PreferenceFemale = "female"
	PreferenceBoth   = "both"
)

// Relationship types
const (
	RelationshipTypePending  = "pending"
	RelationshipTypeAccepted = "accepted"
	RelationshipTypeBlocked  = "blocked"
)

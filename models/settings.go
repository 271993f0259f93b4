package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Setting is a single named flag in the settings collection. The only one
// the tracker uses today is "location_restriction".
type Setting struct {
	ID    primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name  string             `json:"setting" bson:"setting"`
	Value bool               `json:"value" bson:"value"`
}

const LocationRestrictionSetting = "location_restriction"

type LocationPolicyPayload struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

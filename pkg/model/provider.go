package model

import "time"

// Provider is one upstream inventory source the confirmation client can
// talk to, keyed by the code carried on travel options.
type Provider struct {
	Code      string       `json:"code" bson:"_id" validate:"required,min=2,max=40"`
	Name      string       `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Modes     []TravelMode `json:"modes" bson:"modes" validate:"required,min=1,dive,oneof=flight train bus cab mixed"`
	BaseURL   string       `json:"base_url" bson:"base_url" validate:"required,url"`
	Active    bool         `json:"active" bson:"active"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" bson:"updated_at"`
}

package model

import "time"

type GiftCard struct {
	Code      string    `json:"code" bson:"_id"`
	Balance   int64     `json:"balance" bson:"balance"`
	Active    bool      `json:"active" bson:"active"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Usable reports whether the card can still be redeemed against.
func (g *GiftCard) Usable(now time.Time) bool {
	return g.Active && g.Balance > 0 && now.Before(g.ExpiresAt)
}

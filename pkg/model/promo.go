package model

type PromoKind string

const (
	PromoPercent PromoKind = "percent"
	PromoFlat    PromoKind = "flat"
)

// PromoRule is a discount rule keyed by code. Percent rules discount
// Percent of the subtotal capped at MaxDiscount; flat rules discount
// Amount. Both require the subtotal to reach MinSubtotal.
type PromoRule struct {
	Code        string    `json:"code" bson:"_id"`
	Kind        PromoKind `json:"kind" bson:"kind"`
	Percent     int       `json:"percent,omitempty" bson:"percent,omitempty"`
	Amount      int64     `json:"amount,omitempty" bson:"amount,omitempty"`
	MaxDiscount int64     `json:"max_discount,omitempty" bson:"max_discount,omitempty"`
	MinSubtotal int64     `json:"min_subtotal" bson:"min_subtotal"`
	Active      bool      `json:"active" bson:"active"`
}

// DiscountFor computes the discount the rule yields for subtotal, assuming
// the minimum subtotal requirement already passed.
func (p *PromoRule) DiscountFor(subtotal int64) int64 {
	switch p.Kind {
	case PromoPercent:
		d := subtotal * int64(p.Percent) / 100
		if p.MaxDiscount > 0 && d > p.MaxDiscount {
			return p.MaxDiscount
		}
		return d
	case PromoFlat:
		return p.Amount
	}
	return 0
}

package testutil

import (
	"time"

	"tripdesk/pkg/model"
)

// CheckoutBuilder assembles a start-checkout request body.
type CheckoutBuilder struct {
	option        model.TravelOption
	passengers    []model.Passenger
	billingMode   model.BillingMode
	paymentMethod model.PaymentMethod
}

func NewCheckoutBuilder() *CheckoutBuilder {
	return &CheckoutBuilder{
		option: model.TravelOption{
			Mode:          model.ModeFlight,
			ProviderCode:  "airgo",
			RouteLabel:    "DEL-BOM",
			DepartureTime: time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second),
			BaseFare:      4500,
		},
		passengers: []model.Passenger{
			{Name: "Asha Rao", Age: 34, Email: "asha@example.com", Phone: "+919876543210"},
		},
		billingMode:   model.BillingPersonal,
		paymentMethod: model.MethodUPI,
	}
}

func (b *CheckoutBuilder) WithMode(mode model.TravelMode) *CheckoutBuilder {
	b.option.Mode = mode
	return b
}

func (b *CheckoutBuilder) WithBaseFare(fare int64) *CheckoutBuilder {
	b.option.BaseFare = fare
	return b
}

func (b *CheckoutBuilder) WithDeparture(departure time.Time) *CheckoutBuilder {
	b.option.DepartureTime = departure
	return b
}

func (b *CheckoutBuilder) WithBillingMode(mode model.BillingMode) *CheckoutBuilder {
	b.billingMode = mode
	return b
}

func (b *CheckoutBuilder) WithPaymentMethod(method model.PaymentMethod) *CheckoutBuilder {
	b.paymentMethod = method
	return b
}

func (b *CheckoutBuilder) WithPassengers(passengers ...model.Passenger) *CheckoutBuilder {
	b.passengers = passengers
	return b
}

func (b *CheckoutBuilder) Build() map[string]interface{} {
	return map[string]interface{}{
		"option":         b.option,
		"passengers":     b.passengers,
		"billing_mode":   b.billingMode,
		"payment_method": b.paymentMethod,
	}
}

func PercentPromo(code string, percent int, maxDiscount, minSubtotal int64) model.PromoRule {
	return model.PromoRule{
		Code:        code,
		Kind:        model.PromoPercent,
		Percent:     percent,
		MaxDiscount: maxDiscount,
		MinSubtotal: minSubtotal,
		Active:      true,
	}
}

func FlatPromo(code string, amount, minSubtotal int64) model.PromoRule {
	return model.PromoRule{
		Code:        code,
		Kind:        model.PromoFlat,
		Amount:      amount,
		MinSubtotal: minSubtotal,
		Active:      true,
	}
}

func ActiveGiftCard(code string, balance int64) model.GiftCard {
	return model.GiftCard{
		Code:      code,
		Balance:   balance,
		Active:    true,
		ExpiresAt: time.Now().Add(365 * 24 * time.Hour).UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func ActiveProvider(code string, modes ...model.TravelMode) model.Provider {
	if len(modes) == 0 {
		modes = []model.TravelMode{model.ModeFlight}
	}
	return model.Provider{
		Code:      code,
		Name:      "Test Provider " + code,
		Modes:     modes,
		BaseURL:   "http://localhost:9400",
		Active:    true,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func WalletWithBalance(userID string, balance int64) model.Wallet {
	return model.Wallet{
		UserID:    userID,
		Balance:   balance,
		UpdatedAt: time.Now().UTC(),
	}
}

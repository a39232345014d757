package service

import (
	"fmt"

	apperrors "tripdesk/pkg/errors"
	"tripdesk/pkg/model"
)

// Meal catalog. Codes map to flat per-booking prices in whole INR.
var mealPrices = map[string]int64{
	"standard": 150,
	"jain":     200,
	"premium":  350,
}

// fareFor assembles the fare breakdown from the session. The arithmetic
// order is fixed: discount comes off the subtotal floored at zero, the
// method fee is added, then the gift card comes off floored at zero again.
func (s *checkoutService) fareFor(session *model.CheckoutSession) model.FareBreakdown {
	fare := model.FareBreakdown{
		BaseFare:           session.Option.BaseFare,
		SeatCost:           session.SeatCost,
		MealCost:           session.MealCost,
		SpecialRequestCost: session.SpecialRequestCost,
	}

	subtotal := fare.Subtotal()

	if session.Promo != nil {
		fare.Discount = session.Promo.Discount
	}
	afterDiscount := subtotal - fare.Discount
	if afterDiscount < 0 {
		afterDiscount = 0
	}

	fare.MethodFee = s.methodFee(session.PaymentMethod)
	payableBeforeGiftCard := afterDiscount + fare.MethodFee

	if session.GiftCard != nil {
		fare.GiftCardAmount = session.GiftCard.Amount
		if fare.GiftCardAmount > payableBeforeGiftCard {
			fare.GiftCardAmount = payableBeforeGiftCard
		}
	}

	fare.Total = payableBeforeGiftCard - fare.GiftCardAmount
	return fare
}

func (s *checkoutService) methodFee(method model.PaymentMethod) int64 {
	switch method {
	case model.MethodCard:
		return s.cfg.CardFee
	case model.MethodNetbanking:
		return s.cfg.NetbankingFee
	}
	return 0
}

// evaluatePromo turns a promo rule into an applied discount for the
// session's current subtotal. A subtotal below the rule's minimum is
// rejected with the shortfall spelled out.
func evaluatePromo(rule *model.PromoRule, subtotal int64) (*model.AppliedPromo, error) {
	if !rule.Active {
		return nil, apperrors.InvalidInput("Promo code is no longer active")
	}
	if subtotal < rule.MinSubtotal {
		shortfall := rule.MinSubtotal - subtotal
		return nil, apperrors.InvalidInput(
			fmt.Sprintf("Add ₹%d more to use code %s", shortfall, rule.Code))
	}

	discount := rule.DiscountFor(subtotal)
	if discount <= 0 {
		return nil, apperrors.InvalidInput("Promo code yields no discount for this booking")
	}

	return &model.AppliedPromo{Code: rule.Code, Discount: discount}, nil
}

// giftCardCap is the most a card may redeem: never more than the card
// holds, never more than what is payable before the card is applied.
func giftCardCap(cardBalance, payableBeforeGiftCard int64) int64 {
	if cardBalance < payableBeforeGiftCard {
		return cardBalance
	}
	return payableBeforeGiftCard
}

func mealPrice(code string) (int64, bool) {
	price, ok := mealPrices[code]
	return price, ok
}

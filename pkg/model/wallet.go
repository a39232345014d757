package model

import "time"

type WalletEntryType string

const (
	WalletDebit  WalletEntryType = "debit"
	WalletCredit WalletEntryType = "credit"
)

// WalletEntry is one row of the append-only wallet ledger. The wallet
// balance is always the sum of its entries.
type WalletEntry struct {
	ID        string          `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    string          `json:"user_id" bson:"user_id"`
	Type      WalletEntryType `json:"type" bson:"type"`
	Amount    int64           `json:"amount" bson:"amount"`
	BookingID string          `json:"booking_id,omitempty" bson:"booking_id,omitempty"`
	Reason    string          `json:"reason" bson:"reason"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
}

type Wallet struct {
	UserID    string    `json:"user_id" bson:"_id"`
	Balance   int64     `json:"balance" bson:"balance"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

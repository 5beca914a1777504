package finance

import (
	"log/slog"

	"github.com/atelierhq/atelier/internal/rowstore"
	"github.com/atelierhq/atelier/internal/store"
)

const (
	TransactionTable = "transactions"
	PromoCodeTable   = "promo_codes"
)

// NewTransactionStore creates the transaction store.
func NewTransactionStore(remote rowstore.Store, logger *slog.Logger) *store.Store[Transaction] {
	return store.New[Transaction](remote, store.Config{Table: TransactionTable}, logger)
}

// NewPromoCodeStore creates the promo code store.
func NewPromoCodeStore(remote rowstore.Store, logger *slog.Logger) *store.Store[PromoCode] {
	return store.New[PromoCode](remote, store.Config{Table: PromoCodeTable}, logger)
}

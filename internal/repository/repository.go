// Package repository defines the trade store used by the GM service.
package repository

import (
	"context"

	"github.com/omarshaarawi/gmsim/internal/models"
)

// TradeStore persists submitted trades. GetTrade returns a
// simerr.CodeTradeNotFound error for unknown ids.
type TradeStore interface {
	SaveTrade(ctx context.Context, t models.Trade) error
	GetTrade(ctx context.Context, id string) (models.Trade, error)
	ListSessionTrades(ctx context.Context, sessionID, teamKey string) ([]models.Trade, error)
}

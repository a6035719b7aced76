package currency

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/adikrishnan/expense-ledger/internal"
)

// Service exposes ad hoc conversion between two supported currencies.
type Service struct {
	converter Converter
	logger    *slog.Logger
}

func NewService(converter Converter, logger *slog.Logger) *Service {
	return &Service{
		converter: converter,
		logger:    logger,
	}
}

func (s *Service) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if !amount.IsPositive() || amount.Exponent() < -2 {
		return decimal.Zero, internal.NewValidationError(
			"amount must be positive with at most 2 decimal places",
			internal.ErrCodeInvalidAmount)
	}

	source, ok := Normalize(from)
	if !ok {
		return decimal.Zero, internal.NewValidationError(
			"unsupported source currency", internal.ErrCodeUnsupportedCurrency).WithField("source_currency")
	}
	target, ok := Normalize(to)
	if !ok {
		return decimal.Zero, internal.NewValidationError(
			"unsupported target currency", internal.ErrCodeUnsupportedCurrency).WithField("target_currency")
	}

	converted, err := s.converter.Convert(ctx, amount, source, target)
	if err != nil {
		s.logger.Error("conversion failed", "source", source, "target", target, "error", err)
		return decimal.Zero, err
	}

	return converted, nil
}

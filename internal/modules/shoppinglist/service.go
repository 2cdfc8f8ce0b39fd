package shoppinglist

import (
	"context"
	"fmt"
	"strings"

	"foodgram/internal/repository"
)

const (
	header = "Shopping list:\n"
	footer = "\n\nFoodgram - a taste shared with the world!"
)

// Service renders the aggregated shopping list for a user's cart. Line items
// are grouped by (ingredient name, unit) with amounts summed across recipes;
// the report is generated on the fly and never persisted.
type Service struct {
	carts repository.ShoppingCartRepository
}

func NewService(carts repository.ShoppingCartRepository) *Service {
	return &Service{carts: carts}
}

// Generate returns the plain-text report: header, one line per ingredient
// group sorted by name, fixed footer. An empty cart yields header and footer
// only.
func (s *Service) Generate(ctx context.Context, userID int64) ([]byte, error) {
	items, err := s.carts.AggregateIngredients(ctx, userID)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(header)
	for _, item := range items {
		fmt.Fprintf(&b, "\n %s - %d %s", item.Name, item.TotalAmount, item.MeasurementUnit)
	}
	b.WriteString(footer)

	return []byte(b.String()), nil
}

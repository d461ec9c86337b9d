package food

import (
	"context"

	domain "github.com/ashleendsilva/food-rescue/internal/domain/food"
)

// Usecase defines the interface for listing business logic operations.
type Usecase interface {
	Add(ctx context.Context, in AddRequest) (*AddResponse, error)
	ListAvailable(ctx context.Context) ([]domain.Listing, error)
	ListMine(ctx context.Context, ownerID int64) ([]domain.Food, error)
	Update(ctx context.Context, in UpdateRequest) error
	Delete(ctx context.Context, foodID, ownerID int64) error
}

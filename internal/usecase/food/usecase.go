package food

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "github.com/ashleendsilva/food-rescue/internal/domain/food"
	"github.com/ashleendsilva/food-rescue/pkg/httperr"
)

// Repository defines the interface for listing data access operations.
// Ownership is part of the lookup for DeleteOwned and UpdateOwned: both
// report found=false when the row is missing or owned by someone else,
// and an error only when the store itself fails.
type Repository interface {
	Create(ctx context.Context, f *domain.Food) (int64, error)
	ListAll(ctx context.Context) ([]domain.Listing, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Food, error)
	DeleteOwned(ctx context.Context, id, ownerID int64) (bool, error)
	UpdateOwned(ctx context.Context, id, ownerID int64, upd domain.Update) (bool, error)
}

// Service implements the business logic for the food-listing board.
type Service struct {
	repo     Repository
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new food Service with the provided repository and logger.
func New(r Repository, log *zap.Logger) *Service {
	return &Service{repo: r, log: log, validate: validator.New()}
}

// Add creates a listing owned by the session user. A blank image URL is
// stored as absent rather than as an empty string.
func (s *Service) Add(ctx context.Context, in AddRequest) (*AddResponse, error) {
	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("add food validation failed", zap.Int64("owner_id", in.OwnerID), zap.Error(err))
		return nil, httperr.NewValidationError("Title, quantity, pickup location, restaurant name and contact are required!")
	}

	f := &domain.Food{
		Title:      in.Title,
		Quantity:   in.Quantity,
		Pickup:     in.Pickup,
		Restaurant: in.Restaurant,
		Contact:    in.Contact,
		UserID:     in.OwnerID,
	}
	if in.ImageURL != "" {
		f.ImageURL = &in.ImageURL
	}

	id, err := s.repo.Create(ctx, f)
	if err != nil {
		s.log.Error("failed to create food item", zap.Int64("owner_id", in.OwnerID), zap.Error(err))
		return nil, httperr.NewInternalError("Failed to add food item.", err)
	}

	s.log.Info("food item added", zap.Int64("food_id", id), zap.Int64("owner_id", in.OwnerID))
	return &AddResponse{FoodID: id}, nil
}

// ListAvailable returns every listing on the board, each annotated with
// its owner's account name.
func (s *Service) ListAvailable(ctx context.Context) ([]domain.Listing, error) {
	listings, err := s.repo.ListAll(ctx)
	if err != nil {
		s.log.Error("failed to list available food", zap.Error(err))
		return nil, httperr.NewInternalError("Failed to load food items.", err)
	}
	return listings, nil
}

// ListMine returns the listings owned by the session user.
func (s *Service) ListMine(ctx context.Context, ownerID int64) ([]domain.Food, error) {
	foods, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.log.Error("failed to list own food", zap.Int64("owner_id", ownerID), zap.Error(err))
		return nil, httperr.NewInternalError("Failed to load your food items.", err)
	}
	return foods, nil
}

// Update overwrites the fields present in the request on a listing the
// session user owns. A missing row and a row owned by someone else are
// reported identically.
func (s *Service) Update(ctx context.Context, in UpdateRequest) error {
	found, err := s.repo.UpdateOwned(ctx, in.FoodID, in.OwnerID, in.Fields)
	if err != nil {
		s.log.Error("failed to update food item", zap.Int64("food_id", in.FoodID), zap.Int64("owner_id", in.OwnerID), zap.Error(err))
		return httperr.NewInternalError("Failed to update food item.", err)
	}
	if !found {
		return httperr.NewNotFoundError("Food item not found or you do not have permission to update it!")
	}
	s.log.Info("food item updated", zap.Int64("food_id", in.FoodID), zap.Int64("owner_id", in.OwnerID))
	return nil
}

// Delete removes a listing the session user owns, with the same
// not-found ambiguity as Update.
func (s *Service) Delete(ctx context.Context, foodID, ownerID int64) error {
	found, err := s.repo.DeleteOwned(ctx, foodID, ownerID)
	if err != nil {
		s.log.Error("failed to delete food item", zap.Int64("food_id", foodID), zap.Int64("owner_id", ownerID), zap.Error(err))
		return httperr.NewInternalError("Failed to delete food item.", err)
	}
	if !found {
		return httperr.NewNotFoundError("Food item not found or you do not have permission to delete it!")
	}
	s.log.Info("food item deleted", zap.Int64("food_id", foodID), zap.Int64("owner_id", ownerID))
	return nil
}

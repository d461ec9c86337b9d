package food

import domain "github.com/ashleendsilva/food-rescue/internal/domain/food"

// AddRequest represents the request payload for creating a listing.
// OwnerID comes from the session, never from the payload.
type AddRequest struct {
	Title      string `validate:"required"`
	Quantity   string `validate:"required"`
	Pickup     string `validate:"required"`
	Restaurant string `validate:"required"`
	Contact    string `validate:"required"`
	ImageURL   string
	OwnerID    int64
}

// AddResponse represents the response payload after creating a listing.
type AddResponse struct {
	FoodID int64
}

// UpdateRequest represents a partial overwrite of an owned listing.
type UpdateRequest struct {
	FoodID  int64
	OwnerID int64
	Fields  domain.Update
}

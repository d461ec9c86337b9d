package postgres

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ashleendsilva/food-rescue/internal/domain/food"
)

// FoodRepoPG implements the food Repository interface using GORM.
type FoodRepoPG struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewFoodRepoPG creates a new instance of FoodRepoPG.
func NewFoodRepoPG(db *gorm.DB, log *zap.Logger) *FoodRepoPG {
	return &FoodRepoPG{db: db, log: log}
}

// FoodSchema represents the database schema for the foods table.
type FoodSchema struct {
	ID         int64   `gorm:"primaryKey;autoIncrement"`
	Title      string  `gorm:"not null"`
	Quantity   string  `gorm:"not null"`
	Pickup     string  `gorm:"not null"`
	Restaurant string  `gorm:"not null"`
	Contact    string  `gorm:"not null"`
	ImageURL   *string // NULL when no image was provided
	UserID     int64   `gorm:"not null;index"`
}

// TableName specifies the table name for the FoodSchema model.
func (FoodSchema) TableName() string {
	return "foods"
}

func (m *FoodSchema) toDomain() food.Food {
	return food.Food{
		ID:         m.ID,
		Title:      m.Title,
		Quantity:   m.Quantity,
		Pickup:     m.Pickup,
		Restaurant: m.Restaurant,
		Contact:    m.Contact,
		ImageURL:   m.ImageURL,
		UserID:     m.UserID,
	}
}

// listingRow is the scan target for the foods-to-users join.
type listingRow struct {
	FoodSchema
	OwnerName string
}

// Create inserts a new listing inside a transaction.
func (r *FoodRepoPG) Create(ctx context.Context, f *food.Food) (int64, error) {
	if f == nil {
		return 0, errors.New("food cannot be nil")
	}

	model := FoodSchema{
		Title:      f.Title,
		Quantity:   f.Quantity,
		Pickup:     f.Pickup,
		Restaurant: f.Restaurant,
		Contact:    f.Contact,
		ImageURL:   f.ImageURL,
		UserID:     f.UserID,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&model).Error
	})
	if err != nil {
		r.log.Error("failed to create food in db", zap.Error(err), zap.Int64("user_id", f.UserID))
		return 0, fmt.Errorf("failed to create food: %w", err)
	}

	r.log.Info("food created in db", zap.Int64("id", model.ID))
	return model.ID, nil
}

// ListAll retrieves every listing joined with its owner's account name.
func (r *FoodRepoPG) ListAll(ctx context.Context) ([]food.Listing, error) {
	var rows []listingRow
	err := r.db.WithContext(ctx).
		Table("foods").
		Select("foods.*, users.name AS owner_name").
		Joins("JOIN users ON users.id = foods.user_id").
		Order("foods.id").
		Scan(&rows).Error
	if err != nil {
		r.log.Error("failed to list foods from db", zap.Error(err))
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}

	listings := make([]food.Listing, len(rows))
	for i, row := range rows {
		listings[i] = food.Listing{
			Food:      row.FoodSchema.toDomain(),
			OwnerName: row.OwnerName,
		}
	}
	return listings, nil
}

// ListByOwner retrieves the listings owned by one user.
func (r *FoodRepoPG) ListByOwner(ctx context.Context, ownerID int64) ([]food.Food, error) {
	var models []FoodSchema
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("id").
		Find(&models).Error
	if err != nil {
		r.log.Error("failed to list foods by owner from db", zap.Error(err), zap.Int64("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list foods by owner: %w", err)
	}

	foods := make([]food.Food, len(models))
	for i, m := range models {
		foods[i] = m.toDomain()
	}
	return foods, nil
}

// DeleteOwned removes a listing matched by (id, owner) inside a
// transaction. found is false when no row matched, which covers both a
// wrong id and a row owned by someone else.
func (r *FoodRepoPG) DeleteOwned(ctx context.Context, id, ownerID int64) (bool, error) {
	found := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model FoodSchema
		if err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true
		return tx.Delete(&model).Error
	})
	if err != nil {
		r.log.Error("failed to delete food in db", zap.Error(err), zap.Int64("id", id), zap.Int64("owner_id", ownerID))
		return false, fmt.Errorf("failed to delete food: %w", err)
	}

	if found {
		r.log.Info("food deleted in db", zap.Int64("id", id))
	}
	return found, nil
}

// UpdateOwned overwrites the fields present in upd on a listing matched
// by (id, owner), inside a transaction. Present-but-empty values
// overwrite; an empty image URL clears the column to NULL.
func (r *FoodRepoPG) UpdateOwned(ctx context.Context, id, ownerID int64, upd food.Update) (bool, error) {
	updates := map[string]interface{}{}
	if upd.Title != nil {
		updates["title"] = *upd.Title
	}
	if upd.Quantity != nil {
		updates["quantity"] = *upd.Quantity
	}
	if upd.Pickup != nil {
		updates["pickup"] = *upd.Pickup
	}
	if upd.Restaurant != nil {
		updates["restaurant"] = *upd.Restaurant
	}
	if upd.Contact != nil {
		updates["contact"] = *upd.Contact
	}
	if upd.ImageURL != nil {
		if *upd.ImageURL == "" {
			updates["image_url"] = nil
		} else {
			updates["image_url"] = *upd.ImageURL
		}
	}

	found := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model FoodSchema
		if err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&model).Updates(updates).Error
	})
	if err != nil {
		r.log.Error("failed to update food in db", zap.Error(err), zap.Int64("id", id), zap.Int64("owner_id", ownerID))
		return false, fmt.Errorf("failed to update food: %w", err)
	}

	if found {
		r.log.Info("food updated in db", zap.Int64("id", id))
	}
	return found, nil
}

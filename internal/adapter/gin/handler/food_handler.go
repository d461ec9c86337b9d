package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ashleendsilva/food-rescue/internal/adapter/gin/middleware"
	"github.com/ashleendsilva/food-rescue/internal/adapter/session"
	domain "github.com/ashleendsilva/food-rescue/internal/domain/food"
	"github.com/ashleendsilva/food-rescue/internal/domain/user"
	"github.com/ashleendsilva/food-rescue/internal/usecase/food"
)

// FoodHandler handles the donation-listing endpoints.
type FoodHandler struct {
	uc  food.Usecase
	log *zap.Logger
}

// NewFoodHandler creates a new FoodHandler instance.
func NewFoodHandler(uc food.Usecase, log *zap.Logger) *FoodHandler {
	return &FoodHandler{uc: uc, log: log}
}

// foodItem is the wire shape of one listing. ImageURL serializes as
// null when the listing has no image.
type foodItem struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	Quantity        string  `json:"quantity"`
	Pickup          string  `json:"pickup"`
	Restaurant      string  `json:"restaurant"`
	Contact         string  `json:"contact"`
	ImageURL        *string `json:"image_url"`
	RestaurantOwner string  `json:"restaurant_owner,omitempty"`
}

func toFoodItem(f domain.Food) foodItem {
	return foodItem{
		ID:         f.ID,
		Title:      f.Title,
		Quantity:   f.Quantity,
		Pickup:     f.Pickup,
		Restaurant: f.Restaurant,
		Contact:    f.Contact,
		ImageURL:   f.ImageURL,
	}
}

// requireRestaurant enforces the shared precondition of the mutating and
// owner-scoped endpoints: a session must exist and hold the Restaurant
// role. forbiddenMsg is endpoint-specific.
func (h *FoodHandler) requireRestaurant(c *gin.Context, forbiddenMsg string) (*session.Identity, bool) {
	ident := middleware.IdentityFromContext(c)
	if ident == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Please login first!"})
		return nil, false
	}
	if ident.Role != user.RoleRestaurant {
		c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": forbiddenMsg})
		return nil, false
	}
	return ident, true
}

// foodID parses the :food_id path parameter. A non-numeric id reads the
// same as a nonexistent one.
func (h *FoodHandler) foodID(c *gin.Context, notFoundMsg string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("food_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": notFoundMsg})
		return 0, false
	}
	return id, true
}

// Add handles POST /food/add.
func (h *FoodHandler) Add(c *gin.Context) {
	ident, ok := h.requireRestaurant(c, "Only restaurants can add food items!")
	if !ok {
		return
	}

	p, err := ParsePayload(c)
	if err != nil {
		respondBadBody(c, h.log, err)
		return
	}

	resp, err := h.uc.Add(c.Request.Context(), food.AddRequest{
		Title:      p.Get("title"),
		Quantity:   p.Get("quantity"),
		Pickup:     p.Get("pickup"),
		Restaurant: p.Get("restaurant"),
		Contact:    p.Get("contact"),
		ImageURL:   p.Get("image_url"),
		OwnerID:    ident.UserID,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondOK(c, "Food item added successfully!", gin.H{"food_id": resp.FoodID})
}

// Available handles GET /food/available. The board is public.
func (h *FoodHandler) Available(c *gin.Context) {
	listings, err := h.uc.ListAvailable(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	items := make([]foodItem, len(listings))
	for i, l := range listings {
		items[i] = toFoodItem(l.Food)
		items[i].RestaurantOwner = l.OwnerName
	}

	respondOK(c, "", gin.H{"foods": items})
}

// Mine handles GET /food/my-foods.
func (h *FoodHandler) Mine(c *gin.Context) {
	ident, ok := h.requireRestaurant(c, "Only restaurants can view their food items!")
	if !ok {
		return
	}

	foods, err := h.uc.ListMine(c.Request.Context(), ident.UserID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	items := make([]foodItem, len(foods))
	for i, f := range foods {
		items[i] = toFoodItem(f)
	}

	respondOK(c, "", gin.H{"foods": items})
}

// Delete handles DELETE /food/delete/:food_id.
func (h *FoodHandler) Delete(c *gin.Context) {
	ident, ok := h.requireRestaurant(c, "Only restaurants can delete food items!")
	if !ok {
		return
	}
	id, ok := h.foodID(c, "Food item not found or you do not have permission to delete it!")
	if !ok {
		return
	}

	if err := h.uc.Delete(c.Request.Context(), id, ident.UserID); err != nil {
		respondError(c, h.log, err)
		return
	}

	respondOK(c, "Food item deleted successfully!", nil)
}

// Update handles PUT /food/update/:food_id. Only keys present in the
// payload are overwritten; a present-but-empty value overwrites too,
// and an empty image_url clears the image.
func (h *FoodHandler) Update(c *gin.Context) {
	ident, ok := h.requireRestaurant(c, "Only restaurants can update food items!")
	if !ok {
		return
	}
	id, ok := h.foodID(c, "Food item not found or you do not have permission to update it!")
	if !ok {
		return
	}

	p, err := ParsePayload(c)
	if err != nil {
		respondBadBody(c, h.log, err)
		return
	}

	var upd domain.Update
	if p.Has("title") {
		v := p.Get("title")
		upd.Title = &v
	}
	if p.Has("quantity") {
		v := p.Get("quantity")
		upd.Quantity = &v
	}
	if p.Has("pickup") {
		v := p.Get("pickup")
		upd.Pickup = &v
	}
	if p.Has("restaurant") {
		v := p.Get("restaurant")
		upd.Restaurant = &v
	}
	if p.Has("contact") {
		v := p.Get("contact")
		upd.Contact = &v
	}
	if p.Has("image_url") {
		v := p.Get("image_url")
		upd.ImageURL = &v
	}

	err = h.uc.Update(c.Request.Context(), food.UpdateRequest{
		FoodID:  id,
		OwnerID: ident.UserID,
		Fields:  upd,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondOK(c, "Food item updated successfully!", nil)
}

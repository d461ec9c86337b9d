package food

// Food represents one donation listing owned by a restaurant account.
type Food struct {
	ID         int64   // ID is the unique identifier for the listing
	Title      string  // Title describes the donated food
	Quantity   string  // Quantity is free-form ("5 boxes", "10 kg")
	Pickup     string  // Pickup is the pickup location
	Restaurant string  // Restaurant is the donor's display name
	Contact    string  // Contact is a free-form contact string
	ImageURL   *string // ImageURL is optional; nil when no image was given
	UserID     int64   // UserID references the owning user
}

// Listing is a Food joined with its owner's account name, as shown on
// the public availability board.
type Listing struct {
	Food
	OwnerName string
}

// Update carries a partial overwrite of a listing. A nil field is left
// unchanged; a non-nil field overwrites, even with an empty string.
// An empty ImageURL clears the stored image.
type Update struct {
	Title      *string
	Quantity   *string
	Pickup     *string
	Restaurant *string
	Contact    *string
	ImageURL   *string
}

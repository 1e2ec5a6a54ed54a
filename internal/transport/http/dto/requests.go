package dto

type CreateListingReq struct {
	Title       string `json:"title" validate:"required,max=120"`
	Description string `json:"description" validate:"max=4000"`
	Category    string `json:"category" validate:"required,max=80"`
	Location    string `json:"location" validate:"max=120"`
}

type UpdateListingReq struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,max=120"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=4000"`
	Category    *string `json:"category,omitempty" validate:"omitempty,max=80"`
	Location    *string `json:"location,omitempty" validate:"omitempty,max=120"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=active pending completed cancelled"`
}

// RateReq carries an unbounded rating; the service clamps it into range.
type RateReq struct {
	ExchangeID  string `json:"exchange_id" validate:"required"`
	RatedUserID string `json:"rated_user_id" validate:"required"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment" validate:"max=1000"`
}

type UpgradeReq struct {
	Plan string `json:"plan" validate:"required,oneof=free standard premium business"`
}

type StartConversationReq struct {
	ListingID string `json:"listing_id" validate:"required"`
}

type SendMessageReq struct {
	Text string `json:"text" validate:"required,max=2000"`
}

package dto

import (
	listingModel "staybook/internal/domains/listing/model"
	listingDto "staybook/internal/domains/listing/model/dto"
)

type AddFavoriteRequest struct {
	ListingID string `json:"listing_id" validate:"required"`
}

type GetFavoritesResponse struct {
	Listings  []listingDto.ListingResponse `json:"listings"`
	TotalData int                          `json:"total_data"`
}

func (r *GetFavoritesResponse) FromModels(models []listingModel.Listing) {
	r.TotalData = len(models)

	r.Listings = make([]listingDto.ListingResponse, len(models))
	for i, mod := range models {
		r.Listings[i].FromModel(mod)
	}
}

package dto

import (
	"mime/multipart"
	"net/http"
	"staybook/internal/domains/listing/model"
	"staybook/internal/domains/listing/search"
	"staybook/shared"
	"staybook/shared/constant"
	"staybook/shared/daterange"
	gDto "staybook/shared/dto"
	"staybook/shared/failure"
	gModel "staybook/shared/model"
	"staybook/shared/timezone"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateListingRequest struct {
	Title         string   `json:"title"           validate:"required,max=150"`
	Description   string   `json:"description"     validate:"omitempty,max=5000"`
	Amenities     []string `json:"amenities"       validate:"omitempty,dive,max=100"`
	Address       string   `json:"address"         validate:"required,max=255"`
	City          string   `json:"city"            validate:"required,max=100"`
	Country       string   `json:"country"         validate:"required,max=100"`
	Latitude      float64  `json:"latitude"        validate:"gte=-90,lte=90"`
	Longitude     float64  `json:"longitude"       validate:"gte=-180,lte=180"`
	PricePerNight float64  `json:"price_per_night" validate:"required,gt=0"`
	MaxGuests     int      `json:"max_guests"      validate:"required,min=1"`
}

func (c *CreateListingRequest) ToModel(hostID string) model.Listing {
	return model.Listing{
		ID:            uuid.NewString(),
		HostID:        hostID,
		Title:         c.Title,
		Description:   c.Description,
		Amenities:     pq.StringArray(c.Amenities),
		Photos:        pq.StringArray{},
		Address:       c.Address,
		City:          c.City,
		Country:       c.Country,
		Latitude:      c.Latitude,
		Longitude:     c.Longitude,
		PricePerNight: c.PricePerNight,
		MaxGuests:     c.MaxGuests,
		Status:        model.StatusActive,
		Metadata:      gModel.NewMetadata(hostID),
	}
}

type UpdateListingRequest struct {
	Title         string         `db:"title"           json:"title"           validate:"omitempty,max=150"`
	Description   string         `db:"description"     json:"description"     validate:"omitempty,max=5000"`
	Amenities     pq.StringArray `db:"amenities"       json:"amenities"       validate:"omitempty,dive,max=100"`
	Address       string         `db:"address"         json:"address"         validate:"omitempty,max=255"`
	City          string         `db:"city"            json:"city"            validate:"omitempty,max=100"`
	Country       string         `db:"country"         json:"country"         validate:"omitempty,max=100"`
	Latitude      *float64       `db:"latitude"        json:"latitude"        validate:"omitempty,gte=-90,lte=90"`
	Longitude     *float64       `db:"longitude"       json:"longitude"       validate:"omitempty,gte=-180,lte=180"`
	PricePerNight float64        `db:"price_per_night" json:"price_per_night" validate:"omitempty,gt=0"`
	MaxGuests     int            `db:"max_guests"      json:"max_guests"      validate:"omitempty,min=1"`
}

func (u UpdateListingRequest) IsEmpty() bool {
	return u.Title == "" && u.Description == "" && len(u.Amenities) == 0 && u.Address == "" &&
		u.City == "" && u.Country == "" && u.Latitude == nil && u.Longitude == nil &&
		u.PricePerNight == 0 && u.MaxGuests == 0
}

type UpdateStatusRequest struct {
	Status model.Status `db:"status"`
}

type UploadPhotoRequest struct {
	Photo     *multipart.FileHeader `json:"photo" validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
	PhotoFile multipart.File        `json:"-"`
}

type UpdatePhotosRequest struct {
	Photos pq.StringArray `db:"photos"`
}

type ListingResponse struct {
	ID            string   `json:"id"`
	HostID        string   `json:"host_id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Amenities     []string `json:"amenities"`
	Photos        []string `json:"photos"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	Country       string   `json:"country"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	PricePerNight float64  `json:"price_per_night"`
	MaxGuests     int      `json:"max_guests"`
	Status        string   `json:"status"`
	AverageRating *float64 `json:"average_rating,omitempty"`
	gDto.Metadata
}

func (r *ListingResponse) FromModel(model model.Listing) {
	r.ID = model.ID
	r.HostID = model.HostID
	r.Title = model.Title
	r.Description = model.Description
	r.Amenities = append([]string{}, model.Amenities...)
	r.Photos = append([]string{}, model.Photos...)
	r.Address = model.Address
	r.City = model.City
	r.Country = model.Country
	r.Latitude = model.Latitude
	r.Longitude = model.Longitude
	r.PricePerNight = model.PricePerNight
	r.MaxGuests = model.MaxGuests
	r.Status = string(model.Status)
	r.Metadata.FromModel(model.Metadata)
}

type GetListingsResponse struct {
	Listings  []ListingResponse `json:"listings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetListingsResponse) FromModels(models []model.Listing, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Listings = make([]ListingResponse, len(models))
	for i, mod := range models {
		r.Listings[i].FromModel(mod)
	}
}

// SearchRequest carries the raw query string of a listing search.
type SearchRequest struct {
	City          string   `json:"city"`
	PriceMin      string   `json:"price_min"`
	PriceMax      string   `json:"price_max"`
	CheckIn       string   `json:"check_in"`
	CheckOut      string   `json:"check_out"`
	Amenities     []string `json:"amenities"`
	FavoritesOnly bool     `json:"favorites"`
}

func (s *SearchRequest) FromRequest(r *http.Request) {
	query := r.URL.Query()

	s.City = query.Get(constant.RequestParamCity)
	s.PriceMin = query.Get(constant.RequestParamPriceMin)
	s.PriceMax = query.Get(constant.RequestParamPriceMax)
	s.CheckIn = query.Get(constant.RequestParamCheckIn)
	s.CheckOut = query.Get(constant.RequestParamCheckOut)

	for _, value := range query[constant.RequestParamAmenities] {
		for _, amenity := range strings.Split(value, ",") {
			if amenity = strings.TrimSpace(amenity); amenity != "" {
				s.Amenities = append(s.Amenities, amenity)
			}
		}
	}

	if favorites := shared.ConvertStringToBool(query.Get(constant.RequestParamFavorites)); favorites != nil {
		s.FavoritesOnly = *favorites
	}
}

// ToCriteria converts the request into search criteria. Price bounds fall back
// to the given defaults. A check-in after the check-out is rejected.
func (s *SearchRequest) ToCriteria(priceMin, priceMax float64) (search.Criteria, error) {
	criteria := search.NewCriteria(priceMin, priceMax)
	criteria.Amenities = s.Amenities

	if s.City != "" {
		city := s.City
		criteria.City = &city
	}

	var err error

	if s.PriceMin != "" {
		if criteria.PriceMin, err = strconv.ParseFloat(s.PriceMin, 64); err != nil {
			return criteria, failure.BadRequestFromString("price_min must be a number") // nolint:wrapcheck
		}
	}

	if s.PriceMax != "" {
		if criteria.PriceMax, err = strconv.ParseFloat(s.PriceMax, 64); err != nil {
			return criteria, failure.BadRequestFromString("price_max must be a number") // nolint:wrapcheck
		}
	}

	checkIn, err := daterange.ParseDate(s.CheckIn, timezone.GetLocation())
	if err != nil {
		return criteria, failure.BadRequestFromString("check_in: " + err.Error()) // nolint:wrapcheck
	}

	checkOut, err := daterange.ParseDate(s.CheckOut, timezone.GetLocation())
	if err != nil {
		return criteria, failure.BadRequestFromString("check_out: " + err.Error()) // nolint:wrapcheck
	}

	if !checkIn.IsZero() {
		criteria.CheckIn = &checkIn
	}

	if !checkOut.IsZero() {
		criteria.CheckOut = &checkOut
	}

	if criteria.CheckIn != nil && criteria.CheckOut != nil && checkIn.After(checkOut) {
		return criteria, failure.BadRequestFromString("check_in must not be after check_out") // nolint:wrapcheck
	}

	return criteria, nil
}

type SearchResponse struct {
	Listings  []ListingResponse `json:"listings"`
	TotalData int               `json:"total_data"`
}

func (r *SearchResponse) FromModels(models []model.Listing) {
	r.TotalData = len(models)

	r.Listings = make([]ListingResponse, len(models))
	for i, mod := range models {
		r.Listings[i].FromModel(mod)
	}
}

package dto

import (
	"staybook/internal/domains/comment/model"
	reservationModel "staybook/internal/domains/reservation/model"
	"staybook/shared"
	"staybook/shared/constant"
	gDto "staybook/shared/dto"
	gModel "staybook/shared/model"
	"staybook/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreateCommentRequest struct {
	Rating  int    `json:"rating"  validate:"required,min=1,max=5"`
	Content string `json:"content" validate:"required,max=2000"`
}

func (c *CreateCommentRequest) ToModel(reservation reservationModel.Reservation) model.Comment {
	return model.Comment{
		ID:            uuid.NewString(),
		ReservationID: reservation.ID,
		ListingID:     reservation.ListingID,
		GuestID:       reservation.GuestID,
		Rating:        c.Rating,
		Content:       c.Content,
		Metadata:      gModel.NewMetadata(reservation.GuestID),
	}
}

type ReplyCommentRequest struct {
	Reply string `json:"reply" validate:"required,max=2000"`
}

type UpdateReplyRequest struct {
	Reply     string    `db:"reply"`
	RepliedAt time.Time `db:"replied_at"`
}

type CommentResponse struct {
	ID            string  `json:"id"`
	ReservationID string  `json:"reservation_id"`
	ListingID     string  `json:"listing_id"`
	GuestID       string  `json:"guest_id"`
	Rating        int     `json:"rating"`
	Content       string  `json:"content"`
	Reply         *string `json:"reply,omitempty"`
	RepliedAt     *string `json:"replied_at,omitempty"`
	gDto.Metadata
}

func (r *CommentResponse) FromModel(model model.Comment) {
	r.ID = model.ID
	r.ReservationID = model.ReservationID
	r.ListingID = model.ListingID
	r.GuestID = model.GuestID
	r.Rating = model.Rating
	r.Content = model.Content
	r.Reply = model.Reply

	if model.RepliedAt != nil {
		repliedAt := timezone.Format(*model.RepliedAt, constant.DateFormat)
		r.RepliedAt = &repliedAt
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetCommentsResponse struct {
	Comments      []CommentResponse `json:"comments"`
	AverageRating float64           `json:"average_rating"`
	TotalPage     int               `json:"total_page"`
	TotalData     int               `json:"total_data"`
}

func (r *GetCommentsResponse) FromModels(models []model.Comment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Comments = make([]CommentResponse, len(models))
	for i, mod := range models {
		r.Comments[i].FromModel(mod)
	}
}

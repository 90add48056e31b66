package dto

import (
	"staybook/internal/domains/user/model"
	"staybook/shared"
	"staybook/shared/constant"
	gDto "staybook/shared/dto"
	gModel "staybook/shared/model"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateUserRequest struct {
	Email    string  `json:"email"               validate:"required,email"`
	Password string  `json:"password"            validate:"required,min=8,max=72"`
	Role     string  `json:"role"                validate:"omitempty,oneof=GUEST HOST ADMIN"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=150"`
	Phone    *string `json:"phone,omitempty"     validate:"omitempty,max=30"`
}

func (r *CreateUserRequest) ToModel(username string, hashedPassword string) model.User {
	role := r.Role
	if role == "" {
		role = constant.RoleGuest
	}

	return model.User{
		ID:             uuid.NewString(),
		Email:          model.NormalizeEmail(r.Email),
		Password:       hashedPassword,
		Role:           role,
		FullName:       r.FullName,
		Phone:          r.Phone,
		LegalDocuments: pq.StringArray{},
		Active:         true,
		Metadata:       gModel.NewMetadata(username),
	}
}

type UserResponse struct {
	ID              string   `json:"id"`
	Email           string   `json:"email"`
	Role            string   `json:"role"`
	FullName        *string  `json:"full_name,omitempty"`
	Phone           *string  `json:"phone,omitempty"`
	ProfileImage    *string  `json:"profile_image,omitempty"`
	HostDescription *string  `json:"host_description,omitempty"`
	LegalDocuments  []string `json:"legal_documents,omitempty"`
	LastLogin       *string  `json:"last_login,omitempty"`
	Active          bool     `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.Role = model.Role
	r.FullName = model.FullName
	r.Phone = model.Phone
	r.ProfileImage = model.ProfileImage
	r.HostDescription = model.HostDescription
	r.LegalDocuments = model.LegalDocuments
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)

	if model.LastLogin != nil {
		lastLogin := model.LastLogin.Format(constant.DateFormat)
		r.LastLogin = &lastLogin
	}
}

// UpdateUserRequest is the admin-side update.
type UpdateUserRequest struct {
	Role     *string `db:"role"      json:"role,omitempty"      validate:"omitempty,oneof=GUEST HOST ADMIN"`
	FullName *string `db:"full_name" json:"full_name,omitempty" validate:"omitempty,max=150"`
	Active   *bool   `db:"active"    json:"active,omitempty"`
}

type UpdateProfileRequest struct {
	FullName     *string `db:"full_name"     json:"full_name,omitempty"     validate:"omitempty,max=150"`
	Phone        *string `db:"phone"         json:"phone,omitempty"         validate:"omitempty,max=30"`
	ProfileImage *string `db:"profile_image" json:"profile_image,omitempty" validate:"omitempty,url"`
}

type BecomeHostRequest struct {
	Description    string   `json:"description"     validate:"required,max=2000"`
	LegalDocuments []string `json:"legal_documents" validate:"required,min=1,dive,required,url"`
}

type UpdateHostRequest struct {
	Role            string         `db:"role"`
	HostDescription string         `db:"host_description"`
	LegalDocuments  pq.StringArray `db:"legal_documents"`
}

func (b *BecomeHostRequest) ToUpdate() UpdateHostRequest {
	return UpdateHostRequest{
		Role:            constant.RoleHost,
		HostDescription: b.Description,
		LegalDocuments:  pq.StringArray(b.LegalDocuments),
	}
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}

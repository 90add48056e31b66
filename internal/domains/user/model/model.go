package model

import (
	"staybook/shared/constant"
	gDto "staybook/shared/dto"
	"staybook/shared/model"
	"strings"
	"time"

	"github.com/lib/pq"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID              = "id"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldRole            = "role"
	FieldFullName        = "full_name"
	FieldPhone           = "phone"
	FieldProfileImage    = "profile_image"
	FieldHostDescription = "host_description"
	FieldLegalDocuments  = "legal_documents"
	FieldLastLogin       = "last_login"
	FieldActive          = "active"
)

type User struct {
	ID              string         `db:"id"`
	Email           string         `db:"email"`
	Password        string         `db:"password"`
	Role            string         `db:"role"`
	FullName        *string        `db:"full_name"`
	Phone           *string        `db:"phone"`
	ProfileImage    *string        `db:"profile_image"`
	HostDescription *string        `db:"host_description"`
	LegalDocuments  pq.StringArray `db:"legal_documents"`
	LastLogin       *time.Time     `db:"last_login"`
	Active          bool           `db:"active"`
	model.Metadata
}

func (u User) IsHost() bool {
	return u.Role == constant.RoleHost
}

// NormalizeEmail trims and lower-cases an address so lookups ignore case.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ByEmail filters users on the normalized address.
func ByEmail(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    NormalizeEmail(email),
				Table:    TableName,
			},
		},
	}
}

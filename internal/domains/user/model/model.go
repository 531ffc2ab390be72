package model

import "travelbook/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID              = "id"
	FieldEmail           = "email"
	FieldFirstName       = "first_name"
	FieldLastName        = "last_name"
	FieldProfileImageURL = "profile_image_url"
)

// User is a projection of an externally managed identity. Rows are upserted
// from verified token claims, never created through a signup flow here.
type User struct {
	ID              string  `db:"id"`
	Email           *string `db:"email"`
	FirstName       *string `db:"first_name"`
	LastName        *string `db:"last_name"`
	ProfileImageURL *string `db:"profile_image_url"`
	model.Metadata
}

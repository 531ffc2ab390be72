package dto

import (
	"travelbook/infras/jwt"
	"travelbook/internal/domains/user/model"
	gDto "travelbook/shared/dto"
	gModel "travelbook/shared/model"
	"travelbook/shared/timezone"
)

type UserResponse struct {
	ID              string  `json:"id"`
	Email           *string `json:"email"`
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	ProfileImageURL *string `json:"profileImageUrl"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(mod model.User) {
	r.ID = mod.ID
	r.Email = mod.Email
	r.FirstName = mod.FirstName
	r.LastName = mod.LastName
	r.ProfileImageURL = mod.ProfileImageURL
	r.Metadata.FromModel(mod.Metadata)
}

// UserFromClaims maps verified token claims onto the user projection row.
func UserFromClaims(claims *jwt.Claims) model.User {
	user := model.User{
		ID: claims.UserID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}

	if claims.Email != "" {
		user.Email = &claims.Email
	}

	if claims.FirstName != "" {
		user.FirstName = &claims.FirstName
	}

	if claims.LastName != "" {
		user.LastName = &claims.LastName
	}

	if claims.ProfileImageURL != "" {
		user.ProfileImageURL = &claims.ProfileImageURL
	}

	return user
}

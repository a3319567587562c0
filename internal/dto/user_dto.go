package dto

import (
	"time"

	"savesphere/internal/entity"
)

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=1,max=255"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Name     *string `json:"name" validate:"omitempty,min=1,max=255"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PageMeta struct {
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

type UserPageResponse struct {
	Data []UserResponse `json:"data"`
	Meta PageMeta       `json:"meta"`
}

func UserResponseFromEntity(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		Name:      user.Name,
		Role:      string(user.Role.Name),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func UserPageFromEntities(users []entity.User, total int64, limit, offset int) UserPageResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, UserResponseFromEntity(&users[i]))
	}
	return UserPageResponse{
		Data: responses,
		Meta: PageMeta{Total: total, Limit: limit, Offset: offset},
	}
}

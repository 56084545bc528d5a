package user

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// ========================================
// AUTH DTOs
// ========================================

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Length(1, 50),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
		),
	)
}

type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// ========================================
// USER MANAGEMENT DTOs
// ========================================

type CreateUserRequest struct {
	Username    string   `json:"username"`
	Password    string   `json:"password"`
	Email       string   `json:"email,omitempty"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Length(3, 50).Error("username must be 3-50 characters"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be 8-128 characters"),
		),
		validation.Field(&r.Role,
			validation.Required.Error("role is required"),
			validation.By(validRole),
		),
		validation.Field(&r.Permissions,
			validation.Each(validation.By(validPermission)),
		),
	)
}

type UpdateUserRequest struct {
	Username    *string  `json:"username,omitempty"`
	Password    *string  `json:"password,omitempty"` // omit to keep current password
	Email       *string  `json:"email,omitempty"`
	Role        *string  `json:"role,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.NilOrNotEmpty,
			validation.Length(3, 50).Error("username must be 3-50 characters"),
		),
		validation.Field(&r.Password,
			validation.NilOrNotEmpty,
			validation.Length(8, 128).Error("password must be 8-128 characters"),
		),
		validation.Field(&r.Role,
			validation.NilOrNotEmpty,
			validation.By(func(v interface{}) error {
				s, _ := v.(*string)
				if s == nil {
					return nil
				}
				return validRole(*s)
			}),
		),
		validation.Field(&r.Permissions,
			validation.Each(validation.By(validPermission)),
		),
	)
}

func validRole(v interface{}) error {
	s, _ := v.(string)
	if !Role(s).IsValid() {
		return ErrInvalidRole
	}
	return nil
}

func validPermission(v interface{}) error {
	s, _ := v.(string)
	if !Permission(s).IsValid() {
		return ErrInvalidPermission
	}
	return nil
}

// UserDTO is the safe external shape of a user.
type UserDTO struct {
	ID          uuid.UUID    `json:"id"`
	Username    string       `json:"username"`
	Email       *string      `json:"email,omitempty"`
	Role        Role         `json:"role"`
	Permissions []Permission `json:"permissions"`
	IsActive    bool         `json:"is_active"`
	CreatedAt   time.Time    `json:"created_at"`
}

// ToDTO strips credentials off the entity.
func (u *User) ToDTO() UserDTO {
	perms := u.Permissions
	if perms == nil {
		perms = []Permission{}
	}
	return UserDTO{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Role:        u.Role,
		Permissions: perms,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
}

package models

import (
	"context"
	"errors"
	"time"

	"github.com/shivaccounts/books_backend/config"
	"github.com/shivaccounts/books_backend/utils"
)

type User struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Username  string    `gorm:"size:100;not null;unique" json:"username" binding:"required"`
	Name      string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Email     *string   `gorm:"size:100;unique" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      UserRole  `gorm:"size:20;not null;default:invoicing" json:"role"`
	ContactId *int      `gorm:"default:null" json:"contact_id"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewUser struct {
	Username  string   `json:"username" binding:"required"`
	Name      string   `json:"name" binding:"required"`
	Email     string   `json:"email"`
	Password  string   `json:"password" binding:"required"`
	Role      UserRole `json:"role" binding:"required"`
	ContactId *int     `json:"contact_id"`
}

type LoginInfo struct {
	Token     string   `json:"token"`
	Name      string   `json:"name"`
	Role      UserRole `json:"role"`
	ContactId *int     `json:"contact_id"`
}

func (result *User) PrepareGive() {
	result.Password = ""
}

func CreateUser(ctx context.Context, input *NewUser) (*User, error) {
	if !input.Role.Valid() {
		return nil, utils.NewValidationError("role", "must be admin, invoicing or contact")
	}
	if len(input.Password) < 8 {
		return nil, utils.NewValidationError("password", "must be at least 8 characters")
	}
	if err := utils.ValidateUnique[User](ctx, "username", input.Username, 0); err != nil {
		return nil, utils.NewValidationError("username", "already exists")
	}
	if input.Role == UserRoleContact {
		if input.ContactId == nil {
			return nil, utils.NewValidationError("contact_id", "is required for contact users")
		}
		if err := utils.ValidateResourceId[Contact](ctx, *input.ContactId); err != nil {
			return nil, err
		}
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	active := true
	var email *string
	if input.Email != "" {
		email = &input.Email
	}
	user := User{
		Username:  input.Username,
		Name:      input.Name,
		Email:     email,
		Password:  string(hashed),
		Role:      input.Role,
		ContactId: input.ContactId,
		IsActive:  &active,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	user.PrepareGive()
	return &user, nil
}

func Login(ctx context.Context, username string, password string) (*LoginInfo, error) {
	db := config.GetDB()

	var user User
	if err := db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, errors.New("invalid username or password")
	}
	if user.IsActive == nil || !*user.IsActive {
		return nil, errors.New("invalid username or password")
	}
	if err := utils.ComparePassword(user.Password, password); err != nil {
		return nil, errors.New("invalid username or password")
	}

	token, err := utils.JwtGenerate(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &LoginInfo{
		Token:     token,
		Name:      user.Name,
		Role:      user.Role,
		ContactId: user.ContactId,
	}, nil
}

func GetUser(ctx context.Context, id int) (*User, error) {
	user, err := utils.FetchModel[User](ctx, id)
	if err != nil {
		return nil, err
	}
	user.PrepareGive()
	return user, nil
}

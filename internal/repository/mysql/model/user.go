package model

import (
	"time"

	"github.com/Guyuepp/conduit-feed/domain"
)

type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Username  string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	Bio       string    `gorm:"type:text"`
	Image     string    `gorm:"type:varchar(512)"`
	Password  string    `gorm:"type:varchar(255);not null"`
	Followers int64     `gorm:"not null;default:0"`
	Followee  int64     `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"type:datetime"`
	UpdatedAt time.Time `gorm:"type:datetime"`
}

func (User) TableName() string {
	return "users"
}

func (m *User) ToDomain() domain.User {
	return domain.User{
		ID:        m.ID,
		Email:     m.Email,
		Username:  m.Username,
		Bio:       m.Bio,
		Image:     m.Image,
		Password:  m.Password,
		Followers: m.Followers,
		Followee:  m.Followee,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func NewUserFromDomain(u *domain.User) *User {
	return &User{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Bio:       u.Bio,
		Image:     u.Image,
		Password:  u.Password,
		Followers: u.Followers,
		Followee:  u.Followee,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

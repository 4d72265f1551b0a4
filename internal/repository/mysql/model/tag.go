package model

import "github.com/Guyuepp/conduit-feed/domain"

type Tag struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Tag   string `gorm:"type:varchar(64);not null;uniqueIndex"`
	Count int64  `gorm:"column:usage_count;not null;default:0"`
}

func (Tag) TableName() string {
	return "tags"
}

func (m *Tag) ToDomain() domain.Tag {
	return domain.Tag{
		ID:    m.ID,
		Tag:   m.Tag,
		Count: m.Count,
	}
}

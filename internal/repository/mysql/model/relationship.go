package model

import (
	"time"

	"github.com/Guyuepp/conduit-feed/domain"
)

// Relationship is one pair of a membership set. The composite primary key is
// what keeps pairs unique under concurrent inserts.
type Relationship struct {
	Kind      string    `gorm:"primaryKey;type:varchar(16);index:idx_relationships_target,priority:1"`
	SourceID  int64     `gorm:"primaryKey;autoIncrement:false;column:source_id"`
	TargetID  int64     `gorm:"primaryKey;autoIncrement:false;column:target_id;index:idx_relationships_target,priority:2"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (Relationship) TableName() string {
	return "relationships"
}

func NewRelationshipFromDomain(r domain.Relation) *Relationship {
	return &Relationship{
		Kind:      string(r.Kind),
		SourceID:  r.SourceID,
		TargetID:  r.TargetID,
		CreatedAt: r.CreatedAt,
	}
}

// All lists every model, in migration order.
func All() []any {
	return []any{&User{}, &Article{}, &Comment{}, &Tag{}, &Relationship{}}
}

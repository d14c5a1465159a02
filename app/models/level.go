package models

import "time"

// Level represents a school level (Maternelle, CI, CP, ...) and carries the
// annual tuition fee applicable to every student enrolled at that level.
// Amounts are whole FCFA.
type Level struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name      string     `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	AnnualFee int64      `json:"annual_fee" gorm:"not null;type:bigint" validate:"gte=0"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`
	Classes   []*Class   `json:"classes,omitempty" gorm:"foreignKey:LevelID;references:ID"`
}

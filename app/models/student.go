package models

import "time"

type Student struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	FirstName   string     `json:"first_name" gorm:"not null" validate:"required"`
	LastName    string     `json:"last_name" gorm:"not null" validate:"required"`
	ClassID     *string    `json:"class_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`
	BirthDate   *time.Time `json:"birth_date,omitempty" gorm:"type:date"`
	ParentPhone string     `json:"parent_phone,omitempty" gorm:"type:varchar(20)"`
	ParentEmail string     `json:"parent_email,omitempty"`
	IsActive    bool       `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" gorm:"index"`
	Class       *Class     `json:"class,omitempty" gorm:"foreignKey:ClassID;references:ID"`
	Payments    []*Payment `json:"payments,omitempty" gorm:"foreignKey:StudentID;references:ID"`
}

// FullName returns the student's display name.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

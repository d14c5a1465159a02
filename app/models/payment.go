package models

import "time"

// Payment represents a single tuition/fee payment event for a student.
// A record is append-only: once created, only its status may change
// (En attente -> Confirmé or Annulé) until it is hard-deleted by an
// administrator. Amounts are whole FCFA.
type Payment struct {
	ID                string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	StudentID         string        `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Amount            int64         `json:"amount" gorm:"not null;type:bigint" validate:"required,gt=0"`
	Method            PaymentMethod `json:"payment_method" gorm:"not null;type:varchar(30)" validate:"required"`
	Type              PaymentType   `json:"payment_type" gorm:"not null;type:varchar(30)" validate:"required"`
	PaymentDate       time.Time     `json:"payment_date" gorm:"not null;index;type:date" validate:"required"`
	PeriodDescription *string       `json:"period_description,omitempty"`
	ReferenceNumber   *string       `json:"reference_number,omitempty" gorm:"index"`
	MobileNumber      *string       `json:"mobile_number,omitempty" gorm:"type:varchar(20)"`
	BankDetails       *string       `json:"bank_details,omitempty"`
	Status            PaymentStatus `json:"status" gorm:"not null;default:'Confirmé';index;type:varchar(20)" validate:"required"`
	Notes             *string       `json:"notes,omitempty"`
	RecordedBy        *string       `json:"recorded_by,omitempty" gorm:"index;type:uuid"`
	CreatedAt         time.Time     `json:"created_at" gorm:"autoCreateTime"`

	Student *Student `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`

	// Display fields joined from students/classes/levels, not persisted.
	StudentName string `json:"student_name,omitempty" gorm:"-"`
	ClassName   string `json:"class_name,omitempty" gorm:"-"`
	LevelName   string `json:"level_name,omitempty" gorm:"-"`
}

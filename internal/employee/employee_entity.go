package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `gorm:"size:255;not null"`
	Phone    string    `gorm:"size:32;not null"`
	Email    *string   `gorm:"size:255;uniqueIndex:uq_employee_email"`
	Position string    `gorm:"size:100"`
	// Gaji pokok bulanan, satuan terkecil (rupiah) untuk hindari floating error
	Salary    int64     `gorm:"type:bigint;not null;default:0"`
	IsActive  bool      `gorm:"not null;default:true;index"`
	HireDate  time.Time `gorm:"type:date"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

package customer

import (
	"time"

	"github.com/google/uuid"
)

const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
)

type Customer struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string     `gorm:"size:255;not null"`
	Phone     string     `gorm:"size:32;not null"`
	Email     *string    `gorm:"size:255;uniqueIndex:uq_customer_email"`
	Address   *string    `gorm:"type:text"`
	BirthDate *time.Time `gorm:"type:date"`
	Gender    *string    `gorm:"size:10"`
	Notes     *string    `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

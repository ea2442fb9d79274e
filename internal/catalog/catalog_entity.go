package catalog

import (
	"time"

	"github.com/google/uuid"
)

const (
	CategoryHaircare      = "HAIRCARE"
	CategorySkincare      = "SKINCARE"
	CategoryMassage       = "MASSAGE"
	CategoryNail          = "NAIL"
	CategoryBodyTreatment = "BODY_TREATMENT"
	CategoryOther         = "OTHER"
)

// Service adalah satu layanan di katalog salon.
// Harga yang sudah dipakai appointment disnapshot di join row,
// jadi edit harga di sini tidak mengubah histori.
type CatalogService struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name            string    `gorm:"size:255;not null"`
	Price           int64     `gorm:"type:bigint;not null"`
	DurationMinutes int       `gorm:"not null;default:0"`
	Category        string    `gorm:"size:30;not null;index"`
	IsActive        bool      `gorm:"not null;default:true;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (CatalogService) TableName() string {
	return "services"
}

package holiday

import (
	"time"

	"github.com/google/uuid"
)

type Holiday struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_holiday_date"`
	Date      time.Time `gorm:"type:date;uniqueIndex:uq_holiday_date"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time
}

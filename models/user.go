package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is one half of a couple. Pairing is symmetric: if A.PartnerID
// points at B then B.PartnerID points at A (seeded at setup time).
type User struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string    `gorm:"size:64;not null" json:"name"`
	Slug      string    `gorm:"size:64;uniqueIndex;not null" json:"slug"`
	Timezone  string    `gorm:"size:64;not null;default:'UTC'" json:"timezone"`
	City      string    `gorm:"size:128" json:"city"`
	Country   string    `gorm:"size:2" json:"country"`
	PartnerID *string   `gorm:"type:char(36);index" json:"partner_id"`
	Partner   *User     `gorm:"foreignKey:PartnerID" json:"partner,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

package models

type Review struct {
	BaseModel
	BookingID string `gorm:"not null;uniqueIndex"` // one review per booking
	CoachID   string `gorm:"not null;index"`       // User id
	StudentID string `gorm:"not null;index"`       // User id
	Rating    int    `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Content   string `gorm:"type:text"`

	// Relations
	Booking *Booking `gorm:"foreignKey:BookingID"`
	Coach   *User    `gorm:"foreignKey:CoachID"`
	Student *User    `gorm:"foreignKey:StudentID"`
}

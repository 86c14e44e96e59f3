package models

type StudentProfile struct {
	BaseModel
	UserID      string `gorm:"not null;uniqueIndex"`
	Name        string `gorm:"not null"`
	Phone       string
	SkillLevel  string `gorm:"type:varchar(20)"` // beginner, intermediate, advanced
	Preferences string `gorm:"type:text"`

	// Relations
	User *User `gorm:"foreignKey:UserID"`
}

package profile

import "time"

type UserProfile struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;uniqueIndex;not null"`
	Bio       string    `gorm:"column:bio"`
	AvatarURL string    `gorm:"column:avatar_url"`
	Website   string    `gorm:"column:website"`
	Location  string    `gorm:"column:location"`
	Company   string    `gorm:"column:company"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (UserProfile) TableName() string { return "user_profiles" }

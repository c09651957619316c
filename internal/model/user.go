package model

type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"unique; not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	CreatedAt    int64  `gorm:"not null" json:"created_at"`

	Files []File `gorm:"foreignKey:UserID" json:"-"`
}

package model

// AccessRecord stores who resolved a share token and when. One row is
// appended per successful public view.
type AccessRecord struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	FileID   uint   `gorm:"not null;index" json:"-"`
	IP       string `json:"ip"`
	ViewedAt int64  `gorm:"not null" json:"viewed_at"`
}

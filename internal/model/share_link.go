package model

// ShareLink is a capability token granting unauthenticated read access to
// one file. A file can hold any number of live tokens at once and old ones
// stay valid when new ones are issued.
//
// The unique index makes token collisions a constraint violation instead of
// relying on generation entropy alone.
type ShareLink struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	FileID    uint   `gorm:"not null;index" json:"-"`
	Token     string `gorm:"uniqueIndex;not null" json:"token"`
	CreatedAt int64  `gorm:"not null" json:"created_at"`
}

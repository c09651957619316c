// Package model defines database models
package model

type File struct {
	ID     uint   `gorm:"primaryKey;autoIncrement;index" json:"id"`
	UserID string `gorm:"not null;index" json:"-"`

	// Server-generated disk name. Different users may upload files with the
	// same name so the bytes are kept under a unique key
	StoredName   string      `gorm:"uniqueIndex;not null" json:"-"`
	OriginalName string      `json:"name"`
	Kind         string      `json:"kind"` // "image" or "video"
	Format       string      `json:"format"`
	Tags         StringSlice `json:"tags"`
	Views        int64       `json:"views"`
	Size         int64       `json:"size"`
	CreatedAt    int64       `gorm:"not null" json:"created_at"`

	Links    []ShareLink    `gorm:"foreignKey:FileID" json:"links"`
	Accesses []AccessRecord `gorm:"foreignKey:FileID" json:"-"`
}

// TokenList flattens the share link association into the raw tokens,
// oldest first
func (f *File) TokenList() []string {
	tokens := make([]string, 0, len(f.Links))
	for _, l := range f.Links {
		tokens = append(tokens, l.Token)
	}

	return tokens
}

package models

// Collection is a named grouping of products.
type Collection struct {
	ID    uint   `gorm:"primaryKey"        json:"id"`
	Title string `gorm:"size:255;not null" json:"title"`
}

func (c Collection) String() string { return c.Title }

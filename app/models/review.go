package models

import "time"

type Review struct {
	ID          uint      `gorm:"primaryKey"                  json:"id"`
	ProductID   uint      `gorm:"not null;index"              json:"product_id"`
	Product     Product   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name        string    `gorm:"size:255;not null"           json:"name"`
	Description string    `gorm:"type:text"                   json:"description"`
	Date        time.Time `gorm:"type:date;not null"          json:"date"`
}

func (r Review) String() string { return r.Name }

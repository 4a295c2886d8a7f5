package models

import "time"

// Lookup is a coded value with a display label, e.g. country/BR -> Brazil.
type Lookup struct {
	Category    string    `json:"category" gorm:"primaryKey"`
	Code        string    `json:"code" gorm:"primaryKey"`
	Label       string    `json:"label" gorm:"not null"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Lookup Model
func (Lookup) TableName() string {
	return "lookups"
}

// Key is the cache id of the lookup.
func (l Lookup) Key() string {
	return LookupKey(l.Category, l.Code)
}

func LookupKey(category, code string) string {
	return category + "/" + code
}

package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal([]string(a))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONBStringArray", value)
	}

	return json.Unmarshal(bytes, a)
}

// SearchRecord is one entry of the recent-searches log.
type SearchRecord struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time        `gorm:"index" json:"created_at"`
	Ingredients JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Excluded    JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"excluded"`
	Diet        string           `gorm:"size:32" json:"diet"`
	MaxResults  int              `gorm:"not null" json:"max_results"`
	ResultCount int              `gorm:"not null" json:"result_count"`
}

func (SearchRecord) TableName() string {
	return "search_records"
}

// BeforeCreate assigns the ID on the client so sqlite and postgres behave alike.
func (r *SearchRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

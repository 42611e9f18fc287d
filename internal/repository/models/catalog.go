package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// StringSlice stores a list of IDs as a JSON array column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(bytesToParse, s)
}

type Allergy struct {
	ID           string         `db:"ID"`
	RestaurantID string         `db:"RESTAURANT_ID"`
	Name         string         `db:"NAME"`
	LogoURL      sql.NullString `db:"LOGO_URL"`
}

type Ingredient struct {
	ID               string         `db:"ID"`
	RestaurantID     string         `db:"RESTAURANT_ID"`
	Name             string         `db:"NAME"`
	ImageURL         sql.NullString `db:"IMAGE_URL"`
	Allergies        StringSlice    `db:"ALLERGIES"`
	DerivedAllergies StringSlice    `db:"DERIVED_ALLERGIES"`
	SubIngredients   StringSlice    `db:"SUB_INGREDIENTS"`
}

type MenuItem struct {
	ID           string         `db:"ID"`
	RestaurantID string         `db:"RESTAURANT_ID"`
	Name         string         `db:"NAME"`
	ImageURL     sql.NullString `db:"IMAGE_URL"`
	Ingredients  StringSlice    `db:"INGREDIENTS"`
}

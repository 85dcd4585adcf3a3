package models

import (
	"bytes"
	"database/sql/driver"
	"fmt"

	"github.com/goccy/go-json"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// JSONBStringArray stores an ordered list of strings in a JSON column
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	*a = JSONBStringArray{}
	return scanJSON(value, (*[]string)(a))
}

// GormDataType implements schema.GormDataTypeInterface
func (JSONBStringArray) GormDataType() string {
	return "json"
}

// GormDBDataType picks jsonb on postgres and plain JSON text elsewhere
func (JSONBStringArray) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	return jsonColumnType(db)
}

// JSONObjectList stores an ordered list of free-form JSON objects. The shape of
// each object is not enforced.
type JSONObjectList []map[string]interface{}

// Value implements the driver.Valuer interface
func (l JSONObjectList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]map[string]interface{}(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (l *JSONObjectList) Scan(value interface{}) error {
	*l = JSONObjectList{}
	return scanJSON(value, (*[]map[string]interface{})(l))
}

// GormDataType implements schema.GormDataTypeInterface
func (JSONObjectList) GormDataType() string {
	return "json"
}

// GormDBDataType picks jsonb on postgres and plain JSON text elsewhere
func (JSONObjectList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	return jsonColumnType(db)
}

func scanJSON(value interface{}, dest interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported JSON column type %T", value)
	}
	if len(raw) == 0 {
		return nil
	}

	// numbers stay json.Number so integers beyond float64 precision come back unchanged
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(dest)
}

func jsonColumnType(db *gorm.DB) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "jsonb"
	case "sqlite":
		return "JSON"
	default:
		return "text"
	}
}

package enum

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// BillingType represents the kind of transaction a bill records
type BillingType string

const (
	BillingTypeItems         BillingType = "ITEMS"
	BillingTypeUpgrades      BillingType = "UPGRADES"
	BillingTypeRepair        BillingType = "REPAIR"
	BillingTypeCustomization BillingType = "CUSTOMIZATION"
	BillingTypeMembership    BillingType = "MEMBERSHIP"
)

// BillingTypes lists every billing type in display order
var BillingTypes = []BillingType{
	BillingTypeItems,
	BillingTypeUpgrades,
	BillingTypeRepair,
	BillingTypeCustomization,
	BillingTypeMembership,
}

// ParseBillingType converts a case-insensitive name into a BillingType
func ParseBillingType(s string) (BillingType, bool) {
	t := BillingType(strings.ToUpper(strings.TrimSpace(s)))
	return t, t.IsValid()
}

func (t BillingType) String() string {
	return string(t)
}

// IsValid reports whether t is one of the known billing types
func (t BillingType) IsValid() bool {
	for _, known := range BillingTypes {
		if t == known {
			return true
		}
	}
	return false
}

func (t BillingType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *BillingType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = BillingType(strings.ToUpper(strings.TrimSpace(str)))
	return nil
}

func (t BillingType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *BillingType) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = BillingType(v)
	case []byte:
		*t = BillingType(string(v))
	}
	return nil
}

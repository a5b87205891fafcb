package enum

import (
	"encoding/json"
	"strings"
)

// RepairVariant selects the pricing formula of a REPAIR bill
type RepairVariant string

const (
	RepairVariantNormal   RepairVariant = "NORMAL"
	RepairVariantAdvanced RepairVariant = "ADVANCED"
)

func (v RepairVariant) String() string {
	return string(v)
}

// IsValid reports whether v is a known repair variant
func (v RepairVariant) IsValid() bool {
	return v == RepairVariantNormal || v == RepairVariantAdvanced
}

func (v RepairVariant) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(v))
}

func (v *RepairVariant) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*v = RepairVariant(strings.ToUpper(strings.TrimSpace(str)))
	return nil
}

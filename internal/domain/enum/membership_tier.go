package enum

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// MembershipTier represents a customer's membership level
type MembershipTier string

const (
	MembershipTierOne   MembershipTier = "Tier1"
	MembershipTierTwo   MembershipTier = "Tier2"
	MembershipTierThree MembershipTier = "Tier3"
	// MembershipTierComp is granted for free and never discounts anything
	MembershipTierComp MembershipTier = "Comp"
)

// MembershipTiers lists every tier, lowest first
var MembershipTiers = []MembershipTier{
	MembershipTierOne,
	MembershipTierTwo,
	MembershipTierThree,
	MembershipTierComp,
}

// ParseMembershipTier matches s against the known tiers ignoring case
func ParseMembershipTier(s string) (MembershipTier, bool) {
	s = strings.TrimSpace(s)
	for _, tier := range MembershipTiers {
		if strings.EqualFold(string(tier), s) {
			return tier, true
		}
	}
	return MembershipTier(s), false
}

func (t MembershipTier) String() string {
	return string(t)
}

// IsValid reports whether t is a known tier
func (t MembershipTier) IsValid() bool {
	_, ok := ParseMembershipTier(string(t))
	return ok
}

func (t MembershipTier) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *MembershipTier) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t, _ = ParseMembershipTier(str)
	return nil
}

func (t MembershipTier) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *MembershipTier) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = MembershipTier(v)
	case []byte:
		*t = MembershipTier(string(v))
	}
	return nil
}

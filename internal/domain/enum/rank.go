package enum

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// Rank is an employee's job grade; it selects the commission rate
type Rank string

const (
	RankTrainee        Rank = "Trainee"
	RankMechanic       Rank = "Mechanic"
	RankSeniorMechanic Rank = "Senior Mechanic"
	RankManager        Rank = "Manager"
	RankCoOwner        Rank = "Co-Owner"
	RankOwner          Rank = "Owner"
)

func (r Rank) String() string {
	return string(r)
}

// Normalize trims surrounding whitespace
func (r Rank) Normalize() Rank {
	return Rank(strings.TrimSpace(string(r)))
}

func (r Rank) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(r))
}

func (r *Rank) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*r = Rank(str).Normalize()
	return nil
}

func (r Rank) Value() (driver.Value, error) {
	return string(r), nil
}

func (r *Rank) Scan(value interface{}) error {
	if value == nil {
		*r = RankTrainee
		return nil
	}
	switch v := value.(type) {
	case string:
		*r = Rank(v)
	case []byte:
		*r = Rank(string(v))
	}
	return nil
}

package enum

import (
	"encoding/json"
)

// Role is the access level of an authenticated principal
type Role int

const (
	RoleStandardUser Role = 0
	RoleAdmin        Role = 1
)

func (r Role) String() string {
	names := [...]string{"user", "admin"}
	if int(r) < 0 || int(r) >= len(names) {
		return "user"
	}
	return names[r]
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*r = Role(i)
		return nil
	}
	switch str {
	case "admin":
		*r = RoleAdmin
	default:
		*r = RoleStandardUser
	}
	return nil
}

package request

// CreateEmployeeRequest represents an employee creation request
type CreateEmployeeRequest struct {
	CID  string `json:"cid" binding:"required,max=64"`
	Name string `json:"name" binding:"required,min=1,max=255"`
	Rank string `json:"rank" binding:"omitempty,max=50"`
	Hood string `json:"hood" binding:"omitempty,max=100"`
}

// UpdateEmployeeRequest represents an employee update request
type UpdateEmployeeRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=255"`
	Rank *string `json:"rank" binding:"omitempty,max=50"`
}

// AssignHoodRequest moves an employee to another hood
type AssignHoodRequest struct {
	Hood string `json:"hood" binding:"max=100"`
}

// CreateHoodRequest represents a hood creation request
type CreateHoodRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

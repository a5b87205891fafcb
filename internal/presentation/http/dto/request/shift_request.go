package request

// ShiftRequest identifies the employee clocking in or out
type ShiftRequest struct {
	EmployeeCID string `json:"employee_cid" binding:"required,max=64"`
}

package handler

import (
	"github.com/Shrey0428/ExoticBill/internal/application/service"
	"github.com/Shrey0428/ExoticBill/internal/domain/enum"
	"github.com/Shrey0428/ExoticBill/internal/presentation/http/dto/request"
	"github.com/Shrey0428/ExoticBill/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// EmployeeHandler handles employee HTTP requests
type EmployeeHandler struct {
	employeeService *service.EmployeeService
	billService     *service.BillService
	reportService   *service.ReportService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *service.EmployeeService, billService *service.BillService, reportService *service.ReportService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
		billService:     billService,
		reportService:   reportService,
	}
}

// Create handles creating an employee
// @Summary Create employee
// @Tags employees
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateEmployeeRequest true "Employee"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req request.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), &service.CreateEmployeeInput{
		CID:  req.CID,
		Name: req.Name,
		Rank: enum.Rank(req.Rank),
		Hood: req.Hood,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Employee created successfully", employee)
}

// Get handles fetching an employee
func (h *EmployeeHandler) Get(c *gin.Context) {
	employee, err := h.employeeService.GetEmployee(c.Request.Context(), c.Param("cid"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee retrieved successfully", employee)
}

// List handles listing employees, optionally within one hood
func (h *EmployeeHandler) List(c *gin.Context) {
	employees, err := h.employeeService.ListEmployees(c.Request.Context(), c.Query("hood"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employees retrieved successfully", employees)
}

// Update handles changing an employee's name or rank
func (h *EmployeeHandler) Update(c *gin.Context) {
	var req request.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.UpdateEmployeeInput{
		CID:  c.Param("cid"),
		Name: req.Name,
	}
	if req.Rank != nil {
		rank := enum.Rank(*req.Rank)
		input.Rank = &rank
	}

	employee, err := h.employeeService.UpdateEmployee(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee updated successfully", employee)
}

// AssignHood handles moving an employee to another hood
func (h *EmployeeHandler) AssignHood(c *gin.Context) {
	var req request.AssignHoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	employee, err := h.employeeService.AssignHood(c.Request.Context(), c.Param("cid"), req.Hood)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Hood assigned successfully", employee)
}

// Delete handles removing an employee; their bills stay in the ledger
func (h *EmployeeHandler) Delete(c *gin.Context) {
	if err := h.employeeService.DeleteEmployee(c.Request.Context(), c.Param("cid")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee deleted successfully", nil)
}

// Bills handles listing an employee's bills, newest first
func (h *EmployeeHandler) Bills(c *gin.Context) {
	bills, err := h.billService.ListForEmployee(c.Request.Context(), c.Param("cid"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bills retrieved successfully", bills)
}

// Summary handles an employee's per-type totals
func (h *EmployeeHandler) Summary(c *gin.Context) {
	summary, err := h.reportService.SummaryForEmployee(c.Request.Context(), c.Param("cid"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Summary retrieved successfully", summary)
}

package handler

import (
	"strconv"
	"strings"

	"github.com/Shrey0428/ExoticBill/internal/domain/entity"
	"github.com/Shrey0428/ExoticBill/internal/domain/enum"
	"github.com/Shrey0428/ExoticBill/internal/domain/repository"
	"github.com/Shrey0428/ExoticBill/internal/presentation/http/dto/request"
	"github.com/Shrey0428/ExoticBill/internal/presentation/http/middleware"
	"github.com/Shrey0428/ExoticBill/pkg/apperror"
	"github.com/Shrey0428/ExoticBill/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// GetPrincipal extracts the authenticated principal from the Gin context
func GetPrincipal(c *gin.Context) *entity.Principal {
	return middleware.GetPrincipal(c)
}

// parseIDParam reads a positive numeric path parameter
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// pageParams reads page and per_page query parameters
func pageParams(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(pagination.DefaultPerPage)))
	return &pagination.PaginationParams{Page: page, PerPage: perPage}
}

// billFilter binds the ledger query parameters shared by listing and exports
func billFilter(c *gin.Context) (repository.BillFilter, error) {
	var req request.BillFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return repository.BillFilter{}, apperror.NewBadRequestError("Invalid query parameters: " + err.Error())
	}

	filter := repository.BillFilter{
		From:        req.From,
		To:          req.To,
		EmployeeCID: strings.TrimSpace(req.EmployeeCID),
		CustomerCID: strings.TrimSpace(req.CustomerCID),
	}
	if req.BillingType != "" {
		bt, ok := enum.ParseBillingType(req.BillingType)
		if !ok {
			return repository.BillFilter{}, apperror.NewFieldError("billing_type", "Unknown billing type")
		}
		filter.BillingType = bt
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return repository.BillFilter{}, apperror.NewFieldError("to", "Must not be before from")
	}
	return filter, nil
}

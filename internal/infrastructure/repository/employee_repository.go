package repository

import (
	"context"
	"errors"

	"github.com/Shrey0428/ExoticBill/internal/domain/entity"
	domainRepo "github.com/Shrey0428/ExoticBill/internal/domain/repository"
	"gorm.io/gorm"
)

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) domainRepo.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, employee *entity.Employee) error {
	err := conn(ctx, r.db).Create(employee).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainRepo.ErrDuplicateKey
	}
	return err
}

func (r *employeeRepository) GetByCID(ctx context.Context, cid string) (*entity.Employee, error) {
	var employee entity.Employee
	err := conn(ctx, r.db).First(&employee, "cid = ?", cid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &employee, err
}

func (r *employeeRepository) Update(ctx context.Context, employee *entity.Employee) error {
	return conn(ctx, r.db).Save(employee).Error
}

func (r *employeeRepository) Delete(ctx context.Context, cid string) error {
	return conn(ctx, r.db).Delete(&entity.Employee{}, "cid = ?", cid).Error
}

func (r *employeeRepository) List(ctx context.Context, hood string) ([]entity.Employee, error) {
	var employees []entity.Employee
	query := conn(ctx, r.db)
	if hood != "" {
		query = query.Where("hood = ?", hood)
	}
	err := query.Order("name ASC").Find(&employees).Error
	return employees, err
}

func (r *employeeRepository) ReassignHood(ctx context.Context, from, to string) error {
	return conn(ctx, r.db).Model(&entity.Employee{}).
		Where("hood = ?", from).
		Update("hood", to).Error
}

type hoodRepository struct {
	db *gorm.DB
}

// NewHoodRepository creates a new hood repository
func NewHoodRepository(db *gorm.DB) domainRepo.HoodRepository {
	return &hoodRepository{db: db}
}

func (r *hoodRepository) Create(ctx context.Context, hood *entity.Hood) error {
	err := conn(ctx, r.db).Create(hood).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainRepo.ErrDuplicateKey
	}
	return err
}

func (r *hoodRepository) GetByName(ctx context.Context, name string) (*entity.Hood, error) {
	var hood entity.Hood
	err := conn(ctx, r.db).First(&hood, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &hood, err
}

func (r *hoodRepository) List(ctx context.Context) ([]entity.Hood, error) {
	var hoods []entity.Hood
	err := conn(ctx, r.db).Order("name ASC").Find(&hoods).Error
	return hoods, err
}

func (r *hoodRepository) Delete(ctx context.Context, name string) error {
	return conn(ctx, r.db).Delete(&entity.Hood{}, "name = ?", name).Error
}

package repository

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/staffdesk/employee-manager/internal/database/models"
)

// EmployeeFilter narrows down a listing. Search is a case-insensitive
// substring match across name, email and position; Position is an exact
// match. Limit and Skip drive offset pagination.
type EmployeeFilter struct {
	Search   string
	Position string
	Limit    int
	Skip     int
}

// EmployeeRepository defines the interface for employee data operations
type EmployeeRepository interface {
	Create(employee *models.Employee) error
	FindByID(id uuid.UUID) (*models.Employee, error)
	FindByEmail(email string) (*models.Employee, error)
	FindByEmailExcluding(email string, excludeID uuid.UUID) (*models.Employee, error)
	List(filter EmployeeFilter) ([]models.Employee, int64, error)
	Update(employee *models.Employee) error
	Delete(id uuid.UUID) error
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository instance
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(employee *models.Employee) error {
	if err := r.db.Create(employee).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmployeeEmail
		}
		return err
	}
	return nil
}

func (r *employeeRepository) FindByID(id uuid.UUID) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.Where("id = ?", id).First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) FindByEmail(email string) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.Where("email = ?", email).First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) FindByEmailExcluding(email string, excludeID uuid.UUID) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.Where("email = ? AND id <> ?", email, excludeID).First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return &employee, nil
}

// List returns the matching page sorted by creation time descending, plus
// the total count of all matches ignoring pagination.
func (r *employeeRepository) List(filter EmployeeFilter) ([]models.Employee, int64, error) {
	var total int64
	if err := r.applyFilter(filter).Model(&models.Employee{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.applyFilter(filter).Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Skip > 0 {
		query = query.Offset(filter.Skip)
	}

	employees := make([]models.Employee, 0)
	if err := query.Find(&employees).Error; err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

func (r *employeeRepository) applyFilter(filter EmployeeFilter) *gorm.DB {
	query := r.db
	if filter.Search != "" {
		// LOWER(...) LIKE keeps the match case-insensitive on both
		// PostgreSQL and the sqlite test databases.
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(position) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filter.Position != "" {
		query = query.Where("position = ?", filter.Position)
	}
	return query
}

func (r *employeeRepository) Update(employee *models.Employee) error {
	if err := r.db.Save(employee).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmployeeEmail
		}
		return err
	}
	return nil
}

func (r *employeeRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.Employee{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

// Repository errors
var (
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrDuplicateEmployeeEmail = errors.New("employee email already taken")
)

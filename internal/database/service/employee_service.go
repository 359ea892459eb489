package service

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/staffdesk/employee-manager/internal/database/models"
	"github.com/staffdesk/employee-manager/internal/database/repository"
)

// CreateEmployeeInput carries the mandatory fields of a new record.
type CreateEmployeeInput struct {
	Name     string
	Email    string
	Position string
}

// UpdateEmployeeInput is a partial update: nil means "leave unchanged".
// Supplied profile blocks replace the stored block wholesale.
type UpdateEmployeeInput struct {
	Name         *string
	Email        *string
	Position     *string
	PersonalInfo *models.PersonalInfo
	Contacts     *models.Contacts
	Salary       *models.Salary
	Address      *models.Address
}

// Empty reports whether the input carries no fields at all.
func (in UpdateEmployeeInput) Empty() bool {
	return in.Name == nil && in.Email == nil && in.Position == nil &&
		in.PersonalInfo == nil && in.Contacts == nil && in.Salary == nil && in.Address == nil
}

// EmployeeService defines the interface for employee business logic
type EmployeeService interface {
	List(filter repository.EmployeeFilter) ([]models.Employee, int64, error)
	Create(input CreateEmployeeInput) (*models.Employee, error)
	Get(id uuid.UUID) (*models.Employee, error)
	Update(id uuid.UUID, input UpdateEmployeeInput) (*models.Employee, error)
	Delete(id uuid.UUID) (*models.Employee, error)
}

type employeeService struct {
	employeeRepo repository.EmployeeRepository
	logger       *slog.Logger
}

// NewEmployeeService creates a new employee service instance
func NewEmployeeService(employeeRepo repository.EmployeeRepository, logger *slog.Logger) EmployeeService {
	return &employeeService{
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

func (s *employeeService) List(filter repository.EmployeeFilter) ([]models.Employee, int64, error) {
	return s.employeeRepo.List(filter)
}

func (s *employeeService) Create(input CreateEmployeeInput) (*models.Employee, error) {
	name := strings.TrimSpace(input.Name)
	position := strings.TrimSpace(input.Position)
	email := normalizeEmail(input.Email)

	s.logger.Info("📋 [EmployeeService] Create attempt", "email", email)

	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if !validLength(name, 2, 100) {
		return nil, ErrNameLength
	}
	if !validLength(position, 2, 100) {
		return nil, ErrPositionLength
	}

	existing, err := s.employeeRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, repository.ErrEmployeeNotFound) {
		s.logger.Error("❌ [EmployeeService] Database error", "error", err)
		return nil, err
	}
	if existing != nil {
		s.logger.Warn("⚠️ [EmployeeService] Email already taken", "email", email)
		return nil, ErrEmployeeEmailTaken
	}

	employee := &models.Employee{
		Name:     name,
		Email:    email,
		Position: position,
	}
	if err := s.employeeRepo.Create(employee); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmployeeEmail) {
			return nil, ErrEmployeeEmailTaken
		}
		s.logger.Error("❌ [EmployeeService] Failed to create employee", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [EmployeeService] Employee created", "employee_id", employee.ID)
	return employee, nil
}

func (s *employeeService) Get(id uuid.UUID) (*models.Employee, error) {
	return s.employeeRepo.FindByID(id)
}

func (s *employeeService) Update(id uuid.UUID, input UpdateEmployeeInput) (*models.Employee, error) {
	if input.Empty() {
		return nil, ErrNoUpdateFields
	}

	s.logger.Info("📋 [EmployeeService] Update attempt", "employee_id", id)

	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if !validLength(name, 2, 100) {
			return nil, ErrNameLength
		}
		employee.Name = name
	}
	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if !isValidEmail(email) {
			return nil, ErrInvalidEmail
		}
		other, err := s.employeeRepo.FindByEmailExcluding(email, id)
		if err != nil && !errors.Is(err, repository.ErrEmployeeNotFound) {
			s.logger.Error("❌ [EmployeeService] Database error", "error", err)
			return nil, err
		}
		if other != nil {
			s.logger.Warn("⚠️ [EmployeeService] Email taken by another employee", "email", email)
			return nil, ErrEmployeeEmailTaken
		}
		employee.Email = email
	}
	if input.Position != nil {
		position := strings.TrimSpace(*input.Position)
		if !validLength(position, 2, 100) {
			return nil, ErrPositionLength
		}
		employee.Position = position
	}
	if input.PersonalInfo != nil {
		employee.PersonalInfo = input.PersonalInfo
	}
	if input.Contacts != nil {
		employee.Contacts = input.Contacts
	}
	if input.Salary != nil {
		if input.Salary.Frequency != "" && !input.Salary.Frequency.IsValid() {
			return nil, ErrInvalidSalaryFrequency
		}
		employee.Salary = input.Salary
	}
	if input.Address != nil {
		employee.Address = input.Address
	}

	if err := s.employeeRepo.Update(employee); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmployeeEmail) {
			return nil, ErrEmployeeEmailTaken
		}
		s.logger.Error("❌ [EmployeeService] Failed to update employee", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [EmployeeService] Employee updated", "employee_id", employee.ID)
	return employee, nil
}

// Delete removes the record and returns its last known data.
func (s *employeeService) Delete(id uuid.UUID) (*models.Employee, error) {
	s.logger.Info("🗑️ [EmployeeService] Delete attempt", "employee_id", id)

	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.employeeRepo.Delete(id); err != nil {
		return nil, err
	}

	s.logger.Info("✅ [EmployeeService] Employee deleted", "employee_id", id)
	return employee, nil
}

// Service errors
var (
	ErrEmployeeEmailTaken = errors.New("employee with this email already exists")
	ErrNoUpdateFields     = errors.New("at least one field must be provided")
)

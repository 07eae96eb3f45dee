package staffRepo

import (
	"errors"

	"tillpoint/models"
)

// ErrNotFound indicates the staff member does not exist.
var ErrNotFound = errors.New("staff not found")

// StaffRepository defines methods for staff data access.
type StaffRepository interface {
	// Create inserts a new staff record.
	Create(st *models.Staff) error
	// GetByID retrieves a staff member by ID.
	GetByID(id string) (*models.Staff, error)
	// GetByEmail retrieves a staff member by email.
	GetByEmail(email string) (*models.Staff, error)
	// GetAll retrieves all staff, sorted by name.
	GetAll() ([]models.Staff, error)
	// Update applies a partial field update.
	Update(id string, fields map[string]any) error
	// Delete removes a staff record by ID.
	Delete(id string) error
	// ApplyRating folds one rating into the staff member's running average
	// with a single atomic document update.
	ApplyRating(id string, rating float64) error
}

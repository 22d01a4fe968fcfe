package repository

import (
	"context"
	"fmt"

	"github.com/clinicflow/clinicflow/internal/domain/directory"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DirectoryRepo answers the existence lookups the scheduler needs. The
// doctors and patients tables are maintained by the identity service; this
// repo only ever reads them.
type DirectoryRepo struct {
	db *gorm.DB
}

func NewDirectoryRepo(db *gorm.DB) *DirectoryRepo {
	return &DirectoryRepo{db: db}
}

type doctorDirectory struct{ repo *DirectoryRepo }
type patientDirectory struct{ repo *DirectoryRepo }

func (r *DirectoryRepo) Doctors() directory.DoctorDirectory {
	return doctorDirectory{repo: r}
}

func (r *DirectoryRepo) Patients() directory.PatientDirectory {
	return patientDirectory{repo: r}
}

func (d doctorDirectory) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := d.repo.db.WithContext(ctx).Model(&directory.Doctor{}).
		Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking doctor existence: %w", err)
	}
	return count > 0, nil
}

func (p patientDirectory) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := p.repo.db.WithContext(ctx).Model(&directory.Patient{}).
		Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking patient existence: %w", err)
	}
	return count > 0, nil
}

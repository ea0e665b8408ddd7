// backend-go/internal/repository/postgres/pharmacy_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/bioaura/platform/backend-go/internal/domain"
	"github.com/bioaura/platform/backend-go/internal/repository"
)

type pharmacyRepository struct {
	db *DB
}

func NewPharmacyRepository(db *DB) repository.PharmacyRepository {
	return &pharmacyRepository{db: db}
}

func (r *pharmacyRepository) Identities(ctx context.Context) ([]domain.PharmacyIdentity, error) {
	if err := r.db.Acquire(ctx); err != nil {
		return nil, err
	}
	defer r.db.Release()

	query := `
		SELECT
			id, email, phone, first_name, last_name,
			pharmacy_name, pharmacy_type, pharmacy_license,
			street, city, state, country
		FROM users
		WHERE role = 'pharmacy'
	`

	var identities []domain.PharmacyIdentity
	if err := r.db.SelectContext(ctx, &identities, query); err != nil {
		return nil, fmt.Errorf("error listing pharmacy identities: %w", err)
	}

	return identities, nil
}

func (r *pharmacyRepository) Profiles(ctx context.Context) ([]domain.PharmacyProfile, error) {
	if err := r.db.Acquire(ctx); err != nil {
		return nil, err
	}
	defer r.db.Release()

	query := `
		SELECT
			email, business_name, phone, city, state, country, address,
			latitude, longitude, pharmacy_type, license_number, emergency_contact
		FROM pharmacy_profiles
	`

	var profiles []domain.PharmacyProfile
	if err := r.db.SelectContext(ctx, &profiles, query); err != nil {
		return nil, fmt.Errorf("error listing pharmacy profiles: %w", err)
	}

	return profiles, nil
}

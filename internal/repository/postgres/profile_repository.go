package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alliyn/alliyn-backend/internal/domain"
	"github.com/alliyn/alliyn-backend/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const profileColumns = `
	id, name, business_name, title, description, years_in_business, location,
	partnerships, industries, primary_industry, avatar, company_logo,
	selected_theme, is_active, email, created_at, updated_at`

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(
		&p.ID, &p.Name, &p.BusinessName, &p.Title, &p.Description, &p.YearsInBusiness, &p.Location,
		pq.Array(&p.Partnerships), pq.Array(&p.Industries), &p.PrimaryIndustry, &p.Avatar, &p.CompanyLogo,
		&p.SelectedTheme, &p.IsActive, &p.Email, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (
			name, business_name, title, description, years_in_business, location,
			partnerships, industries, primary_industry, avatar, company_logo,
			selected_theme, is_active, email
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		profile.Name, profile.BusinessName, profile.Title, profile.Description,
		profile.YearsInBusiness, profile.Location,
		pq.Array(profile.Partnerships), pq.Array(profile.Industries), profile.PrimaryIndustry,
		profile.Avatar, profile.CompanyLogo, profile.SelectedTheme, profile.IsActive, profile.Email,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) GetByID(ctx context.Context, id int) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	profile, err := scanProfile(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (r *profileRepository) List(ctx context.Context, limit, offset int) ([]*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY id LIMIT $1 OFFSET $2`
	if limit <= 0 {
		limit = 1000
	}
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []*domain.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET name = $1, business_name = $2, title = $3, description = $4,
		    years_in_business = $5, location = $6, partnerships = $7, industries = $8,
		    primary_industry = $9, avatar = $10, company_logo = $11, selected_theme = $12,
		    is_active = $13, email = $14, updated_at = CURRENT_TIMESTAMP
		WHERE id = $15
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.Name, profile.BusinessName, profile.Title, profile.Description,
		profile.YearsInBusiness, profile.Location,
		pq.Array(profile.Partnerships), pq.Array(profile.Industries), profile.PrimaryIndustry,
		profile.Avatar, profile.CompanyLogo, profile.SelectedTheme, profile.IsActive, profile.Email,
		profile.ID,
	).Scan(&profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProfileNotFound
	}
	return err
}

func (r *profileRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM profiles WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

// SeedIfEmpty inserts the given profiles when the table has no rows yet.
func SeedIfEmpty(ctx context.Context, repo repository.ProfileRepository, db *sqlx.DB, seed []domain.Profile) (int, error) {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(*) FROM profiles`); err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}
	for i := range seed {
		p := seed[i]
		if err := repo.Create(ctx, &p); err != nil {
			return i, err
		}
	}
	return len(seed), nil
}

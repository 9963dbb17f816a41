package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/geo_checkin/internal/models"
)

type VisitRepository struct {
	db *pgxpool.Pool
}

func NewVisitRepository(db *pgxpool.Pool) *VisitRepository {
	return &VisitRepository{db: db}
}

// SaveVisit сохраняет подтвержденное посещение
func (r *VisitRepository) SaveVisit(ctx context.Context, visit *models.Visit) error {
	query := `
		INSERT INTO visits (session_id, user_id, site_id, site_name, latitude, longitude, distance_meters, confirmed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id;
	`
	err := r.db.QueryRow(ctx, query,
		visit.SessionID,
		visit.UserID,
		visit.SiteID,
		visit.SiteName,
		visit.Latitude,
		visit.Longitude,
		visit.DistanceMeters,
		visit.ConfirmedAt,
	).Scan(&visit.ID)
	if err != nil {
		return fmt.Errorf("failed to save visit: %w", err)
	}
	return nil
}

// SavePhoto сохраняет запись о фото; для той же пары пользователь+геозона запись перезаписывается
func (r *VisitRepository) SavePhoto(ctx context.Context, photo *models.PhotoRecord) error {
	query := `
		INSERT INTO photos (user_id, site_key, site_name, path, size_bytes, taken_at, latitude, longitude, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, site_key) DO UPDATE SET
			site_name = EXCLUDED.site_name,
			path = EXCLUDED.path,
			size_bytes = EXCLUDED.size_bytes,
			taken_at = EXCLUDED.taken_at,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			uploaded_at = EXCLUDED.uploaded_at;
	`
	_, err := r.db.Exec(ctx, query,
		photo.UserID,
		photo.SiteKey,
		photo.SiteName,
		photo.Path,
		photo.SizeBytes,
		photo.TakenAt,
		photo.Latitude,
		photo.Longitude,
		photo.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save photo: %w", err)
	}
	return nil
}

// ListVisitsBySite возвращает посещения геозоны с пагинацией, новые первыми
func (r *VisitRepository) ListVisitsBySite(ctx context.Context, siteID string, page, pageSize int) ([]*models.Visit, error) {
	offset := (page - 1) * pageSize

	query := `
		SELECT
			id,
			session_id,
			user_id,
			site_id,
			site_name,
			latitude,
			longitude,
			distance_meters,
			confirmed_at
		FROM visits
		WHERE site_id = $1
		ORDER BY confirmed_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.db.Query(ctx, query, siteID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}
	defer rows.Close()

	visits := make([]*models.Visit, 0)
	for rows.Next() {
		visit := &models.Visit{}
		err := rows.Scan(
			&visit.ID,
			&visit.SessionID,
			&visit.UserID,
			&visit.SiteID,
			&visit.SiteName,
			&visit.Latitude,
			&visit.Longitude,
			&visit.DistanceMeters,
			&visit.ConfirmedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan visit row: %w", err)
		}
		visits = append(visits, visit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return visits, nil
}

// CountVisitors возвращает количество уникальных пользователей, подтвердивших посещение за окно
func (r *VisitRepository) CountVisitors(ctx context.Context, minutes int) (int, error) {
	query := `
		SELECT COUNT(DISTINCT user_id)
		FROM visits
		WHERE confirmed_at >= NOW() - ($1 * INTERVAL '1 minute');
	`
	var count int
	err := r.db.QueryRow(ctx, query, minutes).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to count visitors: %w", err)
	}
	return count, nil
}

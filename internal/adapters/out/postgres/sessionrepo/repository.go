package sessionrepo

import (
	"context"
	"errors"
	"time"

	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSessionRepository implements ports.SessionRepository using GORM.
type GormSessionRepository struct {
	db *gorm.DB
}

// NewGormSessionRepository creates a repository on db, which is either the
// pool or an open transaction.
func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

// Add inserts a new session with its lines.
func (r *GormSessionRepository) Add(ctx context.Context, aggregate *checkout.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes the session row only if its stored version equals
// aggregate.Version(), replaces the lines, and bumps the aggregate's version.
func (r *GormSessionRepository) Update(ctx context.Context, aggregate *checkout.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	expected := dto.Version
	dto.Version = expected + 1

	db := r.db.WithContext(ctx)
	result := db.Model(&SessionDTO{}).
		Where("id = ? AND version = ?", dto.ID, expected).
		Select("*").
		Omit(clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&SessionDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("session", aggregate.ID().String())
		}
		return ports.ErrVersionConflict
	}

	if err := db.Where("session_id = ?", dto.ID).Delete(&LineDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Lines) > 0 {
		if err := db.Create(&dto.Lines).Error; err != nil {
			return err
		}
	}

	aggregate.BumpVersion()
	return nil
}

// Get loads a session with its lines in cart order.
func (r *GormSessionRepository) Get(ctx context.Context, id kernel.UUID) (*checkout.Session, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SessionDTO
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("session", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ReleaseExpiredSubmissions fails stuck submissions in one statement. An
// unrecorded session keeps its accepted invoice in last_invoice and is skipped.
func (r *GormSessionRepository) ReleaseExpiredSubmissions(ctx context.Context, cutoff time.Time, reason string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&SessionDTO{}).
		Where("status = ? AND touched_at < ? AND COALESCE(last_invoice, '') = ''", int(checkout.Submitting), cutoff).
		Updates(map[string]any{
			"status":     int(checkout.Failed),
			"last_error": reason,
			"version":    gorm.Expr("version + 1"),
			"touched_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteStale removes sessions untouched since cutoff together with their
// lines. Sessions with a submission in flight are kept regardless of age.
func (r *GormSessionRepository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	var removed []SessionDTO
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}}}).
			Where("touched_at < ? AND status <> ?", cutoff, int(checkout.Submitting)).
			Delete(&removed).Error
		if err != nil || len(removed) == 0 {
			return err
		}

		ids := make([]any, 0, len(removed))
		for _, dto := range removed {
			ids = append(ids, dto.ID)
		}
		return tx.Where("session_id IN ?", ids).Delete(&LineDTO{}).Error
	})
	if err != nil {
		return 0, err
	}
	return int64(len(removed)), nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/flight-search/flight-supplier-gateway/internal/config"
	"github.com/flight-search/flight-supplier-gateway/internal/domain"
)

// SupplierConfigRepository reads supplier records and persists health transitions.
type SupplierConfigRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSupplierConfigRepository creates a repository on db.
func NewSupplierConfigRepository(db *gorm.DB) *SupplierConfigRepository {
	return &SupplierConfigRepository{db: db, now: time.Now}
}

// FindByCode returns the record for code, or nil when none exists.
func (r *SupplierConfigRepository) FindByCode(ctx context.Context, code string) (*SupplierConfig, error) {
	var rec SupplierConfig
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find supplier config %s: %w", code, err)
	}
	return &rec, nil
}

// Overrides returns the database configuration layer of every persisted supplier, keyed by code.
func (r *SupplierConfigRepository) Overrides(ctx context.Context) (map[string]*config.SupplierOverride, error) {
	var recs []SupplierConfig
	if err := r.db.WithContext(ctx).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list supplier configs: %w", err)
	}

	out := make(map[string]*config.SupplierOverride, len(recs))
	for _, rec := range recs {
		out[rec.Code] = rec.Override()
	}
	return out, nil
}

// Upsert inserts rec or updates the row with the same code.
func (r *SupplierConfigRepository) Upsert(ctx context.Context, rec *SupplierConfig) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		UpdateAll: true,
	}).Create(rec).Error
}

// SetHealth records a health transition. Unknown codes are ignored.
func (r *SupplierConfigRepository) SetHealth(ctx context.Context, supplierCode string, healthy bool) error {
	now := r.now().UTC()
	err := r.db.WithContext(ctx).
		Model(&SupplierConfig{}).
		Where("code = ? AND is_healthy <> ?", supplierCode, healthy).
		Updates(map[string]any{
			"is_healthy":            healthy,
			"last_health_change_at": now,
		}).Error
	if err != nil {
		return fmt.Errorf("set health for %s: %w", supplierCode, err)
	}
	return nil
}

var _ domain.HealthRecorder = (*SupplierConfigRepository)(nil)

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"productapi/internal/domain"
)

// productRecord is the row shape of the products table.
type productRecord struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string          `gorm:"column:name;type:varchar(100);not null"`
	Description string          `gorm:"column:description;type:varchar(1000)"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(19,2);not null"`
	Quantity    int             `gorm:"column:quantity;not null;default:0"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

func toRecord(p domain.Product) productRecord {
	return productRecord{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
	}
}

func (r productRecord) toDomain() domain.Product {
	return domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Quantity:    r.Quantity,
	}
}

// GormStore stores products in a relational table through gorm.
type GormStore struct{ db *gorm.DB }

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

var _ domain.ProductRepository = (*GormStore)(nil)

// Migrate creates or updates the products table.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(&productRecord{})
}

// Save returns the row as stored, so a later FindByID yields the same value.
func (s *GormStore) Save(ctx context.Context, p domain.Product) (domain.Product, error) {
	rec := toRecord(p)
	if rec.ID != 0 {
		// keep created_at when replacing a row
		var existing productRecord
		err := s.db.WithContext(ctx).Select("created_at").First(&existing, rec.ID).Error
		switch {
		case err == nil:
			rec.CreatedAt = existing.CreatedAt
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return domain.Product{}, err
		}
	}
	if err := s.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return domain.Product{}, err
	}
	// read back what the column kept
	return s.FindByID(ctx, rec.ID)
}

func (s *GormStore) FindByID(ctx context.Context, id int64) (domain.Product, error) {
	var rec productRecord
	err := s.db.WithContext(ctx).First(&rec, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, domain.ErrRecordNotFound
		}
		return domain.Product{}, err
	}
	return rec.toDomain(), nil
}

func (s *GormStore) FindAll(ctx context.Context) ([]domain.Product, error) {
	var recs []productRecord
	if err := s.db.WithContext(ctx).Order("id").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (s *GormStore) DeleteByID(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Delete(&productRecord{}, id).Error
}

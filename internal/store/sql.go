package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"mockapi/internal/mockgen"
)

// schemaRow is the table model for one endpoint schema.
type schemaRow struct {
	Subject   string `gorm:"primaryKey;size:255"`
	Endpoint  string `gorm:"primaryKey;size:64"`
	Fields    string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName implements gorm's tabler interface.
func (schemaRow) TableName() string { return "endpoint_schemas" }

// SQLStore persists schemas through gorm (SQLite or PostgreSQL).
type SQLStore struct {
	db *gorm.DB
}

// OpenSQL opens a gorm connection for driver ("sqlite" or "postgres") and
// migrates the schema table.
func OpenSQL(driver, dsn string) (*SQLStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%s store: dsn is required", driver)
	}
	var dialector gorm.Dialector
	switch strings.ToLower(driver) {
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("%s store: open: %w", driver, err)
	}
	return NewSQLStore(db)
}

// NewSQLStore wraps an open gorm connection and migrates the schema table.
func NewSQLStore(db *gorm.DB) (*SQLStore, error) {
	if err := db.AutoMigrate(&schemaRow{}); err != nil {
		return nil, fmt.Errorf("sql store: migrate: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// Save upserts the schema row.
func (s *SQLStore) Save(ctx context.Context, subject, endpoint string, fields []mockgen.Field) error {
	data, err := json.Marshal(cloneFields(fields))
	if err != nil {
		return err
	}
	row := schemaRow{Subject: subject, Endpoint: endpoint, Fields: string(data)}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "subject"}, {Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"fields", "updated_at"}),
	}).Create(&row).Error
}

// Load returns the stored fields.
func (s *SQLStore) Load(ctx context.Context, subject, endpoint string) ([]mockgen.Field, error) {
	var row schemaRow
	err := s.db.WithContext(ctx).
		Where("subject = ? AND endpoint = ?", subject, endpoint).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var fields []mockgen.Field
	if err := json.Unmarshal([]byte(row.Fields), &fields); err != nil {
		return nil, fmt.Errorf("sql store: decode %s/%s: %w", subject, endpoint, err)
	}
	return cloneFields(fields), nil
}

// List returns the subject's endpoint names, sorted.
func (s *SQLStore) List(ctx context.Context, subject string) ([]string, error) {
	names := []string{}
	err := s.db.WithContext(ctx).Model(&schemaRow{}).
		Where("subject = ?", subject).
		Order("endpoint").
		Pluck("endpoint", &names).Error
	return names, err
}

// Close closes the underlying connection pool.
func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Package gormdb persists leads in a SQL database through gorm.
package gormdb

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/PabloGalante/atelier-agent/internal/domain"
)

// Dialects accepted by Open.
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// leadRow is the table layout. Course ids are stored comma separated.
type leadRow struct {
	ID        string    `gorm:"primaryKey;size:64"`
	SessionID string    `gorm:"index;size:64"`
	Kind      string    `gorm:"size:32"`
	Email     string    `gorm:"size:320"`
	JourneyID string    `gorm:"size:64"`
	CourseIDs string    `gorm:"type:text"`
	Language  string    `gorm:"size:8"`
	CreatedAt time.Time `gorm:"index"`
}

func (leadRow) TableName() string { return "leads" }

type LeadStore struct {
	db *gorm.DB
}

var _ domain.LeadStore = (*LeadStore)(nil)

// Open connects with the given dialect and migrates the leads table.
func Open(dialect, dsn string) (*LeadStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("gormdb: dsn is required")
	}

	var dialector gorm.Dialector
	switch dialect {
	case DialectSQLite:
		dialector = sqlite.Open(dsn)
	case DialectPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("gormdb: unsupported dialect %q", dialect)
	}

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", dialect, err)
	}
	return NewLeadStore(db)
}

// NewLeadStore wraps an open connection and migrates the leads table.
func NewLeadStore(db *gorm.DB) (*LeadStore, error) {
	if err := db.AutoMigrate(&leadRow{}); err != nil {
		return nil, fmt.Errorf("migrate leads: %w", err)
	}
	return &LeadStore{db: db}, nil
}

func (s *LeadStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *LeadStore) AppendLead(ctx context.Context, lead *domain.Lead) error {
	if lead.ID == "" {
		lead.ID = domain.LeadID(uuid.NewString())
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now().UTC()
	}

	row := leadRow{
		ID:        string(lead.ID),
		SessionID: string(lead.SessionID),
		Kind:      string(lead.Kind),
		Email:     lead.Email,
		JourneyID: lead.JourneyID,
		CourseIDs: strings.Join(lead.CourseIDs, ","),
		Language:  string(lead.Language),
		CreatedAt: lead.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// ListLeads returns the newest `limit` leads, oldest first.
func (s *LeadStore) ListLeads(ctx context.Context, limit int) ([]*domain.Lead, error) {
	var rows []leadRow
	q := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}

	out := make([]*domain.Lead, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r leadRow) toDomain() *domain.Lead {
	var courses []string
	if r.CourseIDs != "" {
		courses = strings.Split(r.CourseIDs, ",")
	}
	return &domain.Lead{
		ID:        domain.LeadID(r.ID),
		SessionID: domain.SessionID(r.SessionID),
		Kind:      domain.LeadKind(r.Kind),
		Email:     r.Email,
		JourneyID: r.JourneyID,
		CourseIDs: courses,
		Language:  domain.Language(r.Language),
		CreatedAt: r.CreatedAt,
	}
}

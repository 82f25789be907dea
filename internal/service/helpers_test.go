package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/animeaux-api/internal/models"
	"github.com/noah-isme/animeaux-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func testValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.FosterFamily{}, &models.Animal{}, &models.ActivityLog{}))

	return db
}

type memoryActivityRepo struct {
	mu      sync.Mutex
	entries []models.ActivityLog
	err     error
}

func (m *memoryActivityRepo) Create(ctx context.Context, entry *models.ActivityLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	entry.ID = fmt.Sprintf("log-%d", len(m.entries)+1)
	entry.CreatedAt = time.Now().UTC()
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memoryActivityRepo) FindByID(ctx context.Context, id string, fields ...string) (models.ActivityLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, entry := range m.entries {
		if entry.ID == id {
			return entry, nil
		}
	}
	return models.ActivityLog{}, gorm.ErrRecordNotFound
}

func (m *memoryActivityRepo) List(ctx context.Context, filter repository.ActivityLogFilter) ([]models.ActivityLog, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]models.ActivityLog(nil), m.entries...), int64(len(m.entries)), nil
}

func (m *memoryActivityRepo) snapshot() []models.ActivityLog {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]models.ActivityLog(nil), m.entries...)
}

type capturedException struct {
	err   error
	extra map[string]interface{}
}

type stubReporter struct {
	mu       sync.Mutex
	captured []capturedException
}

func (r *stubReporter) CaptureException(ctx context.Context, err error, extra map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.captured = append(r.captured, capturedException{err: err, extra: extra})
}

func (r *stubReporter) calls() []capturedException {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]capturedException(nil), r.captured...)
}

type stubPublisher struct {
	subjects []string
	payloads [][]byte
}

func (p *stubPublisher) Publish(subject string, data []byte) error {
	p.subjects = append(p.subjects, subject)
	p.payloads = append(p.payloads, data)
	return nil
}

func ptrString(v string) *string {
	return &v
}

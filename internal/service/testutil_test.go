package service

import (
	"sync"
	"testing"
	"time"

	"github.com/SodaPop-byte/Casa-Orencia-App/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database per test. A single pooled
// connection keeps the memory database alive and serializes writers the
// way the production pool serializes conflicting row updates.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.User{}, &model.Product{}, &model.Order{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// recordingBus captures emitted events for assertions.
type recordingBus struct {
	mu     sync.Mutex
	events []recordedEvent
}

type recordedEvent struct {
	Event string
	Data  interface{}
}

func (b *recordingBus) Emit(event string, data interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, recordedEvent{Event: event, Data: data})
}

func (b *recordingBus) names() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	names := make([]string, len(b.events))
	for i, e := range b.events {
		names[i] = e.Event
	}
	return names
}

func (b *recordingBus) has(event string) bool {
	for _, name := range b.names() {
		if name == event {
			return true
		}
	}
	return false
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) *model.User {
	t.Helper()
	user := &model.User{Name: "Test User", Email: email, Role: role}
	if err := user.SetPassword("secret123"); err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, name string, category model.Category, price float64, stock int) *model.Product {
	t.Helper()
	product := &model.Product{
		Name:     name,
		Category: category,
		Price:    price,
		Stock:    stock,
		Images:   []string{"casa-orencia/" + name},
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product %s: %v", name, err)
	}
	// Distinct creation times keep newest-first ordering deterministic.
	time.Sleep(2 * time.Millisecond)
	return product
}

func actorFor(u *model.User) model.Actor {
	return model.Actor{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/BeeBeBong/Emenu/entity"
	"github.com/BeeBeBong/Emenu/pkg/apperr"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testHold = 5 * time.Minute

// newTestDB opens a fresh in-memory SQLite database named after the
// test, so parallel tests never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Category{}, &entity.Item{},
		&entity.Table{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.Revenue{},
		&entity.Notification{},
		&entity.Booking{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedTable(t *testing.T, db *gorm.DB, number string) *entity.Table {
	t.Helper()
	tbl := &entity.Table{Number: number, Status: entity.TableAvailable}
	if err := db.Create(tbl).Error; err != nil {
		t.Fatalf("seed table: %v", err)
	}
	return tbl
}

func seedItem(t *testing.T, db *gorm.DB, name string, price int64) *entity.Item {
	t.Helper()
	var cat entity.Category
	if err := db.Where(entity.Category{Name: "Food"}).FirstOrCreate(&cat).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	item := &entity.Item{Name: name, Price: price, CategoryID: cat.ID}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return item
}

func wantKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("got nil error, want kind %s", kind)
	}
	if got := apperr.KindOf(err); got != kind {
		t.Fatalf("got error %v (kind %q), want kind %s", err, got, kind)
	}
}

func countRows(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

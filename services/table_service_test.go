package services

import (
	"testing"
	"time"

	"github.com/BeeBeBong/Emenu/entity"
	"github.com/BeeBeBong/Emenu/pkg/apperr"
)

func TestReserveRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewTableService(db, testHold, nil)
	tbl := seedTable(t, db, "Table 1")

	before := time.Now()
	view, err := svc.Reserve(tbl.ID)
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if view.Status != entity.TableReserved {
		t.Errorf("status = %s, want reserved", view.Status)
	}
	if view.ExpiresAt == nil || view.ReservedAt == nil {
		t.Fatalf("reservation timestamps missing: %+v", view)
	}
	wantExp := before.Add(testHold)
	if view.ExpiresAt.Before(wantExp.Add(-time.Second)) || view.ExpiresAt.After(wantExp.Add(5*time.Second)) {
		t.Errorf("expiresAt = %v, want about %v", view.ExpiresAt, wantExp)
	}

	// still held before expiry
	got, err := svc.Get(tbl.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != entity.TableReserved {
		t.Errorf("status before expiry = %s, want reserved", got.Status)
	}

	// push the hold into the past; the next read lapses it
	past := time.Now().Add(-time.Minute)
	if err := db.Model(&entity.Table{}).Where("id = ?", tbl.ID).Update("expires_at", past).Error; err != nil {
		t.Fatalf("age reservation: %v", err)
	}
	got, err = svc.Get(tbl.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != entity.TableAvailable {
		t.Errorf("status after expiry = %s, want available", got.Status)
	}
	if got.ReservedAt != nil || got.ExpiresAt != nil {
		t.Errorf("timestamps not cleared: %+v", got)
	}
}

func TestReserveConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := NewTableService(db, testHold, nil)
	tbl := seedTable(t, db, "Table 1")

	if _, err := svc.Reserve(tbl.ID); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	_, err := svc.Reserve(tbl.ID)
	wantKind(t, err, apperr.KindConflict)

	// occupied tables cannot be reserved either
	if err := db.Model(&entity.Table{}).Where("id = ?", tbl.ID).
		Updates(map[string]any{"status": entity.TableOccupied, "reserved_at": nil, "expires_at": nil}).Error; err != nil {
		t.Fatalf("occupy table: %v", err)
	}
	_, err = svc.Reserve(tbl.ID)
	wantKind(t, err, apperr.KindConflict)

	_, err = svc.Reserve(404)
	wantKind(t, err, apperr.KindNotFound)
}

func TestReserveAfterExpiredHold(t *testing.T) {
	// an expired hold reads as available, so a second guest can take it
	db := newTestDB(t)
	svc := NewTableService(db, testHold, nil)
	tbl := seedTable(t, db, "Table 1")

	if _, err := svc.Reserve(tbl.ID); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	past := time.Now().Add(-time.Minute)
	if err := db.Model(&entity.Table{}).Where("id = ?", tbl.ID).Update("expires_at", past).Error; err != nil {
		t.Fatalf("age reservation: %v", err)
	}

	if _, err := svc.Reserve(tbl.ID); err != nil {
		t.Fatalf("Reserve after expiry: %v", err)
	}
}

func TestSweepExpired(t *testing.T) {
	db := newTestDB(t)
	svc := NewTableService(db, testHold, nil)
	a := seedTable(t, db, "Table 1")
	b := seedTable(t, db, "Table 2")
	seedTable(t, db, "Table 3")

	for _, tbl := range []*entity.Table{a, b} {
		if _, err := svc.Reserve(tbl.ID); err != nil {
			t.Fatalf("Reserve: %v", err)
		}
	}
	past := time.Now().Add(-time.Minute)
	if err := db.Model(&entity.Table{}).Where("id = ?", a.ID).Update("expires_at", past).Error; err != nil {
		t.Fatalf("age reservation: %v", err)
	}

	n, err := svc.SweepExpired()
	if err != nil {
		t.Fatalf("SweepExpired: %v", err)
	}
	if n != 1 {
		t.Errorf("swept %d tables, want 1", n)
	}

	var swept, held entity.Table
	if err := db.First(&swept, a.ID).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.First(&held, b.ID).Error; err != nil {
		t.Fatal(err)
	}
	if swept.Status != entity.TableAvailable {
		t.Errorf("swept table status = %s, want available", swept.Status)
	}
	if held.Status != entity.TableReserved {
		t.Errorf("live hold status = %s, want reserved", held.Status)
	}
}

func TestLateExpiryResetNeverFreesOccupiedTable(t *testing.T) {
	// a sweeper that loaded a lapsed hold before a walk-in took the
	// table must not free it afterwards or drop the order pointer
	db := newTestDB(t)
	tables := NewTableService(db, testHold, nil)
	orders := NewOrderService(db)
	tbl := seedTable(t, db, "Table 1")
	pho := seedItem(t, db, "Pho", 50000)

	if _, err := tables.Reserve(tbl.ID); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	past := time.Now().Add(-time.Minute)
	if err := db.Model(&entity.Table{}).Where("id = ?", tbl.ID).Update("expires_at", past).Error; err != nil {
		t.Fatalf("age reservation: %v", err)
	}

	// the sweeper's snapshot of the lapsed row
	var stale entity.Table
	if err := db.First(&stale, tbl.ID).Error; err != nil {
		t.Fatalf("load table: %v", err)
	}

	// a walk-in takes the table first
	order, err := orders.AddItems(&AddItemsReq{TableID: tbl.ID, Items: []OrderLineIn{line(pho.ID, 1, "")}})
	if err != nil {
		t.Fatalf("AddItems: %v", err)
	}

	// the late reset lands on the now-occupied row
	tables.applyExpiry(db, &stale)

	var fresh entity.Table
	if err := db.First(&fresh, tbl.ID).Error; err != nil {
		t.Fatalf("reload table: %v", err)
	}
	if fresh.Status != entity.TableOccupied {
		t.Errorf("status = %s, want occupied", fresh.Status)
	}
	if fresh.CurrentOrderID == nil || *fresh.CurrentOrderID != order.ID {
		t.Errorf("current order = %v, want %d", fresh.CurrentOrderID, order.ID)
	}
	if stale.Status != entity.TableOccupied {
		t.Errorf("snapshot after losing the race = %s, want reloaded as occupied", stale.Status)
	}

	// the next round merges into the same order
	again, err := orders.AddItems(&AddItemsReq{TableID: tbl.ID, Items: []OrderLineIn{line(pho.ID, 1, "")}})
	if err != nil {
		t.Fatalf("AddItems: %v", err)
	}
	if again.ID != order.ID {
		t.Errorf("opened a second order %d, want %d", again.ID, order.ID)
	}
	open := countRows(t, db, &entity.Order{}, "status NOT IN (?, ?)", entity.OrderPaid, entity.OrderCancelled)
	if open != 1 {
		t.Fatalf("open orders = %d, want exactly 1", open)
	}
}

func TestTableListShowsOpenOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewTableService(db, testHold, nil)
	orders := NewOrderService(db)
	tbl := seedTable(t, db, "Table 1")
	seedTable(t, db, "Table 2")
	pho := seedItem(t, db, "Pho", 50000)

	if _, err := orders.AddItems(&AddItemsReq{TableID: tbl.ID, Items: []OrderLineIn{line(pho.ID, 2, "")}}); err != nil {
		t.Fatalf("AddItems: %v", err)
	}

	views, err := svc.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("got %d tables, want 2", len(views))
	}
	if views[0].CurrentOrderTotal != 100000 {
		t.Errorf("currentOrderTotal = %d, want 100000", views[0].CurrentOrderTotal)
	}
	if views[0].Duration == "" {
		t.Errorf("duration empty for occupied table")
	}
	if views[1].CurrentOrderTotal != 0 || views[1].Duration != "" {
		t.Errorf("idle table view = %+v, want zeroes", views[1])
	}
}

func TestCreateTable(t *testing.T) {
	db := newTestDB(t)
	svc := NewTableService(db, testHold, nil)

	if _, err := svc.Create("Patio 1"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := svc.Create("Patio 1")
	wantKind(t, err, apperr.KindConflict)

	_, err = svc.Create("")
	wantKind(t, err, apperr.KindInvalidArgument)
}

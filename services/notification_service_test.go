package services

import (
	"testing"

	"github.com/BeeBeBong/Emenu/pkg/apperr"
)

func TestRequestPayment(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db)
	tbl := seedTable(t, db, "Table 3")

	n, err := svc.RequestPayment(tbl.ID)
	if err != nil {
		t.Fatalf("RequestPayment: %v", err)
	}
	if n.Message != "Table 3 requests payment" {
		t.Errorf("message = %q", n.Message)
	}
	if n.TableID == nil || *n.TableID != tbl.ID {
		t.Errorf("tableId = %v, want %d", n.TableID, tbl.ID)
	}
	if n.IsRead {
		t.Error("new notification already read")
	}

	_, err = svc.RequestPayment(404)
	wantKind(t, err, apperr.KindNotFound)
}

func TestNotificationMarkRead(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db)
	tbl := seedTable(t, db, "Table 1")

	n, err := svc.RequestPayment(tbl.ID)
	if err != nil {
		t.Fatalf("RequestPayment: %v", err)
	}

	read, err := svc.MarkRead(n.ID)
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if !read.IsRead {
		t.Error("notification not marked read")
	}

	// marking twice is a no-op
	if _, err := svc.MarkRead(n.ID); err != nil {
		t.Fatalf("MarkRead again: %v", err)
	}

	_, err = svc.MarkRead(404)
	wantKind(t, err, apperr.KindNotFound)
}

func TestNotificationListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db)
	a := seedTable(t, db, "Table 1")
	b := seedTable(t, db, "Table 2")

	if _, err := svc.RequestPayment(a.ID); err != nil {
		t.Fatalf("RequestPayment: %v", err)
	}
	if _, err := svc.RequestPayment(b.ID); err != nil {
		t.Fatalf("RequestPayment: %v", err)
	}

	list, err := svc.List(10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d notifications, want 2", len(list))
	}
	if list[0].Message != "Table 2 requests payment" {
		t.Errorf("list[0] = %q, want the newest entry first", list[0].Message)
	}
}

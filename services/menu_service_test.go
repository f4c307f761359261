package services

import (
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/BeeBeBong/Emenu/pkg/apperr"
)

func TestMenuCategoryCRUD(t *testing.T) {
	db := newTestDB(t)
	svc := NewMenuService(db)

	c, err := svc.CreateCategory(&CategoryIn{Name: "Drinks"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	_, err = svc.CreateCategory(&CategoryIn{Name: "Drinks"})
	wantKind(t, err, apperr.KindConflict)

	updated, err := svc.UpdateCategory(c.ID, &CategoryIn{Name: "Beverages"})
	if err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	if updated.Name != "Beverages" {
		t.Errorf("name = %q, want Beverages", updated.Name)
	}

	_, err = svc.UpdateCategory(404, &CategoryIn{Name: "x"})
	wantKind(t, err, apperr.KindNotFound)

	if err := svc.DeleteCategory(c.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	err = svc.DeleteCategory(c.ID)
	wantKind(t, err, apperr.KindNotFound)
}

func TestMenuItemCRUD(t *testing.T) {
	db := newTestDB(t)
	svc := NewMenuService(db)

	cat, err := svc.CreateCategory(&CategoryIn{Name: "Food"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	v, err := svc.CreateItem(&ItemIn{
		Name:       "Pho",
		Price:      50000,
		CategoryID: cat.ID,
		Picture:    "https://cdn.example/pho.jpg",
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if v.Category != "Food" || v.Img != "https://cdn.example/pho.jpg" {
		t.Errorf("view = %+v", v)
	}

	_, err = svc.CreateItem(&ItemIn{Name: "Bun", Price: -1, CategoryID: cat.ID})
	wantKind(t, err, apperr.KindInvalidArgument)

	_, err = svc.CreateItem(&ItemIn{Name: "Bun", Price: 1, CategoryID: 404})
	wantKind(t, err, apperr.KindNotFound)

	updated, err := svc.UpdateItem(v.ID, &ItemIn{Name: "Pho Bo", Price: 55000, CategoryID: cat.ID})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if updated.Name != "Pho Bo" || updated.Price != 55000 {
		t.Errorf("updated = %+v", updated)
	}

	byCat, err := svc.ListItemsByCategory(cat.ID)
	if err != nil {
		t.Fatalf("ListItemsByCategory: %v", err)
	}
	if len(byCat) != 1 || byCat[0].Name != "Pho Bo" {
		t.Errorf("byCat = %+v", byCat)
	}
	_, err = svc.ListItemsByCategory(404)
	wantKind(t, err, apperr.KindNotFound)

	if err := svc.DeleteItem(v.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	err = svc.DeleteItem(v.ID)
	wantKind(t, err, apperr.KindNotFound)
}

func TestMenuItemImageUpload(t *testing.T) {
	db := newTestDB(t)
	svc := NewMenuService(db)

	cat, err := svc.CreateCategory(&CategoryIn{Name: "Food"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	payload := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	uri := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(payload)
	v, err := svc.CreateItem(&ItemIn{
		Name:        "Pho",
		Price:       50000,
		CategoryID:  cat.ID,
		ImageBase64: uri,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if want := fmt.Sprintf("/api/items/%d/image", v.ID); v.Img != want {
		t.Errorf("img = %q, want %q", v.Img, want)
	}

	data, mime, err := svc.ItemImage(v.ID)
	if err != nil {
		t.Fatalf("ItemImage: %v", err)
	}
	if mime != "image/jpeg" || len(data) != len(payload) {
		t.Errorf("got %d bytes of %s, want %d of image/jpeg", len(data), mime, len(payload))
	}

	_, err = svc.CreateItem(&ItemIn{
		Name: "Bun", Price: 1, CategoryID: cat.ID, ImageBase64: "not base64 at all!!!",
	})
	wantKind(t, err, apperr.KindInvalidArgument)

	plain, err := svc.CreateItem(&ItemIn{Name: "Tea", Price: 1, CategoryID: cat.ID})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	_, _, err = svc.ItemImage(plain.ID)
	wantKind(t, err, apperr.KindNotFound)

	// price edits bite open orders immediately
	orders := NewOrderService(db)
	tbl := seedTable(t, db, "Table 1")
	if _, err := orders.AddItems(&AddItemsReq{TableID: tbl.ID, Items: []OrderLineIn{line(v.ID, 1, "")}}); err != nil {
		t.Fatalf("AddItems: %v", err)
	}
	if _, err := svc.UpdateItem(v.ID, &ItemIn{Name: "Pho", Price: 60000, CategoryID: cat.ID}); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	view, err := orders.OpenOrderByTable(tbl.ID)
	if err != nil {
		t.Fatalf("OpenOrderByTable: %v", err)
	}
	if view.Total != 60000 {
		t.Errorf("total after price edit = %d, want 60000", view.Total)
	}
}

func TestMenuListItems(t *testing.T) {
	db := newTestDB(t)
	svc := NewMenuService(db)
	seedItem(t, db, "Pho", 50000)
	seedItem(t, db, "Tea", 10000)

	views, err := svc.ListItems()
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("got %d items, want 2", len(views))
	}
	if views[0].Name != "Pho" || views[0].Category != "Food" {
		t.Errorf("views[0] = %+v", views[0])
	}
}

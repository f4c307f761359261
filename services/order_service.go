package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/BeeBeBong/Emenu/entity"
	"github.com/BeeBeBong/Emenu/pkg/apperr"
	"github.com/BeeBeBong/Emenu/repository"

	"gorm.io/gorm"
)

// OrderService owns the order lifecycle for a table: merging incoming
// line items into the single open order, settling it at checkout and
// discarding it on cancel.
type OrderService struct {
	DB        *gorm.DB
	Repo      *repository.OrderRepository
	TableRepo *repository.TableRepository
	MenuRepo  *repository.MenuRepository
	RevRepo   *repository.RevenueRepository
	NotifRepo *repository.NotificationRepository

	// one mutex per table id; serializes find-or-create and merge so
	// two concurrent requests can never open two orders for one table
	locks sync.Map
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{
		DB:        db,
		Repo:      repository.NewOrderRepository(db),
		TableRepo: repository.NewTableRepository(db),
		MenuRepo:  repository.NewMenuRepository(db),
		RevRepo:   repository.NewRevenueRepository(db),
		NotifRepo: repository.NewNotificationRepository(db),
	}
}

func (s *OrderService) lockTable(tableID uint) func() {
	v, _ := s.locks.LoadOrStore(tableID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// ----- DTOs -----

type OrderLineIn struct {
	ItemID   uint   `json:"itemId" binding:"required"`
	Quantity int    `json:"quantity"`
	Note     string `json:"note"`
}

type AddItemsReq struct {
	TableID uint          `json:"tableId" binding:"required"`
	Items   []OrderLineIn `json:"items" binding:"required"`
}

type OrderLineView struct {
	ID       uint   `json:"id"`
	ItemID   uint   `json:"itemId"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Note     string `json:"note"`
	IsServed bool   `json:"isServed"`
	Image    string `json:"image"`
}

type OrderView struct {
	ID          uint            `json:"id"`
	TableID     uint            `json:"tableId"`
	TableNumber string          `json:"tableNumber"`
	Total       int64           `json:"total"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	Items       []OrderLineView `json:"items"`
}

type Receipt struct {
	OrderID uint      `json:"orderId"`
	Total   int64     `json:"total"`
	Method  string    `json:"method"`
	PaidAt  time.Time `json:"paidAt"`
}

// ----- Aggregator -----

// AddItems merges the requested lines into the table's open order,
// creating the order (and occupying the table) when there is none.
// Validation failures reject the whole call; nothing is applied
// partially.
func (s *OrderService) AddItems(req *AddItemsReq) (*OrderView, error) {
	if req.TableID == 0 {
		return nil, apperr.InvalidArgument("tableId is required")
	}
	if len(req.Items) == 0 {
		return nil, apperr.InvalidArgument("items must not be empty")
	}
	for _, l := range req.Items {
		if l.ItemID == 0 {
			return nil, apperr.InvalidArgument("itemId is required")
		}
		if l.Quantity < 1 {
			return nil, apperr.InvalidArgument("quantity must be a positive integer, got %d", l.Quantity)
		}
	}

	unlock := s.lockTable(req.TableID)
	defer unlock()

	var view *OrderView
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		table, err := s.TableRepo.Get(tx, req.TableID)
		if err != nil {
			return err
		}
		if table == nil {
			return apperr.NotFound("table %d not found", req.TableID)
		}

		order, err := s.Repo.GetOpenByTable(tx, table)
		if err != nil {
			return err
		}
		if order == nil {
			order = &entity.Order{TableID: table.ID, Status: entity.OrderPending, Total: 0}
			if err := s.Repo.Create(tx, order); err != nil {
				return err
			}
		}

		// An incoming order takes the table regardless of reservation
		// state: walk-ins override a reserved hold without an explicit
		// cancel step.
		if table.Status != entity.TableOccupied || table.CurrentOrderID == nil || *table.CurrentOrderID != order.ID {
			table.Status = entity.TableOccupied
			table.ReservedAt = nil
			table.ExpiresAt = nil
			table.CurrentOrderID = &order.ID
			if err := s.TableRepo.Save(tx, table); err != nil {
				return err
			}
		}

		for _, l := range req.Items {
			item, err := s.MenuRepo.GetItem(tx, l.ItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return apperr.NotFound("item %d not found", l.ItemID)
			}

			line, err := s.Repo.FindUnservedLine(tx, order.ID, item.ID)
			if err != nil {
				return err
			}
			if line != nil {
				line.Quantity += l.Quantity
				if l.Note != "" {
					line.Note = l.Note
				}
				if err := s.Repo.SaveLine(tx, line); err != nil {
					return err
				}
			} else {
				line = &entity.OrderItem{
					OrderID:  order.ID,
					ItemID:   item.ID,
					Quantity: l.Quantity,
					Note:     l.Note,
				}
				if err := s.Repo.CreateLine(tx, line); err != nil {
					return err
				}
			}
		}

		total, err := s.Repo.SumLines(tx, order.ID)
		if err != nil {
			return err
		}
		order.Total = total
		if err := s.Repo.Save(tx, order); err != nil {
			return err
		}

		view, err = s.buildView(tx, order, table)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// OpenOrderByTable returns the table's open order, or nil when there is
// none. An empty table is a normal state, not an error.
func (s *OrderService) OpenOrderByTable(tableID uint) (*OrderView, error) {
	table, err := s.TableRepo.Get(nil, tableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperr.NotFound("table %d not found", tableID)
	}

	order, err := s.Repo.GetOpenByTable(nil, table)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	return s.buildView(s.DB, order, table)
}

// ----- Settlement -----

// Checkout closes the table's open order in one transaction: record
// revenue, mark the order paid, free the table, drop its notifications.
func (s *OrderService) Checkout(tableID uint, method string) (*Receipt, error) {
	if method == "" {
		method = entity.PayCash
	}
	if !entity.ValidPayMethod(method) {
		return nil, apperr.InvalidArgument("unknown payment method %q", method)
	}

	unlock := s.lockTable(tableID)
	defer unlock()

	var receipt *Receipt
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		table, err := s.TableRepo.Get(tx, tableID)
		if err != nil {
			return err
		}
		if table == nil {
			return apperr.NotFound("table %d not found", tableID)
		}

		order, err := s.Repo.GetOpenByTable(tx, table)
		if err != nil {
			return err
		}
		if order == nil {
			return apperr.InvalidState("table %d has no open order", tableID)
		}

		now := time.Now()
		rev := &entity.Revenue{
			OrderID: order.ID,
			Method:  method,
			Amount:  order.Total,
			PaidAt:  now,
		}
		if err := s.RevRepo.Create(tx, rev); err != nil {
			return err
		}

		order.Status = entity.OrderPaid
		if err := s.Repo.Save(tx, order); err != nil {
			return err
		}

		table.Status = entity.TableAvailable
		table.ReservedAt = nil
		table.ExpiresAt = nil
		table.CurrentOrderID = nil
		if err := s.TableRepo.Save(tx, table); err != nil {
			return err
		}

		if err := s.NotifRepo.DeleteByTable(tx, table.ID); err != nil {
			return err
		}

		receipt = &Receipt{OrderID: order.ID, Total: rev.Amount, Method: method, PaidAt: now}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// Cancel hard-deletes every non-paid order for the table and frees it.
// Unlike checkout this records nothing; paid orders stay untouched.
func (s *OrderService) Cancel(tableID uint) error {
	unlock := s.lockTable(tableID)
	defer unlock()

	return s.DB.Transaction(func(tx *gorm.DB) error {
		table, err := s.TableRepo.Get(tx, tableID)
		if err != nil {
			return err
		}
		if table == nil {
			return apperr.NotFound("table %d not found", tableID)
		}

		if err := s.Repo.DeleteUnpaidByTable(tx, table.ID); err != nil {
			return err
		}

		table.Status = entity.TableAvailable
		table.ReservedAt = nil
		table.ExpiresAt = nil
		table.CurrentOrderID = nil
		if err := s.TableRepo.Save(tx, table); err != nil {
			return err
		}

		return s.NotifRepo.DeleteByTable(tx, table.ID)
	})
}

// ----- Kitchen workflow -----

var statusFlow = map[string]string{
	entity.OrderPending:   entity.OrderPreparing,
	entity.OrderPreparing: entity.OrderReady,
	entity.OrderReady:     entity.OrderServed,
}

// UpdateStatus advances an order along pending → preparing → ready →
// served. Paid/cancelled are owned by checkout and cancel, never set
// here.
func (s *OrderService) UpdateStatus(orderID uint, status string) (*OrderView, error) {
	switch status {
	case entity.OrderPreparing, entity.OrderReady, entity.OrderServed:
	case entity.OrderPending, entity.OrderPaid, entity.OrderCancelled:
		return nil, apperr.InvalidArgument("status %q cannot be set directly", status)
	default:
		return nil, apperr.InvalidArgument("unknown status %q", status)
	}

	order, err := s.Repo.Get(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperr.NotFound("order %d not found", orderID)
	}

	// serialize with checkout/cancel on the same table, then re-read:
	// the order may have settled while we waited for the lock
	unlock := s.lockTable(order.TableID)
	defer unlock()

	order, err = s.Repo.Get(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperr.NotFound("order %d not found", orderID)
	}
	if !order.Open() {
		return nil, apperr.InvalidState("order %d is %s", orderID, order.Status)
	}
	if statusFlow[order.Status] != status {
		return nil, apperr.InvalidState("cannot move order from %s to %s", order.Status, status)
	}

	order.Status = status
	if err := s.Repo.Save(nil, order); err != nil {
		return nil, err
	}

	table, err := s.TableRepo.Get(nil, order.TableID)
	if err != nil {
		return nil, err
	}
	return s.buildView(s.DB, order, table)
}

// MarkLineServed flags a line as delivered to the table; from then on
// new requests for the same item open a fresh line instead of merging.
func (s *OrderService) MarkLineServed(lineID uint) error {
	line, err := s.Repo.GetLine(lineID)
	if err != nil {
		return err
	}
	if line == nil {
		return apperr.NotFound("order item %d not found", lineID)
	}
	if line.IsServed {
		return nil
	}
	return s.Repo.SetLineServed(nil, lineID)
}

// ----- Reads -----

func (s *OrderService) Get(orderID uint) (*OrderView, error) {
	order, err := s.Repo.Get(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperr.NotFound("order %d not found", orderID)
	}
	table, err := s.TableRepo.Get(nil, order.TableID)
	if err != nil {
		return nil, err
	}
	return s.buildView(s.DB, order, table)
}

func (s *OrderService) List(limit int) ([]OrderView, error) {
	orders, err := s.Repo.List(limit)
	if err != nil {
		return nil, err
	}
	out := make([]OrderView, 0, len(orders))
	for i := range orders {
		table, err := s.TableRepo.Get(nil, orders[i].TableID)
		if err != nil {
			return nil, err
		}
		v, err := s.buildView(s.DB, &orders[i], table)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

// buildView renders an order with its lines, resolving name/price/image
// from the catalog at read time (prices are live, not snapshotted).
func (s *OrderService) buildView(tx *gorm.DB, order *entity.Order, table *entity.Table) (*OrderView, error) {
	lines, err := s.Repo.Lines(tx, order.ID)
	if err != nil {
		return nil, err
	}

	view := &OrderView{
		ID:        order.ID,
		TableID:   order.TableID,
		Total:     order.Total,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
		Items:     make([]OrderLineView, 0, len(lines)),
	}
	if table != nil {
		view.TableNumber = table.Number
	}

	for _, l := range lines {
		item, err := s.MenuRepo.GetItem(tx, l.ItemID)
		if err != nil {
			return nil, err
		}
		lv := OrderLineView{
			ID:       l.ID,
			ItemID:   l.ItemID,
			Quantity: l.Quantity,
			Note:     l.Note,
			IsServed: l.IsServed,
		}
		if item != nil {
			lv.Name = item.Name
			lv.Price = item.Price
			lv.Image = itemImageURL(item)
		}
		view.Items = append(view.Items, lv)
	}
	return view, nil
}

func itemImageURL(item *entity.Item) string {
	if len(item.Image) > 0 {
		return fmt.Sprintf("/api/items/%d/image", item.ID)
	}
	return item.Picture
}

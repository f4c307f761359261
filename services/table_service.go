package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/BeeBeBong/Emenu/entity"
	"github.com/BeeBeBong/Emenu/pkg/apperr"
	"github.com/BeeBeBong/Emenu/repository"

	"gorm.io/gorm"
)

// TableService tracks occupancy and reservation state. Reservations
// are advisory holds that lapse after Hold; expiry is applied lazily
// on every read, with an optional background sweep for tables nobody
// is looking at.
type TableService struct {
	DB        *gorm.DB
	Repo      *repository.TableRepository
	OrderRepo *repository.OrderRepository
	Hold      time.Duration
	Log       *slog.Logger
}

func NewTableService(db *gorm.DB, hold time.Duration, log *slog.Logger) *TableService {
	return &TableService{
		DB:        db,
		Repo:      repository.NewTableRepository(db),
		OrderRepo: repository.NewOrderRepository(db),
		Hold:      hold,
		Log:       log,
	}
}

type TableView struct {
	ID                uint       `json:"id"`
	Number            string     `json:"number"`
	Status            string     `json:"status"`
	ReservedAt        *time.Time `json:"reservedAt"`
	ExpiresAt         *time.Time `json:"expiresAt"`
	CurrentOrderTotal int64      `json:"currentOrderTotal"`
	Duration          string     `json:"duration"`
}

// Reserve places a 5-minute hold on an available table.
func (s *TableService) Reserve(tableID uint) (*TableView, error) {
	var view *TableView
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		table, err := s.Repo.Get(tx, tableID)
		if err != nil {
			return err
		}
		if table == nil {
			return apperr.NotFound("table %d not found", tableID)
		}

		s.applyExpiry(tx, table)

		if table.Status != entity.TableAvailable {
			return apperr.Conflict("table %s is %s", table.Number, table.Status)
		}

		now := time.Now()
		exp := now.Add(s.Hold)
		table.Status = entity.TableReserved
		table.ReservedAt = &now
		table.ExpiresAt = &exp
		if err := s.Repo.Save(tx, table); err != nil {
			return err
		}

		view, err = s.buildView(tx, table)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *TableService) Get(tableID uint) (*TableView, error) {
	table, err := s.Repo.Get(nil, tableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperr.NotFound("table %d not found", tableID)
	}
	s.applyExpiry(s.DB, table)
	return s.buildView(s.DB, table)
}

func (s *TableService) List() ([]TableView, error) {
	tables, err := s.Repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]TableView, 0, len(tables))
	for i := range tables {
		s.applyExpiry(s.DB, &tables[i])
		v, err := s.buildView(s.DB, &tables[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

func (s *TableService) Create(number string) (*entity.Table, error) {
	if number == "" {
		return nil, apperr.InvalidArgument("number is required")
	}
	table := &entity.Table{Number: number, Status: entity.TableAvailable}
	if err := s.Repo.Create(table); err != nil {
		return nil, apperr.Conflict("table %q already exists", number)
	}
	return table, nil
}

// applyExpiry resets a lapsed reservation. The reset is a guarded
// column update, so a stale read racing an occupy write can never free
// the table or drop its order pointer; losing the race reloads the
// current row instead.
func (s *TableService) applyExpiry(tx *gorm.DB, table *entity.Table) {
	now := time.Now()
	if !table.ReservationExpired(now) {
		return
	}
	reset, err := s.Repo.ResetExpiredReservation(tx, table.ID, now)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("reset expired reservation", "table", table.ID, "err", err)
		}
		return
	}
	if reset {
		table.Status = entity.TableAvailable
		table.ReservedAt = nil
		table.ExpiresAt = nil
		return
	}
	if fresh, err := s.Repo.Get(tx, table.ID); err == nil && fresh != nil {
		*table = *fresh
	}
}

// SweepExpired resets every lapsed reservation and returns how many it
// touched.
func (s *TableService) SweepExpired() (int, error) {
	expired, err := s.Repo.ListExpiredReservations(time.Now())
	if err != nil {
		return 0, err
	}
	for i := range expired {
		s.applyExpiry(s.DB, &expired[i])
	}
	return len(expired), nil
}

// StartSweeper runs SweepExpired on a fixed interval until ctx ends.
func (s *TableService) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := s.SweepExpired()
				if err != nil && s.Log != nil {
					s.Log.Error("reservation sweep", "err", err)
				} else if n > 0 && s.Log != nil {
					s.Log.Info("reservation sweep", "expired", n)
				}
			}
		}
	}()
}

func (s *TableService) buildView(tx *gorm.DB, table *entity.Table) (*TableView, error) {
	view := &TableView{
		ID:         table.ID,
		Number:     table.Number,
		Status:     table.Status,
		ReservedAt: table.ReservedAt,
		ExpiresAt:  table.ExpiresAt,
	}

	order, err := s.OrderRepo.GetOpenByTable(tx, table)
	if err != nil {
		return nil, err
	}
	if order != nil {
		view.CurrentOrderTotal = order.Total
		view.Duration = formatDuration(time.Since(order.CreatedAt))
	}
	return view, nil
}

func formatDuration(d time.Duration) string {
	m := int(d.Minutes())
	if m < 0 {
		m = 0
	}
	if h := m / 60; h > 0 {
		return fmt.Sprintf("%dh %dm", h, m%60)
	}
	return fmt.Sprintf("%dm", m)
}

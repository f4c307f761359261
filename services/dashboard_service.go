package services

import (
	"time"

	"github.com/BeeBeBong/Emenu/entity"
	"github.com/BeeBeBong/Emenu/repository"

	"gorm.io/gorm"
)

// DashboardService aggregates the admin dashboard numbers. Revenue is
// split cash vs transfer over a date range, with the range's bookings
// and top selling items alongside.
type DashboardService struct {
	RevRepo     *repository.RevenueRepository
	BookingRepo *repository.BookingRepository
	MenuRepo    *repository.MenuRepository
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{
		RevRepo:     repository.NewRevenueRepository(db),
		BookingRepo: repository.NewBookingRepository(db),
		MenuRepo:    repository.NewMenuRepository(db),
	}
}

type BookingRow struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Guests int    `json:"guests"`
	Status string `json:"status"`
}

type DashboardStats struct {
	Filter      string                  `json:"filter"`
	Revenue     repository.RangeSummary `json:"revenue"`
	Bookings    []BookingRow            `json:"bookings"`
	BestSellers []repository.BestSeller `json:"bestSellers"`
}

// Stats computes dashboard numbers for one of: today (default),
// yesterday, week, month, quarter, year.
func (s *DashboardService) Stats(rangeType string) (*DashboardStats, error) {
	start, end := rangeBounds(rangeType, time.Now())

	revenue, err := s.RevRepo.SummarizeRange(start, end)
	if err != nil {
		return nil, err
	}

	bookings, err := s.BookingRepo.ListBetween(start, end)
	if err != nil {
		return nil, err
	}
	rows := make([]BookingRow, 0, len(bookings))
	for _, b := range bookings {
		local := b.BookingTime.Local()
		rows = append(rows, BookingRow{
			ID:     b.ID,
			Name:   b.CustomerName,
			Phone:  b.CustomerPhone,
			Date:   local.Format("2006-01-02"),
			Time:   local.Format("15:04"),
			Guests: b.GuestCount,
			Status: b.Status,
		})
	}

	best, err := s.MenuRepo.BestSellers(5)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		Filter:      normalizeRange(rangeType),
		Revenue:     *revenue,
		Bookings:    rows,
		BestSellers: best,
	}, nil
}

// Revenues lists recent settlement records, newest first.
func (s *DashboardService) Revenues(limit int) ([]entity.Revenue, error) {
	return s.RevRepo.List(limit)
}

func normalizeRange(rangeType string) string {
	switch rangeType {
	case "yesterday", "week", "month", "quarter", "year":
		return rangeType
	default:
		return "today"
	}
}

// rangeBounds returns [start, end) in local time for the range keyword.
func rangeBounds(rangeType string, now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)

	switch rangeType {
	case "yesterday":
		return today.AddDate(0, 0, -1), today
	case "week":
		// Monday through now
		wd := int(today.Weekday())
		if wd == 0 {
			wd = 7
		}
		return today.AddDate(0, 0, -(wd - 1)), tomorrow
	case "month":
		return time.Date(y, m, 1, 0, 0, 0, 0, now.Location()), tomorrow
	case "quarter":
		qm := time.Month(3*((int(m)-1)/3) + 1)
		return time.Date(y, qm, 1, 0, 0, 0, 0, now.Location()), tomorrow
	case "year":
		return time.Date(y, time.January, 1, 0, 0, 0, 0, now.Location()), tomorrow
	default:
		return today, tomorrow
	}
}

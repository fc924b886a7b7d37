package services

import (
	"sync"
	"time"

	"nyumbani/internal/models"
	"nyumbani/pkg/logger"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// RentScheduler materializes the new month's rent records for every landlord
// on the first of the month. Dashboard requests also trigger the reconciler
// on demand, so the cron run is a safety net rather than the only path.
type RentScheduler struct {
	db          *gorm.DB
	cron        *cron.Cron
	rentService *RentRecordService
	mu          sync.Mutex
	running     bool
}

func NewRentScheduler(db *gorm.DB) *RentScheduler {
	return &RentScheduler{
		db:          db,
		cron:        cron.New(),
		rentService: NewRentRecordService(db),
	}
}

// Start registers the monthly job and starts cron
func (s *RentScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	// 02:00 on the first day of every month
	if _, err := s.cron.AddFunc("0 2 1 * *", s.runMonthly); err != nil {
		return err
	}

	s.cron.Start()
	s.running = true
	logger.GetLogger().Info("Rent record scheduler started")
	return nil
}

// Stop halts the scheduler and waits for a running job to finish
func (s *RentScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
	logger.GetLogger().Info("Rent record scheduler stopped")
}

func (s *RentScheduler) runMonthly() {
	log := logger.GetLogger()
	now := time.Now()

	var landlords []models.User
	if err := s.db.Where("role = ?", models.RoleLandlord).Find(&landlords).Error; err != nil {
		log.Errorf("Rent scheduler: listing landlords failed: %v", err)
		return
	}

	total := 0
	for _, landlord := range landlords {
		created, err := s.rentService.EnsureRentRecords(landlord.ID, now.Year(), int(now.Month()))
		if err != nil {
			log.WithError(err).Errorf("Rent scheduler: reconciliation failed for landlord %d", landlord.ID)
			continue
		}
		total += created
	}

	log.Infof("Rent scheduler: materialized %d records across %d landlords", total, len(landlords))
}

package services

import (
	"context"
	"log"
	"time"

	"shopno-backend/internal/adapters/persistence/models"
	"shopno-backend/internal/adapters/persistence/repositories"
	"shopno-backend/internal/core/domain"

	"github.com/robfig/cron/v3"
)

// ReminderService runs the daily deposit-due sweep. It only reads the
// ledger and logs the roster; collection itself stays a human act.
type ReminderService struct {
	memberRepo  repositories.Collection[models.Member]
	depositRepo repositories.Collection[models.Deposit]
	schedule    string
	cron        *cron.Cron
}

// NewReminderService creates a new reminder service
func NewReminderService(
	memberRepo repositories.Collection[models.Member],
	depositRepo repositories.Collection[models.Deposit],
	schedule string,
) *ReminderService {
	return &ReminderService{
		memberRepo:  memberRepo,
		depositRepo: depositRepo,
		schedule:    schedule,
	}
}

// Start schedules the sweep and begins the cron loop.
func (s *ReminderService) Start() error {
	s.cron = cron.New()

	_, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.runSweep(ctx, time.Now())
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("⏰ Deposit reminder scheduled [%s]", s.schedule)
	return nil
}

// Stop halts the cron loop and waits for a running sweep to finish.
func (s *ReminderService) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	log.Println("⏰ Deposit reminder stopped")
}

// runSweep logs every active member who has not deposited for the month
// of now.
func (s *ReminderService) runSweep(ctx context.Context, now time.Time) {
	members, err := s.memberRepo.List(ctx)
	if err != nil {
		log.Printf("⚠️ Reminder sweep: members fetch failed: %v", err)
		return
	}
	deposits, err := s.depositRepo.List(ctx)
	if err != nil {
		log.Printf("⚠️ Reminder sweep: deposits fetch failed: %v", err)
		return
	}

	month := int(now.Month())
	year := now.Year()

	paid := make(map[uint]struct{}, len(deposits))
	for _, d := range deposits {
		if d.Month == month && d.Year == year {
			paid[d.MemberID] = struct{}{}
		}
	}

	due := 0
	for _, m := range members {
		if m.Status != domain.MemberActive {
			continue
		}
		if _, ok := paid[m.ID]; ok {
			continue
		}
		due++
		log.Printf("🔔 Deposit due [%d/%d]: %s (%s)", month, year, m.Name, m.Phone)
	}

	log.Printf("⏰ Reminder sweep done [%d/%d]: %d member(s) due", month, year, due)
}

package service

import (
	"time"

	"gorm.io/gorm"

	"github.com/pageza/macrotrack/backend/internal/logging"
)

// Options configures the optional collaborators of New
type Options struct {
	JWTSecret string
	// Cache defaults to an in-process cache
	Cache SummaryCache
	// Store enables export archives when set
	Store        ObjectStore
	ExportURLTTL time.Duration
	Logger       logging.Logger
}

// Services is the wired set of application services
type Services struct {
	Notifier *Notifier
	Auth     *AuthService
	Goals    *GoalsService
	Meals    *MealService
	Summary  *SummaryService
	Export   *ExportService
}

// New wires every service over db. The summary service subscribes to the
// notifier so cached summaries follow each committed mutation.
func New(db *gorm.DB, opts Options) *Services {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	notifier := NewNotifier(logger)
	meals := NewMealService(db, notifier)
	goals := NewGoalsService(db, notifier)
	summary := NewSummaryService(meals, goals, opts.Cache, logger)
	notifier.Subscribe(summary.OnMutation)

	return &Services{
		Notifier: notifier,
		Auth:     NewAuthService(db, opts.JWTSecret, logger),
		Goals:    goals,
		Meals:    meals,
		Summary:  summary,
		Export:   NewExportService(meals, opts.Store, opts.ExportURLTTL),
	}
}

// Package dependency provides dependency injection for the application.
package dependency

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/category"
	"github.com/expense-tracker/backend/internal/application/usecase/expense"
	"github.com/expense-tracker/backend/internal/application/usecase/owner"
	"github.com/expense-tracker/backend/internal/application/usecase/stats"
	"github.com/expense-tracker/backend/internal/infra/db"
	"github.com/expense-tracker/backend/internal/infra/metrics"
	"github.com/expense-tracker/backend/internal/infra/server/router"
	"github.com/expense-tracker/backend/internal/integration/adapters"
	"github.com/expense-tracker/backend/internal/integration/cache"
	"github.com/expense-tracker/backend/internal/integration/email"
	"github.com/expense-tracker/backend/internal/integration/email/templates"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/expense-tracker/backend/internal/integration/messaging"
	"github.com/expense-tracker/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *db.Database
	Router      *router.Router
	Metrics     *metrics.Metrics
	EmailWorker *email.Worker

	closers []func() error
}

// Options overrides infrastructure clients. Nil fields are built from the config.
type Options struct {
	Redis       *redis.Client
	Publisher   adapter.EventPublisher
	EmailSender adapter.EmailSender
	Suggester   adapter.CategorySuggester
	Now         func() time.Time
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, database *db.Database, opts Options) (*Injector, error) {
	inj := &Injector{
		Config:  cfg,
		DB:      database,
		Metrics: metrics.New(),
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	defaultLimit, err := cfg.Budget.MonthlyLimit()
	if err != nil {
		return nil, err
	}

	// Create repositories
	gormDB := database.DB()
	ownerRepo := persistence.NewOwnerRepository(gormDB)
	expenseRepo := persistence.NewExpenseRepository(gormDB)
	emailQueueRepo := persistence.NewEmailQueueRepository(gormDB)

	// Create adapters/services
	statsCache := inj.buildStatsCache(cfg, opts.Redis)
	publisher := inj.buildPublisher(cfg, opts.Publisher)

	sender, err := buildEmailSender(cfg, opts.EmailSender)
	if err != nil {
		return nil, err
	}

	suggester := opts.Suggester
	if suggester == nil {
		suggester = adapters.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.Model)
	}

	verifier, err := adapters.NewIdentityVerifier(adapters.IdentityVerifierConfig{
		Issuer:          cfg.Auth.Issuer,
		Audience:        cfg.Auth.Audience,
		HMACSecret:      cfg.Auth.HMACSecret,
		RSAPublicKeyPEM: cfg.Auth.RSAPublicKeyPEM,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create identity verifier: %w", err)
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create email renderer: %w", err)
	}
	emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL)

	inj.EmailWorker = email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
		PollInterval:    cfg.Email.PollInterval,
		BatchSize:       cfg.Email.BatchSize,
		CleanupInterval: time.Hour,
		RetentionDays:   cfg.Email.RetentionDays,
	})

	// Create stats use cases
	loader := stats.NewMonthlyLoader(expenseRepo, statsCache)
	budgetMonitor := stats.NewBudgetMonitor(ownerRepo, loader, emailService, inj.Metrics)
	getMonthlyStatsUseCase := stats.NewGetMonthlyStatsUseCase(loader)
	getBudgetAlertUseCase := stats.NewGetBudgetAlertUseCase(ownerRepo, loader)
	getSpendingPatternsUseCase := stats.NewGetSpendingPatternsUseCase(expenseRepo, opts.Now)

	// Create expense use cases
	effects := expense.NewWriteEffects(statsCache, publisher, inj.Metrics, budgetMonitor)
	createExpenseUseCase := expense.NewCreateExpenseUseCase(expenseRepo, ownerRepo, effects)
	listExpensesUseCase := expense.NewListExpensesUseCase(expenseRepo)
	getExpenseUseCase := expense.NewGetExpenseUseCase(expenseRepo)
	updateExpenseUseCase := expense.NewUpdateExpenseUseCase(expenseRepo, effects)
	deleteExpenseUseCase := expense.NewDeleteExpenseUseCase(expenseRepo, effects)
	suggestCategoryUseCase := expense.NewSuggestCategoryUseCase(suggester)

	// Create owner use cases
	resolveOwnerUseCase := owner.NewResolveOwnerUseCase(ownerRepo, defaultLimit, cfg.Budget.DefaultCurrency)
	getProfileUseCase := owner.NewGetProfileUseCase(ownerRepo)
	updateProfileUseCase := owner.NewUpdateProfileUseCase(ownerRepo)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(expenseRepo)

	// Create controllers
	healthController := controller.NewHealthController(database.HealthCheck)

	expenseController := controller.NewExpenseController(
		createExpenseUseCase,
		listExpensesUseCase,
		getExpenseUseCase,
		updateExpenseUseCase,
		deleteExpenseUseCase,
		suggestCategoryUseCase,
	)

	statsController := controller.NewStatsController(
		getMonthlyStatsUseCase,
		getBudgetAlertUseCase,
		getSpendingPatternsUseCase,
		opts.Now,
	)

	profileController := controller.NewProfileController(
		getProfileUseCase,
		updateProfileUseCase,
	)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
	)

	// Create middleware
	authMiddleware := middleware.NewAuthMiddleware(verifier, resolveOwnerUseCase)
	suggestRateLimiter := middleware.NewRateLimiterWithConfig(cfg.AI.SuggestRateLimit, cfg.AI.SuggestWindow)

	// Create router
	inj.Router = router.NewRouter(
		healthController,
		profileController,
		categoryController,
		expenseController,
		statsController,
		suggestRateLimiter,
		authMiddleware,
		inj.Metrics,
	)

	return inj, nil
}

func buildEmailSender(cfg *config.Config, sender adapter.EmailSender) (adapter.EmailSender, error) {
	if sender != nil {
		return sender, nil
	}
	if cfg.Email.ResendAPIKey == "" {
		slog.Warn("RESEND_API_KEY not set, budget alert emails are only logged")
		return email.NewMockEmailSender(), nil
	}
	if cfg.Email.ResendBaseURL != "" {
		return email.NewResendClientWithBaseURL(cfg.Email.ResendAPIKey, cfg.Email.ResendBaseURL, cfg.Email.FromName, cfg.Email.FromEmail)
	}
	return email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail), nil
}

func (inj *Injector) buildStatsCache(cfg *config.Config, client *redis.Client) adapter.StatsCache {
	if client == nil {
		if !cfg.Redis.Enabled {
			return nil
		}
		options, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			slog.Warn("Invalid REDIS_URL, stats cache disabled", "error", err)
			return nil
		}
		if cfg.Redis.Password != "" {
			options.Password = cfg.Redis.Password
		}
		client = redis.NewClient(options)
		inj.closers = append(inj.closers, client.Close)
	}

	slog.Info("Stats cache enabled", "ttl", cfg.Redis.StatsTTL)
	return cache.NewRedisStatsCache(client, cfg.Redis.StatsTTL)
}

func (inj *Injector) buildPublisher(cfg *config.Config, publisher adapter.EventPublisher) adapter.EventPublisher {
	if publisher != nil {
		return publisher
	}
	if cfg.AMQP.URL == "" {
		return messaging.NoopPublisher{}
	}

	amqpPublisher, err := messaging.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
	if err != nil {
		slog.Warn("AMQP broker unavailable, expense events are dropped", "error", err)
		return messaging.NoopPublisher{}
	}
	inj.closers = append(inj.closers, amqpPublisher.Close)
	return amqpPublisher
}

// Close releases the clients the injector opened.
func (inj *Injector) Close() error {
	var errs []error
	for i := len(inj.closers) - 1; i >= 0; i-- {
		if err := inj.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

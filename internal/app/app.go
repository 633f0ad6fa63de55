package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/visionhub/internal/app/handlers/http/begin_attempt_handler"
	"github.com/IT-Nick/visionhub/internal/app/handlers/http/dashboard_handler"
	"github.com/IT-Nick/visionhub/internal/app/handlers/http/deactivate_module_handler"
	"github.com/IT-Nick/visionhub/internal/app/handlers/http/list_modules_handler"
	"github.com/IT-Nick/visionhub/internal/app/handlers/http/module_link_handler"
	"github.com/IT-Nick/visionhub/internal/app/handlers/http/record_answers_handler"
	"github.com/IT-Nick/visionhub/internal/app/handlers/http/team_overview_handler"
	"github.com/IT-Nick/visionhub/internal/app/handlers/http/team_report_handler"
	"github.com/IT-Nick/visionhub/internal/app/handlers/http/user_dashboard_handler"
	"github.com/IT-Nick/visionhub/internal/app/handlers/telegram/answer_handler"
	botDashboard "github.com/IT-Nick/visionhub/internal/app/handlers/telegram/dashboard_handler"
	"github.com/IT-Nick/visionhub/internal/app/handlers/telegram/open_module_handler"
	"github.com/IT-Nick/visionhub/internal/app/handlers/telegram/start_handler"
	"github.com/IT-Nick/visionhub/internal/app/handlers/telegram/submit_handler"
	"github.com/IT-Nick/visionhub/internal/app/middleware"
	"github.com/IT-Nick/visionhub/internal/app/poller"
	catalogService "github.com/IT-Nick/visionhub/internal/domain/catalog/service"
	msgService "github.com/IT-Nick/visionhub/internal/domain/messages/service"
	"github.com/IT-Nick/visionhub/internal/domain/model"
	onboardingService "github.com/IT-Nick/visionhub/internal/domain/onboarding/service"
	progressService "github.com/IT-Nick/visionhub/internal/domain/progress/service"
	reportsService "github.com/IT-Nick/visionhub/internal/domain/reports/service"
	usersService "github.com/IT-Nick/visionhub/internal/domain/users/service"
	"github.com/IT-Nick/visionhub/internal/infra/config"
	"github.com/IT-Nick/visionhub/internal/infra/metrics"
	"github.com/IT-Nick/visionhub/internal/infra/postgres"
	"github.com/IT-Nick/visionhub/internal/storage"
	"github.com/IT-Nick/visionhub/internal/storage/memory"
	pgStore "github.com/IT-Nick/visionhub/internal/storage/postgres"
)

type Services struct {
	userService    *usersService.UserService
	messageService *msgService.MessageService
	catalogService *catalogService.CatalogService
	attemptService *progressService.AttemptService
	classifier     *progressService.Classifier
	reportService  *reportsService.ReportService
}

type App struct {
	config  *config.Config
	logger  *log.Logger
	store   storage.Store
	metrics *metrics.Metrics
	bot     *telebot.Bot
	server  *http.Server

	Services
}

// NewApp читает конфигурацию, открывает хранилище и импортирует начальные данные
func NewApp(configPath string) (*App, error) {
	configImpl, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("config.LoadConfig: %w", err)
	}

	logger := log.New(os.Stdout, "[visionhub] ", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := OpenStore(ctx, configImpl, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	app := New(configImpl, store, logger, prometheus.NewRegistry())

	if err := app.Seed(ctx); err != nil {
		store.Close()
		return nil, err
	}

	return app, nil
}

// New собирает приложение поверх готового хранилища
func New(cfg *config.Config, store storage.Store, logger *log.Logger, registry *prometheus.Registry) *App {
	app := &App{
		config:  cfg,
		logger:  logger,
		store:   store,
		metrics: metrics.NewMetrics(registry),
	}

	app.initServices()

	return app
}

// OpenStore открывает хранилище выбранного в конфигурации типа
func OpenStore(ctx context.Context, cfg *config.Config, logger *log.Logger) (storage.Store, error) {
	switch cfg.Storage.Type {
	case config.StorageMemory:
		logger.Println("using in-memory storage")
		return memory.NewStore(), nil
	case config.StorageJSON:
		logger.Printf("using JSON storage %s", cfg.Storage.SnapshotPath)
		return memory.NewJSONStore(cfg.Storage.SnapshotPath)
	case config.StoragePostgres:
		db, err := postgres.Connect(ctx, postgres.Settings{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			Name:     cfg.Database.Name,
		}, logger)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		return pgStore.NewStore(db), nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Storage.Type)
	}
}

// Функция для инициализации сервисов
func (app *App) initServices() {
	evaluator := progressService.NewEvaluator(app.config.Training.PassingThreshold)

	app.userService = usersService.NewUserService(app.store)
	app.messageService = msgService.NewMessageService(app.config.TelegramBot.Messages)
	app.catalogService = catalogService.NewCatalogService(app.store, app.logger)
	app.attemptService = progressService.NewAttemptService(app.store, evaluator, app.logger, app.metrics)
	app.classifier = progressService.NewClassifier(app.store, onboardingService.NewPathResolver(), evaluator)
	app.reportService = reportsService.NewReportService(app.store, app.userService, app.classifier, app.config.Reports.FontDir)
}

// Seed импортирует каталог модулей и пользователей из файлов, указанных в конфигурации.
// Повторный импорт пропускает уже существующие записи.
func (app *App) Seed(ctx context.Context) error {
	if path := app.config.Catalog.SeedPath; path != "" {
		result, err := app.catalogService.ImportFile(ctx, path)
		if err != nil {
			return fmt.Errorf("failed to import catalog %s: %w", path, err)
		}
		app.logger.Printf("catalog %s: %d modules created, %d skipped", path, len(result.Created), len(result.Skipped))
	}

	if path := app.config.Catalog.UsersSeedPath; path != "" {
		result, err := app.userService.ImportFile(ctx, path)
		if err != nil {
			return fmt.Errorf("failed to import users %s: %w", path, err)
		}
		app.logger.Printf("users %s: %d created, %d skipped", path, len(result.Created), len(result.Skipped))
	}

	return nil
}

// ListenAndServeTelegram запускает сервер Telegram бота
func (app *App) ListenAndServeTelegram() error {
	if !app.config.TelegramBot.Enabled {
		app.logger.Println("telegram bot disabled")
		return nil
	}

	p, err := poller.NewPoller(app.config)
	if err != nil {
		return fmt.Errorf("poller.NewPoller: %w", err)
	}

	bot, err := telebot.NewBot(telebot.Settings{
		Token:  app.config.TelegramBot.Token,
		Poller: p,
		OnError: func(err error, c telebot.Context) {
			app.logger.Printf("telegram error: %v", err)
		},
	})
	if err != nil {
		return fmt.Errorf("telebot.NewBot: %w", err)
	}
	app.bot = bot

	app.bootstrapHandlersTelegram()

	go app.bot.Start()

	return nil
}

// bootstrapHandlersTelegram - регистрирует обработчики для бота
func (app *App) bootstrapHandlersTelegram() {
	app.bot.Use(middleware.BotRecover(func(err error, c telebot.Context) {
		app.logger.Printf("telegram handler panic: %v", err)
	}))
	if app.config.TelegramBot.Debug {
		app.bot.Use(middleware.BotLogger(app.logger))
	}

	dashboard := botDashboard.NewDashboardHandler(app.userService, app.classifier, app.messageService, app.logger)
	openModule := open_module_handler.NewOpenModuleHandler(app.userService, app.catalogService, app.attemptService, app.messageService, app.logger)

	app.bot.Handle("/start", start_handler.NewStartHandler(app.userService, app.messageService, dashboard, openModule, app.logger).GetHandlerFunc())
	app.bot.Handle("/training", dashboard.GetHandlerFunc())

	// Inline-кнопки. Unique совпадает с константами model, данные разбирает пакет view.
	app.bot.Handle(&telebot.InlineButton{Unique: model.DashboardKey}, dashboard.GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: model.OpenModuleKey}, openModule.GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: model.AnswerKey},
		answer_handler.NewAnswerHandler(app.userService, app.attemptService, app.messageService, app.logger).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: model.SubmitKey},
		submit_handler.NewSubmitHandler(app.userService, app.attemptService, app.messageService, app.logger).GetHandlerFunc())
}

// Router возвращает маршрутизатор HTTP API
func (app *App) Router() http.Handler {
	validate := validator.New()

	r := mux.NewRouter()
	r.Use(middleware.Recover(app.logger), middleware.RequestID, middleware.Logger(app.logger, app.metrics))

	r.Handle("/metrics", app.metrics.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api := r.NewRoute().Subrouter()
	api.Use(middleware.Auth(app.config.Auth.JWTSecret))

	api.Handle("/training/dashboard", dashboard_handler.NewDashboardHandler(app.classifier, app.logger)).Methods(http.MethodGet)
	api.Handle("/users/{id:[0-9]+}/dashboard", user_dashboard_handler.NewUserDashboardHandler(app.classifier, app.logger)).Methods(http.MethodGet)

	api.Handle("/modules", list_modules_handler.NewListModulesHandler(app.catalogService, app.logger)).Methods(http.MethodGet)
	api.Handle("/modules/{id:[0-9]+}", deactivate_module_handler.NewDeactivateModuleHandler(app.catalogService, app.logger)).Methods(http.MethodDelete)
	api.Handle("/modules/{id:[0-9]+}/attempts", begin_attempt_handler.NewBeginAttemptHandler(app.attemptService, app.logger)).Methods(http.MethodPost)
	api.Handle("/modules/{id:[0-9]+}/link",
		module_link_handler.NewModuleLinkHandler(app.catalogService, app.config.TelegramBot.Username, app.logger)).Methods(http.MethodPost)
	api.Handle("/attempts/{id:[0-9]+}/answers",
		record_answers_handler.NewRecordAnswersHandler(app.attemptService, validate, app.logger)).Methods(http.MethodPost)

	api.Handle("/team/overview", team_overview_handler.NewTeamOverviewHandler(app.reportService, app.logger)).Methods(http.MethodGet)
	api.Handle("/team/report.pdf", team_report_handler.NewTeamReportHandler(app.reportService, app.logger)).Methods(http.MethodGet)

	return r
}

// ListenAndServeHTTP запускает HTTP сервер
func (app *App) ListenAndServeHTTP() error {
	app.server = &http.Server{
		Addr:              app.config.Addr(),
		Handler:           app.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	app.logger.Printf("HTTP server listening on %s", app.server.Addr)
	if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAndServe запускает оба сервера (Telegram и HTTP)
func (app *App) ListenAndServe() error {
	// Запускаем Telegram сервер
	if err := app.ListenAndServeTelegram(); err != nil {
		return fmt.Errorf("failed to start Telegram bot: %w", err)
	}

	// Запускаем HTTP сервер
	if err := app.ListenAndServeHTTP(); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Shutdown останавливает бота и HTTP сервер и закрывает хранилище
func (app *App) Shutdown(ctx context.Context) error {
	if app.bot != nil {
		app.bot.Stop()
	}

	var err error
	if app.server != nil {
		err = app.server.Shutdown(ctx)
	}
	app.store.Close()
	return err
}

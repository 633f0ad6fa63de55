// Package handlertest собирает окружение для тестов обработчиков HTTP и Telegram:
// хранилище в памяти, сервисы и пользователей всех ролей.
package handlertest

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/IT-Nick/visionhub/internal/app/middleware"
	catalogService "github.com/IT-Nick/visionhub/internal/domain/catalog/service"
	"github.com/IT-Nick/visionhub/internal/domain/model"
	onboardingService "github.com/IT-Nick/visionhub/internal/domain/onboarding/service"
	progressService "github.com/IT-Nick/visionhub/internal/domain/progress/service"
	reportsService "github.com/IT-Nick/visionhub/internal/domain/reports/service"
	usersService "github.com/IT-Nick/visionhub/internal/domain/users/service"
	"github.com/IT-Nick/visionhub/internal/storage/memory"
)

const (
	PathName = "Новые сотрудники"
	// StaffTelegram username сотрудника Staff в Telegram
	StaffTelegram = "anna_tg"
	// ManagerTelegram username руководителя Manager в Telegram
	ManagerTelegram = "irina_tg"
)

type Env struct {
	Store      *memory.Store
	Logger     *log.Logger
	Attempts   *progressService.AttemptService
	Classifier *progressService.Classifier
	Catalog    *catalogService.CatalogService
	Users      *usersService.UserService
	Reports    *reportsService.ReportService

	Staff    model.Identity
	Outsider model.Identity
	Manager  model.Identity
	Admin    model.Identity

	// Module модуль Safety 101 из двух вопросов, назначенный Staff
	Module *model.TrainingModule
}

// NewEnv создает окружение с одним модулем в пути онбординга
func NewEnv(t *testing.T) *Env {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	logger := log.New(io.Discard, "", 0)

	env := &Env{Store: store, Logger: logger}
	env.Catalog = catalogService.NewCatalogService(store, logger)

	result, err := env.Catalog.Import(ctx, []catalogService.ModuleSpec{{
		Title:       "Safety 101",
		Description: "Основы техники безопасности",
		Paths:       []string{PathName},
		Questions: []catalogService.QuestionSpec{
			{Text: "Где выход?", Options: []catalogService.OptionSpec{{Text: "Слева", Correct: true}, {Text: "Справа"}}},
			{Text: "Куда звонить?", Options: []catalogService.OptionSpec{{Text: "112", Correct: true}, {Text: "100"}}},
		},
	}})
	require.NoError(t, err)
	require.Len(t, result.Created, 1)

	env.Module, err = store.Catalog().GetModule(ctx, result.Created[0])
	require.NoError(t, err)
	path, err := store.Paths().GetPathByName(ctx, PathName)
	require.NoError(t, err)
	require.NotNil(t, path)

	staffTelegram, managerTelegram := StaffTelegram, ManagerTelegram
	managerID, err := store.Users().CreateUser(ctx, &model.User{Username: "manager", FirstName: "Ирина", Role: model.RoleManager, TelegramUsername: &managerTelegram})
	require.NoError(t, err)
	adminID, err := store.Users().CreateUser(ctx, &model.User{Username: "admin", FirstName: "Олег", Role: model.RoleAdmin})
	require.NoError(t, err)
	staffID, err := store.Users().CreateUser(ctx, &model.User{
		Username:         "anna",
		FirstName:        "Анна",
		Role:             model.RoleStaff,
		ManagerID:        &managerID,
		OnboardingPathID: &path.ID,
		TelegramUsername: &staffTelegram,
		IsOnboarding:     true,
	})
	require.NoError(t, err)
	outsiderID, err := store.Users().CreateUser(ctx, &model.User{Username: "petr", FirstName: "Петр", Role: model.RoleStaff})
	require.NoError(t, err)

	env.Staff = model.Identity{UserID: staffID, Role: model.RoleStaff}
	env.Outsider = model.Identity{UserID: outsiderID, Role: model.RoleStaff}
	env.Manager = model.Identity{UserID: managerID, Role: model.RoleManager}
	env.Admin = model.Identity{UserID: adminID, Role: model.RoleAdmin}

	evaluator := progressService.NewEvaluator(progressService.DefaultPassingThreshold)
	env.Attempts = progressService.NewAttemptService(store, evaluator, logger, nil)
	env.Classifier = progressService.NewClassifier(store, onboardingService.NewPathResolver(), evaluator)
	env.Users = usersService.NewUserService(store)
	env.Reports = reportsService.NewReportService(store, env.Users, env.Classifier, "")

	return env
}

// Request создает запрос с идентификатором пользователя и переменными маршрута.
// identity nil означает неаутентифицированный запрос.
func Request(method, target string, body io.Reader, identity *model.Identity, vars map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)
	if identity != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), *identity))
	}
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req
}

// Serve выполняет запрос и возвращает записанный ответ
func Serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

package service

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IT-Nick/visionhub/internal/domain/model"
	onboardingService "github.com/IT-Nick/visionhub/internal/domain/onboarding/service"
	progressService "github.com/IT-Nick/visionhub/internal/domain/progress/service"
	usersService "github.com/IT-Nick/visionhub/internal/domain/users/service"
	"github.com/IT-Nick/visionhub/internal/storage/memory"
)

type team struct {
	svc      *ReportService
	manager  model.Identity
	admin    model.Identity
	staff    model.Identity
	moduleID int
}

func newTeam(t *testing.T) *team {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	moduleID, err := store.Catalog().CreateModule(ctx, &model.TrainingModule{
		Title:  "Safety 101",
		Active: true,
		Questions: []model.Question{
			{Text: "Q", Options: []model.Option{{Text: "A", IsCorrect: true}, {Text: "B"}}},
		},
	})
	require.NoError(t, err)
	pathID, err := store.Paths().CreatePath(ctx, "Новые сотрудники")
	require.NoError(t, err)
	_, err = store.Paths().AddStep(ctx, pathID, "Safety", moduleID)
	require.NoError(t, err)

	managerID, err := store.Users().CreateUser(ctx, &model.User{Username: "boss", Role: model.RoleManager})
	require.NoError(t, err)
	adminID, err := store.Users().CreateUser(ctx, &model.User{Username: "root", Role: model.RoleAdmin})
	require.NoError(t, err)
	staffID, err := store.Users().CreateUser(ctx, &model.User{
		Username: "anna", FirstName: "Анна", Surname: "Иванова", JobTitle: "Кладовщик",
		Role: model.RoleStaff, ManagerID: &managerID, OnboardingPathID: &pathID,
	})
	require.NoError(t, err)
	_, err = store.Users().CreateUser(ctx, &model.User{Username: "petr", Role: model.RoleStaff, OnboardingPathID: &pathID})
	require.NoError(t, err)

	evaluator := progressService.NewEvaluator(progressService.DefaultPassingThreshold)
	classifier := progressService.NewClassifier(store, onboardingService.NewPathResolver(), evaluator)
	svc := NewReportService(store, usersService.NewUserService(store), classifier, "")

	return &team{
		svc:      svc,
		manager:  model.Identity{UserID: managerID, Role: model.RoleManager},
		admin:    model.Identity{UserID: adminID, Role: model.RoleAdmin},
		staff:    model.Identity{UserID: staffID, Role: model.RoleStaff},
		moduleID: moduleID,
	}
}

func TestTeamOverview_ManagerSeesDirectReports(t *testing.T) {
	tm := newTeam(t)

	overview, err := tm.svc.TeamOverview(context.Background(), tm.manager)
	require.NoError(t, err)

	require.Equal(t, 1, overview.TotalStaff)
	p := overview.Staff[0]
	assert.Equal(t, "Анна Иванова", p.FullName)
	assert.Equal(t, 1, p.ToDo)
	assert.Equal(t, 1, p.Total)
}

func TestTeamOverview_AdminSeesAllStaff(t *testing.T) {
	tm := newTeam(t)

	overview, err := tm.svc.TeamOverview(context.Background(), tm.admin)
	require.NoError(t, err)
	assert.Equal(t, 2, overview.TotalStaff)
}

func TestTeamOverview_StaffForbidden(t *testing.T) {
	tm := newTeam(t)

	_, err := tm.svc.TeamOverview(context.Background(), tm.staff)
	assert.ErrorIs(t, err, model.ErrForbidden)

	var buf bytes.Buffer
	err = tm.svc.CompletionPDF(context.Background(), tm.staff, &buf)
	assert.ErrorIs(t, err, model.ErrForbidden)
	assert.Zero(t, buf.Len())
}

func TestCompletionPDF(t *testing.T) {
	tm := newTeam(t)

	var buf bytes.Buffer
	require.NoError(t, tm.svc.CompletionPDF(context.Background(), tm.admin, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	// Кириллица выводится встроенным UTF-8 шрифтом, а не базовым WinAnsi
	assert.Contains(t, buf.String(), "/Encoding /Identity-H")
	assert.Contains(t, buf.String(), "/Subtype /CIDFontType2")
	assert.NotContains(t, buf.String(), "/BaseFont /Helvetica")
}

func TestCompletionPDF_MissingFontDir(t *testing.T) {
	tm := newTeam(t)
	tm.svc.fontDir = filepath.Join(t.TempDir(), "fonts")

	var buf bytes.Buffer
	err := tm.svc.CompletionPDF(context.Background(), tm.admin, &buf)
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}

package dashboard_handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IT-Nick/visionhub/internal/app/handlers/handlertest"
	"github.com/IT-Nick/visionhub/internal/domain/dto"
)

func TestDashboardHandler(t *testing.T) {
	env := handlertest.NewEnv(t)
	h := NewDashboardHandler(env.Classifier, env.Logger)

	rec := handlertest.Serve(h, handlertest.Request(http.MethodGet, "/training/dashboard", nil, &env.Staff, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var dashboard dto.DashboardResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dashboard))
	require.Len(t, dashboard.ToDo, 1)
	assert.Equal(t, env.Module.ID, dashboard.ToDo[0].ModuleID)
	assert.Empty(t, dashboard.InProgress)
	assert.Empty(t, dashboard.Completed)
}

func TestDashboardHandler_Errors(t *testing.T) {
	env := handlertest.NewEnv(t)
	h := NewDashboardHandler(env.Classifier, env.Logger)

	rec := handlertest.Serve(h, handlertest.Request(http.MethodGet, "/training/dashboard", nil, nil, nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Собственный дашборд есть только у сотрудников
	rec = handlertest.Serve(h, handlertest.Request(http.MethodGet, "/training/dashboard", nil, &env.Manager, nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

package team_overview_handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IT-Nick/visionhub/internal/app/handlers/handlertest"
	"github.com/IT-Nick/visionhub/internal/domain/dto"
)

func TestTeamOverviewHandler(t *testing.T) {
	env := handlertest.NewEnv(t)
	h := NewTeamOverviewHandler(env.Reports, env.Logger)

	rec := handlertest.Serve(h, handlertest.Request(http.MethodGet, "/reports/team", nil, &env.Manager, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var overview dto.TeamOverviewResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&overview))
	require.Equal(t, 1, overview.TotalStaff)
	assert.Equal(t, "anna", overview.Staff[0].Username)
	assert.Equal(t, 1, overview.Staff[0].ToDo)

	rec = handlertest.Serve(h, handlertest.Request(http.MethodGet, "/reports/team", nil, &env.Admin, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&overview))
	assert.Equal(t, 2, overview.TotalStaff)

	rec = handlertest.Serve(h, handlertest.Request(http.MethodGet, "/reports/team", nil, &env.Staff, nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

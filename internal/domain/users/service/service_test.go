package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IT-Nick/visionhub/internal/domain/model"
	"github.com/IT-Nick/visionhub/internal/storage/memory"
)

func TestImportFile_Example(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	s := NewUserService(store)

	result, err := s.ImportFile(ctx, "../../../../configs/users_example.yaml")
	require.NoError(t, err)
	assert.Len(t, result.Created, 4)
	assert.Empty(t, result.Skipped)

	user, identity, err := s.IdentityByTelegram(ctx, "anna_ivanova")
	require.NoError(t, err)
	assert.Equal(t, model.RoleStaff, identity.Role)
	assert.True(t, user.IsOnboarding)
	require.NotNil(t, user.ManagerID)
	require.NotNil(t, user.OnboardingPathID)

	path, err := store.Paths().GetPathByName(ctx, "Склад")
	require.NoError(t, err)
	assert.Equal(t, path.ID, *user.OnboardingPathID)

	manager, err := store.Users().GetUserByUsername(ctx, "i.petrova")
	require.NoError(t, err)
	team, err := s.VisibleStaff(ctx, model.Identity{UserID: manager.ID, Role: model.RoleManager})
	require.NoError(t, err)
	assert.Len(t, team, 2)

	// Повторный импорт ничего не меняет
	result, err = s.ImportFile(ctx, "../../../../configs/users_example.yaml")
	require.NoError(t, err)
	assert.Empty(t, result.Created)
	assert.Len(t, result.Skipped, 4)
}

func TestImport_Validation(t *testing.T) {
	tests := []struct {
		name  string
		specs []UserSpec
	}{
		{name: "неизвестная роль", specs: []UserSpec{{Username: "a", FirstName: "A", Role: "root"}}},
		{name: "без имени", specs: []UserSpec{{Username: "a", Role: "staff"}}},
		{name: "неизвестный руководитель", specs: []UserSpec{{Username: "a", FirstName: "A", Role: "staff", Manager: "ghost"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewStore()
			_, err := NewUserService(store).Import(context.Background(), tt.specs)
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrValidation)

			staff, err := store.Users().ListStaff(context.Background())
			require.NoError(t, err)
			assert.Empty(t, staff)
		})
	}
}

func TestImportFile_Malformed(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "users.yaml")
	require.NoError(t, os.WriteFile(filename, []byte("users: [\n"), 0644))

	_, err := NewUserService(memory.NewStore()).ImportFile(context.Background(), filename)
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestIdentityByTelegram_Unknown(t *testing.T) {
	_, _, err := NewUserService(memory.NewStore()).IdentityByTelegram(context.Background(), "nobody")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestVisibleStaff_StaffForbidden(t *testing.T) {
	_, err := NewUserService(memory.NewStore()).VisibleStaff(context.Background(), model.Identity{UserID: 1, Role: model.RoleStaff})
	assert.ErrorIs(t, err, model.ErrForbidden)
}

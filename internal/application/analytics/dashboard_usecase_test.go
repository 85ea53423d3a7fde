package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/application/analytics"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/memory"
)

func seedProjects(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()
	for i, p := range []struct{ owner, status string }{
		{"emp-1", entity.ProjectPendingApproval},
		{"emp-1", entity.ProjectApproved},
		{"emp-1", entity.ProjectInProgress},
		{"emp-1", entity.ProjectRejected},
		{"emp-2", entity.ProjectPendingApproval},
		{"emp-2", entity.ProjectWon},
	} {
		require.NoError(t, store.Repos().Projects.Create(ctx, &entity.Project{
			ID: string(rune('a' + i)), CreatedByUserID: p.owner, ProjectName: "P", Status: p.status,
			CreatedAt: now, UpdatedAt: now,
		}))
	}
}

func TestProjectStats_ManagerSeesAll(t *testing.T) {
	store := memory.NewStore()
	seedProjects(t, store)
	uc := analytics.NewDashboardUseCase(store.Analytics())

	for _, role := range []string{entity.RoleAdmin, entity.RoleSalesManager} {
		got, err := uc.ProjectStats(context.Background(), entity.Actor{UserID: "x", Role: role})
		require.NoError(t, err)
		assert.Equal(t, 6, got.Total)
		assert.Equal(t, 2, got.PendingApproval)
		assert.Equal(t, 2, got.Active)
		assert.Equal(t, 1, got.Rejected)
		assert.Equal(t, 1, got.ByStatus[entity.ProjectWon])
		assert.Len(t, got.ByStatus, len(entity.ProjectStatuses))
	}
}

func TestProjectStats_EmployeeSeesOwnOnly(t *testing.T) {
	store := memory.NewStore()
	seedProjects(t, store)
	uc := analytics.NewDashboardUseCase(store.Analytics())

	got, err := uc.ProjectStats(context.Background(), entity.Actor{UserID: "emp-2", Role: entity.RoleEmployee})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, 1, got.PendingApproval)
	assert.Equal(t, 0, got.Active)
	assert.Equal(t, 1, got.ByStatus[entity.ProjectWon])
	assert.Equal(t, 0, got.ByStatus[entity.ProjectRejected])
}

func TestProjectStats_UnknownRoleForbidden(t *testing.T) {
	uc := analytics.NewDashboardUseCase(memory.NewStore().Analytics())
	_, err := uc.ProjectStats(context.Background(), entity.Actor{UserID: "x", Role: "guest"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

type failingAnalytics struct{}

func (failingAnalytics) ProjectCountsByStatus(context.Context, string) ([]repository.StatusCount, error) {
	return nil, errors.New("db caída")
}

func TestProjectStats_RepositoryError(t *testing.T) {
	uc := analytics.NewDashboardUseCase(failingAnalytics{})
	_, err := uc.ProjectStats(context.Background(), entity.Actor{UserID: "adm", Role: entity.RoleAdmin})
	assert.EqualError(t, err, "db caída")
}

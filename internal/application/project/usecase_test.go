package project_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/ports"
	"github.com/jhoicas/Cotizador-api/internal/application/project"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/memory"
)

var (
	employee = entity.Actor{UserID: "emp-1", Role: entity.RoleEmployee}
	other    = entity.Actor{UserID: "emp-2", Role: entity.RoleEmployee}
	manager  = entity.Actor{UserID: "sm-1", Role: entity.RoleSalesManager}
	admin    = entity.Actor{UserID: "adm-1", Role: entity.RoleAdmin}
)

func newUseCase() (*project.ProjectUseCase, ports.TxRepos) {
	store := memory.NewStore()
	repos := store.Repos()
	uc := project.NewProjectUseCase(memory.NewTxRunner(store), repos.Projects, repos.History, repos.Comments, repos.Inquiries)
	return uc, repos
}

func validRequest() dto.CreateProjectRequest {
	lat, lng := 35.6892, 51.3890
	return dto.CreateProjectRequest{
		ProjectName:  "Torre Norte",
		EmployerName: "Constructora Alborz",
		ProjectType:  "commercial",
		AddressText:  "Av. Valiasr 120",
		Latitude:     &lat,
		Longitude:    &lng,
	}
}

func TestCreate_OnlyEmployee(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	_, err := uc.Create(ctx, manager, validRequest())
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Create(ctx, admin, validRequest())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	p, err := uc.Create(ctx, employee, validRequest())
	require.NoError(t, err)
	assert.Equal(t, entity.ProjectPendingApproval, p.Status)
	assert.Equal(t, employee.UserID, p.CreatedByUserID)
}

func TestCreate_Validation(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	in := validRequest()
	in.ProjectName = "  "
	_, err := uc.Create(ctx, employee, in)
	assert.ErrorIs(t, err, domain.ErrValidation)

	in = validRequest()
	in.Latitude = nil
	_, err = uc.Create(ctx, employee, in)
	assert.ErrorIs(t, err, domain.ErrValidation)

	// varios campos vacíos: siempre se informa el primero
	in = validRequest()
	in.EmployerName, in.AddressText = "", ""
	for i := 0; i < 5; i++ {
		_, err = uc.Create(ctx, employee, in)
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Contains(t, err.Error(), "employer_name")
	}

	in = validRequest()
	bad := 95.0
	in.Latitude = &bad
	_, err = uc.Create(ctx, employee, in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreate_RecordsHistoryAndAudit(t *testing.T) {
	uc, repos := newUseCase()
	ctx := context.Background()

	p, err := uc.Create(ctx, employee, validRequest())
	require.NoError(t, err)

	h, err := repos.History.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, h, 1)
	assert.Equal(t, "", h[0].FromStatus)
	assert.Equal(t, entity.ProjectPendingApproval, h[0].ToStatus)

	logs, err := repos.Audit.ListByEntity(ctx, "project", p.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.AuditProjectCreate, logs[0].Action)
}

func TestDecide_RejectRequiresNote(t *testing.T) {
	uc, repos := newUseCase()
	ctx := context.Background()
	p, err := uc.Create(ctx, employee, validRequest())
	require.NoError(t, err)

	_, err = uc.Decide(ctx, manager, p.ID, false, "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	got, err := uc.Decide(ctx, manager, p.ID, false, "too far")
	require.NoError(t, err)
	assert.Equal(t, entity.ProjectRejected, got.Status)
	assert.Equal(t, "too far", got.ApprovalNote)
	require.NotNil(t, got.ApprovalDecisionBy)
	assert.Equal(t, manager.UserID, *got.ApprovalDecisionBy)
	assert.NotNil(t, got.ApprovalDecisionAt)

	h, err := repos.History.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, h, 2)
	assert.Equal(t, "too far", h[1].Note)

	comments, err := repos.Comments.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.True(t, comments[0].IsSystem)
}

func TestDecide_EmployeeForbidden(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	p, err := uc.Create(ctx, employee, validRequest())
	require.NoError(t, err)

	_, err = uc.Decide(ctx, employee, p.ID, true, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDecide_NotFound(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.Decide(context.Background(), admin, "missing", true, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChangeStatus_Transitions(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	p, err := uc.Create(ctx, employee, validRequest())
	require.NoError(t, err)

	// pending_approval -> quoted no está permitido
	_, err = uc.ChangeStatus(ctx, admin, p.ID, entity.ProjectQuoted, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Decide(ctx, admin, p.ID, true, "")
	require.NoError(t, err)

	for _, s := range []string{entity.ProjectInProgress, entity.ProjectQuoted, entity.ProjectWon} {
		got, err := uc.ChangeStatus(ctx, manager, p.ID, s, "")
		require.NoError(t, err)
		assert.Equal(t, s, got.Status)
	}

	// won es terminal
	_, err = uc.ChangeStatus(ctx, admin, p.ID, entity.ProjectLost, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = uc.ChangeStatus(ctx, admin, p.ID, "archived", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReadGuard(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	p, err := uc.Create(ctx, employee, validRequest())
	require.NoError(t, err)

	_, err = uc.Get(ctx, other, p.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Detail(ctx, other, p.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.ListComments(ctx, other, p.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.AddComment(ctx, other, p.ID, dto.CommentRequest{Body: "hola"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Get(ctx, employee, p.ID)
	assert.NoError(t, err)
	_, err = uc.Get(ctx, manager, p.ID)
	assert.NoError(t, err)

	_, err = uc.Get(ctx, admin, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_EmployeeSeesOwnOnly(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	_, err := uc.Create(ctx, employee, validRequest())
	require.NoError(t, err)
	_, err = uc.Create(ctx, other, validRequest())
	require.NoError(t, err)

	mine, err := uc.List(ctx, employee, dto.ProjectListRequest{})
	require.NoError(t, err)
	assert.Len(t, mine.Items, 1)

	all, err := uc.List(ctx, manager, dto.ProjectListRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	none, err := uc.List(ctx, admin, dto.ProjectListRequest{Status: entity.ProjectApproved})
	require.NoError(t, err)
	assert.Empty(t, none.Items)
}

func TestComments_ParentMustBelongToProject(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	p1, err := uc.Create(ctx, employee, validRequest())
	require.NoError(t, err)
	p2, err := uc.Create(ctx, employee, validRequest())
	require.NoError(t, err)

	parent, err := uc.AddComment(ctx, employee, p1.ID, dto.CommentRequest{Body: "primera visita"})
	require.NoError(t, err)

	_, err = uc.AddComment(ctx, employee, p2.ID, dto.CommentRequest{Body: "respuesta", ParentCommentID: &parent.ID})
	assert.ErrorIs(t, err, domain.ErrValidation)

	reply, err := uc.AddComment(ctx, manager, p1.ID, dto.CommentRequest{Body: "respuesta", ParentCommentID: &parent.ID})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSalesManager, reply.AuthorRoleSnapshot)

	_, err = uc.AddComment(ctx, employee, p1.ID, dto.CommentRequest{Body: " "})
	assert.ErrorIs(t, err, domain.ErrValidation)

	list, err := uc.ListComments(ctx, employee, p1.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestDelete_Cascade(t *testing.T) {
	uc, repos := newUseCase()
	ctx := context.Background()
	p, err := uc.Create(ctx, employee, validRequest())
	require.NoError(t, err)
	_, err = uc.AddComment(ctx, employee, p.ID, dto.CommentRequest{Body: "nota"})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(ctx, manager, p.ID), domain.ErrForbidden)
	require.NoError(t, uc.Delete(ctx, admin, p.ID))

	got, err := repos.Projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	h, _ := repos.History.ListByProject(ctx, p.ID)
	assert.Empty(t, h)
	c, _ := repos.Comments.ListByProject(ctx, p.ID)
	assert.Empty(t, c)

	assert.ErrorIs(t, uc.Delete(ctx, admin, p.ID), domain.ErrNotFound)
}

func TestChangeStatus_ConcurrentSameTarget(t *testing.T) {
	uc, repos := newUseCase()
	ctx := context.Background()

	p, err := uc.Create(ctx, employee, validRequest())
	require.NoError(t, err)
	_, err = uc.Decide(ctx, admin, p.ID, true, "")
	require.NoError(t, err)

	const n = 16
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.ChangeStatus(ctx, manager, p.ID, entity.ProjectInProgress, "")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	}
	assert.Equal(t, 1, ok)

	h, err := repos.History.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, h, 3)
	assert.Equal(t, entity.ProjectApproved, h[2].FromStatus)
	assert.Equal(t, entity.ProjectInProgress, h[2].ToStatus)

	comments, err := repos.Comments.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 2)
}

package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

var (
	_ repository.ProjectRepository        = (*ProjectRepo)(nil)
	_ repository.ProjectHistoryRepository = (*HistoryRepo)(nil)
	_ repository.CommentRepository        = (*CommentRepo)(nil)
)

// ProjectRepo proyectos en memoria.
type ProjectRepo struct{ a access }

func (r *ProjectRepo) Create(_ context.Context, p *entity.Project) error {
	return r.a.do(func(st *state) error {
		if _, ok := st.projects[p.ID]; ok {
			return domain.ErrDuplicate
		}
		st.projects[p.ID] = *p
		return nil
	})
}

func (r *ProjectRepo) GetByID(_ context.Context, id string) (*entity.Project, error) {
	var out *entity.Project
	err := r.a.do(func(st *state) error {
		if p, ok := st.projects[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetByIDForUpdate equivale a GetByID: la transacción ya tiene el lock global.
func (r *ProjectRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Project, error) {
	return r.GetByID(ctx, id)
}

func (r *ProjectRepo) Update(_ context.Context, p *entity.Project) error {
	return r.a.do(func(st *state) error {
		if _, ok := st.projects[p.ID]; !ok {
			return domain.ErrNotFound
		}
		st.projects[p.ID] = *p
		return nil
	})
}

func (r *ProjectRepo) List(_ context.Context, f entity.ProjectFilter) ([]*entity.Project, error) {
	var out []*entity.Project
	err := r.a.do(func(st *state) error {
		for _, p := range st.projects {
			if f.CreatedBy != "" && p.CreatedByUserID != f.CreatedBy {
				continue
			}
			if f.Status != "" && p.Status != f.Status {
				continue
			}
			if f.ProjectType != "" && p.ProjectType != f.ProjectType {
				continue
			}
			p := p
			out = append(out, &p)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return paginate(out, f.Limit, f.Offset), err
}

func (r *ProjectRepo) Delete(_ context.Context, id string) error {
	return r.a.do(func(st *state) error {
		if _, ok := st.projects[id]; !ok {
			return domain.ErrNotFound
		}
		for _, q := range st.inquiries {
			if q.ProjectID == id {
				return domain.ErrConflict
			}
		}
		delete(st.projects, id)
		return nil
	})
}

// HistoryRepo historial de estados en memoria.
type HistoryRepo struct{ a access }

func (r *HistoryRepo) Append(_ context.Context, h *entity.ProjectStatusHistory) error {
	return r.a.do(func(st *state) error {
		st.history = append(st.history, *h)
		return nil
	})
}

func (r *HistoryRepo) ListByProject(_ context.Context, projectID string) ([]*entity.ProjectStatusHistory, error) {
	var out []*entity.ProjectStatusHistory
	err := r.a.do(func(st *state) error {
		for _, h := range st.history {
			if h.ProjectID == projectID {
				h := h
				out = append(out, &h)
			}
		}
		return nil
	})
	return out, err
}

func (r *HistoryRepo) DeleteByProject(_ context.Context, projectID string) error {
	return r.a.do(func(st *state) error {
		kept := st.history[:0:0]
		for _, h := range st.history {
			if h.ProjectID != projectID {
				kept = append(kept, h)
			}
		}
		st.history = kept
		return nil
	})
}

// CommentRepo comentarios en memoria.
type CommentRepo struct{ a access }

func (r *CommentRepo) Create(_ context.Context, c *entity.ProjectComment) error {
	return r.a.do(func(st *state) error {
		st.comments = append(st.comments, *c)
		return nil
	})
}

func (r *CommentRepo) GetByID(_ context.Context, id string) (*entity.ProjectComment, error) {
	var out *entity.ProjectComment
	err := r.a.do(func(st *state) error {
		for _, c := range st.comments {
			if c.ID == id {
				c := c
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *CommentRepo) ListByProject(_ context.Context, projectID string) ([]*entity.ProjectComment, error) {
	var out []*entity.ProjectComment
	err := r.a.do(func(st *state) error {
		for _, c := range st.comments {
			if c.ProjectID == projectID {
				c := c
				out = append(out, &c)
			}
		}
		return nil
	})
	return out, err
}

func (r *CommentRepo) DeleteByProject(_ context.Context, projectID string) error {
	return r.a.do(func(st *state) error {
		kept := st.comments[:0:0]
		for _, c := range st.comments {
			if c.ProjectID != projectID {
				kept = append(kept, c)
			}
		}
		st.comments = kept
		return nil
	})
}

package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

var _ repository.InquiryRepository = (*InquiryRepo)(nil)

// InquiryRepo cotizaciones en memoria.
type InquiryRepo struct{ a access }

func (r *InquiryRepo) Create(_ context.Context, q *entity.ProjectInquiry) error {
	return r.a.do(func(st *state) error {
		if _, ok := st.projects[q.ProjectID]; !ok {
			return domain.ErrNotFound
		}
		st.inquiries[q.ID] = *q
		return nil
	})
}

func (r *InquiryRepo) GetByID(_ context.Context, id string) (*entity.ProjectInquiry, error) {
	var out *entity.ProjectInquiry
	err := r.a.do(func(st *state) error {
		if q, ok := st.inquiries[id]; ok {
			out = &q
		}
		return nil
	})
	return out, err
}

func (r *InquiryRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.ProjectInquiry, error) {
	return r.GetByID(ctx, id)
}

func (r *InquiryRepo) UpdateDecision(_ context.Context, id, status, decidedBy string, decidedAt time.Time) error {
	return r.a.do(func(st *state) error {
		q, ok := st.inquiries[id]
		if !ok {
			return domain.ErrNotFound
		}
		by := decidedBy
		at := decidedAt
		q.Status = status
		q.AdminDecisionBy = &by
		q.AdminDecisionAt = &at
		st.inquiries[id] = q
		return nil
	})
}

func (r *InquiryRepo) ListByProject(_ context.Context, projectID string) ([]*entity.ProjectInquiry, error) {
	return r.list(func(q entity.ProjectInquiry) bool { return q.ProjectID == projectID }, 0, 0)
}

func (r *InquiryRepo) ListByStatus(_ context.Context, status string, limit, offset int) ([]*entity.ProjectInquiry, error) {
	return r.list(func(q entity.ProjectInquiry) bool { return q.Status == status }, limit, offset)
}

func (r *InquiryRepo) list(match func(entity.ProjectInquiry) bool, limit, offset int) ([]*entity.ProjectInquiry, error) {
	var out []*entity.ProjectInquiry
	err := r.a.do(func(st *state) error {
		for _, q := range st.inquiries {
			if match(q) {
				q := q
				out = append(out, &q)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return paginate(out, limit, offset), err
}

func (r *InquiryRepo) DeleteByProject(_ context.Context, projectID string) error {
	return r.a.do(func(st *state) error {
		for id, q := range st.inquiries {
			if q.ProjectID == projectID {
				delete(st.inquiries, id)
			}
		}
		return nil
	})
}

package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
	"github.com/jhoicas/Cotizador-api/pkg/textnorm"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.DeviceRepository   = (*DeviceRepo)(nil)
)

// CategoryRepo categorías en memoria.
type CategoryRepo struct{ a access }

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.a.do(func(st *state) error {
		for _, other := range st.categories {
			if strings.EqualFold(other.Name, c.Name) {
				return domain.ErrDuplicate
			}
		}
		st.categories[c.ID] = *c
		return nil
	})
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.a.do(func(st *state) error {
		if c, ok := st.categories[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	return r.a.do(func(st *state) error {
		if _, ok := st.categories[c.ID]; !ok {
			return domain.ErrNotFound
		}
		for id, other := range st.categories {
			if id != c.ID && strings.EqualFold(other.Name, c.Name) {
				return domain.ErrDuplicate
			}
		}
		st.categories[c.ID] = *c
		return nil
	})
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.a.do(func(st *state) error {
		for _, c := range st.categories {
			c := c
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	return r.a.do(func(st *state) error {
		if _, ok := st.categories[id]; !ok {
			return domain.ErrNotFound
		}
		for _, d := range st.devices {
			if d.CategoryID == id {
				return domain.ErrConflict
			}
		}
		delete(st.categories, id)
		return nil
	})
}

// DeviceRepo catálogo de equipos en memoria.
type DeviceRepo struct{ a access }

func (r *DeviceRepo) Create(_ context.Context, d *entity.Device) error {
	return r.a.do(func(st *state) error {
		if _, ok := st.categories[d.CategoryID]; !ok {
			return domain.ErrNotFound
		}
		for _, other := range st.devices {
			if strings.EqualFold(other.ModelName, d.ModelName) {
				return domain.ErrDuplicate
			}
		}
		st.devices[d.ID] = *d
		return nil
	})
}

func (r *DeviceRepo) GetByID(_ context.Context, id string) (*entity.Device, error) {
	var out *entity.Device
	err := r.a.do(func(st *state) error {
		if d, ok := st.devices[id]; ok {
			out = &d
		}
		return nil
	})
	return out, err
}

func (r *DeviceRepo) Update(_ context.Context, d *entity.Device) error {
	return r.a.do(func(st *state) error {
		if _, ok := st.devices[d.ID]; !ok {
			return domain.ErrNotFound
		}
		if _, ok := st.categories[d.CategoryID]; !ok {
			return domain.ErrNotFound
		}
		for id, other := range st.devices {
			if id != d.ID && strings.EqualFold(other.ModelName, d.ModelName) {
				return domain.ErrDuplicate
			}
		}
		st.devices[d.ID] = *d
		return nil
	})
}

func (r *DeviceRepo) Search(_ context.Context, f repository.DeviceFilter) ([]*entity.Device, error) {
	var out []*entity.Device
	err := r.a.do(func(st *state) error {
		for _, d := range st.devices {
			if !f.IncludeInactive && !d.IsActive {
				continue
			}
			if f.CategoryID != "" && d.CategoryID != f.CategoryID {
				continue
			}
			if !textnorm.Contains(d.ModelName, f.Query) {
				continue
			}
			d := d
			out = append(out, &d)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ModelName < out[j].ModelName })
	return paginate(out, f.Limit, f.Offset), err
}

func (r *DeviceRepo) Delete(_ context.Context, id string) error {
	return r.a.do(func(st *state) error {
		if _, ok := st.devices[id]; !ok {
			return domain.ErrNotFound
		}
		for _, q := range st.inquiries {
			if q.DeviceID == id {
				return domain.ErrConflict
			}
		}
		delete(st.devices, id)
		return nil
	})
}

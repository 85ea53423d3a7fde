// Package memory implementa los puertos de persistencia en memoria. Todas las
// transacciones se serializan con un único mutex; un Run que falla no deja rastro.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/jhoicas/Cotizador-api/internal/application/ports"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

type state struct {
	users      map[string]entity.User
	categories map[string]entity.Category
	devices    map[string]entity.Device
	settings   map[string]entity.PricingSettings
	projects   map[string]entity.Project
	inquiries  map[string]entity.ProjectInquiry
	history    []entity.ProjectStatusHistory
	comments   []entity.ProjectComment
	audit      []entity.AuditLog
}

func newState() *state {
	return &state{
		users:      map[string]entity.User{},
		categories: map[string]entity.Category{},
		devices:    map[string]entity.Device{},
		settings:   map[string]entity.PricingSettings{},
		projects:   map[string]entity.Project{},
		inquiries:  map[string]entity.ProjectInquiry{},
	}
}

func (s *state) clone() *state {
	return &state{
		users:      maps.Clone(s.users),
		categories: maps.Clone(s.categories),
		devices:    maps.Clone(s.devices),
		settings:   maps.Clone(s.settings),
		projects:   maps.Clone(s.projects),
		inquiries:  maps.Clone(s.inquiries),
		history:    slices.Clone(s.history),
		comments:   slices.Clone(s.comments),
		audit:      slices.Clone(s.audit),
	}
}

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// access resuelve sobre qué estado opera un repositorio: el de una transacción en curso o el global bajo lock.
type access struct {
	store *Store
	tx    *state
}

func (a access) do(fn func(st *state) error) error {
	if a.tx != nil {
		return fn(a.tx)
	}
	a.store.mu.Lock()
	defer a.store.mu.Unlock()
	return fn(a.store.st)
}

// TxRunner transacciones sobre una copia del estado que se publica solo si fn termina sin error.
type TxRunner struct {
	store *Store
}

var _ ports.TxRunner = (*TxRunner)(nil)

// NewTxRunner construye el runner.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repos atados a la copia. Dentro de fn solo deben usarse esos repos.
func (r *TxRunner) Run(ctx context.Context, fn func(ports.TxRepos) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	work := r.store.st.clone()
	a := access{store: r.store, tx: work}
	repos := ports.TxRepos{
		Projects:   &ProjectRepo{a},
		History:    &HistoryRepo{a},
		Comments:   &CommentRepo{a},
		Inquiries:  &InquiryRepo{a},
		Devices:    &DeviceRepo{a},
		Categories: &CategoryRepo{a},
		Settings:   &SettingsRepo{a},
		Audit:      &AuditRepo{a},
	}
	if err := fn(repos); err != nil {
		return err
	}
	r.store.st = work
	return nil
}

// Repos devuelve el juego completo de repositorios fuera de transacción.
func (s *Store) Repos() ports.TxRepos {
	a := access{store: s}
	return ports.TxRepos{
		Projects:   &ProjectRepo{a},
		History:    &HistoryRepo{a},
		Comments:   &CommentRepo{a},
		Inquiries:  &InquiryRepo{a},
		Devices:    &DeviceRepo{a},
		Categories: &CategoryRepo{a},
		Settings:   &SettingsRepo{a},
		Audit:      &AuditRepo{a},
	}
}

// Users repositorio de usuarios fuera de transacción.
func (s *Store) Users() *UserRepo {
	return &UserRepo{access{store: s}}
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(list) {
			return []T{}
		}
		list = list[offset:]
	}
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

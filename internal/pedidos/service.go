// Package pedidos runs the pedido use cases: it resolves who is acting,
// serializes mutations per pedido, applies the lifecycle rules and persists
// the result through the API.
package pedidos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/garnizeh/pedidos/internal/lock"
	"github.com/garnizeh/pedidos/internal/validation"
	"github.com/garnizeh/pedidos/pkg/lifecycle"
	"github.com/garnizeh/pedidos/pkg/models"
	"github.com/garnizeh/pedidos/pkg/repository"
	"github.com/google/uuid"
)

var (
	// ErrBusy is returned when another mutation of the same pedido is in flight.
	ErrBusy = errors.New("pedido has a mutation in flight")
	// ErrForbidden is returned when the actor may not touch the pedido.
	ErrForbidden = errors.New("not allowed")
	// ErrNotFound is returned for a sub-record missing from its pedido.
	ErrNotFound = errors.New("not found")
	// ErrNoProfile is returned when a usuario has no cliente or tecnico record.
	ErrNoProfile = errors.New("usuario has no profile for its rol")
)

// IncompleteError reports a pedido that stayed on the API after one of its
// disponibilidades failed and the pedido could not be removed either.
type IncompleteError struct {
	PedidoID int64
	Dia      models.Dia
	Err      error
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("pedido %d created without disponibilidad %s: %v", e.PedidoID, e.Dia, e.Err)
}

func (e *IncompleteError) Unwrap() error { return e.Err }

// Actor is the usuario performing an operation, with the id of the record
// that pedidos reference for its rol.
type Actor struct {
	Rol       models.Rol
	UsuarioID int64
	ClienteID int64
	TecnicoID int64
}

// ID returns ClienteID or TecnicoID according to Rol.
func (a Actor) ID() int64 {
	switch a.Rol {
	case models.RolCliente:
		return a.ClienteID
	case models.RolTecnico:
		return a.TecnicoID
	}
	return 0
}

// View is a pedido together with what the actor may do with it.
type View struct {
	Pedido      models.Pedido         `json:"pedido"`
	Permissions lifecycle.Permissions `json:"permissions"`
}

// Deps are the collaborators of a Service. Journal, Validator and Logger are optional.
type Deps struct {
	Pedidos          repository.PedidoRepo
	Disponibilidades repository.DisponibilidadRepo
	Profiles         repository.ProfileRepo
	Journal          repository.MutationRepo
	Validator        *validation.Validator
	Logger           *slog.Logger
	Policy           lifecycle.FinalizePolicy
}

type Service struct {
	pedidos   repository.PedidoRepo
	disp      repository.DisponibilidadRepo
	profiles  repository.ProfileRepo
	journal   repository.MutationRepo
	validator *validation.Validator
	logger    *slog.Logger

	machine *lifecycle.Machine
	locks   *lock.KeyedLock
	newKey  func() string
}

func New(d Deps) *Service {
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	locks := lock.New()
	m := lifecycle.New(d.Policy)
	m.InFlight = locks.Held
	return &Service{
		pedidos:   d.Pedidos,
		disp:      d.Disponibilidades,
		profiles:  d.Profiles,
		journal:   d.Journal,
		validator: d.Validator,
		logger:    logger,
		machine:   m,
		locks:     locks,
		newKey:    uuid.NewString,
	}
}

// Machine exposes the lifecycle rules the service applies.
func (s *Service) Machine() *lifecycle.Machine { return s.machine }

// ActorFor resolves the cliente or tecnico record of the session usuario.
func (s *Service) ActorFor(ctx context.Context, sess *models.Session) (Actor, error) {
	if sess == nil {
		return Actor{}, fmt.Errorf("%w: no session", ErrForbidden)
	}
	a := Actor{Rol: sess.Usuario.Rol, UsuarioID: sess.Usuario.ID}
	by := models.By("usuarioId", sess.Usuario.ID)

	switch a.Rol {
	case models.RolCliente:
		cs, err := s.profiles.ListClientes(ctx, by)
		if err != nil {
			return a, fmt.Errorf("resolve cliente: %w", err)
		}
		if len(cs) == 0 {
			return a, fmt.Errorf("%w: usuario %d", ErrNoProfile, sess.Usuario.ID)
		}
		a.ClienteID = cs[0].ID
	case models.RolTecnico:
		ts, err := s.profiles.ListTecnicos(ctx, by)
		if err != nil {
			return a, fmt.Errorf("resolve tecnico: %w", err)
		}
		if len(ts) == 0 {
			return a, fmt.Errorf("%w: usuario %d", ErrNoProfile, sess.Usuario.ID)
		}
		a.TecnicoID = ts[0].ID
	case models.RolAdmin:
	default:
		return a, fmt.Errorf("%w: unknown rol %q", ErrForbidden, a.Rol)
	}
	return a, nil
}

func (s *Service) view(p models.Pedido, a Actor) *View {
	return &View{Pedido: p, Permissions: s.machine.Permissions(p, a.Rol, a.ID())}
}

func (s *Service) views(ps []models.Pedido, a Actor) []View {
	out := make([]View, 0, len(ps))
	for _, p := range ps {
		out = append(out, *s.view(p, a))
	}
	return out
}

// owns reports whether a may act as the cliente of p.
func owns(a Actor, p models.Pedido) bool {
	return a.Rol == models.RolAdmin || (a.Rol == models.RolCliente && p.ClienteID == a.ClienteID)
}

func requireRol(a Actor, roles ...models.Rol) error {
	for _, r := range roles {
		if a.Rol == r {
			return nil
		}
	}
	return fmt.Errorf("%w: rol %q", ErrForbidden, a.Rol)
}

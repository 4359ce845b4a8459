// Package lifecycle is the pedido state machine shared by every view.
//
// Valid estado graph:
//
//	sin_candidatos ──► con_candidatos ──► tecnico_seleccionado ──► finalizado
//	      │                  │                    │                    │
//	      │                  │                    └──────► calificado ◄┘
//	      └──────────────────┴──► cancelado
//
// calificado and cancelado are terminal. Every function in this package is
// pure: persistence is the repository's job.
package lifecycle

import (
	"errors"
	"fmt"
	"time"

	"github.com/garnizeh/pedidos/pkg/models"
)

var (
	// ErrInvalidTransition is matched by every precondition failure.
	ErrInvalidTransition = errors.New("invalid pedido transition")
	// ErrInvalidInput marks action arguments that fail validation (score, text).
	ErrInvalidInput = errors.New("invalid transition input")
)

// TransitionError describes which action was refused and why.
type TransitionError struct {
	Action ActionKind
	Estado models.Estado
	Reason string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s pedido in estado %s: %s", e.Action, e.Estado, e.Reason)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// FinalizePolicy decides who may move a pedido to finalizado.
type FinalizePolicy string

const (
	// FinalizeServer leaves finalizado to the backend; the client never triggers it.
	FinalizeServer FinalizePolicy = "server"
	// FinalizeCliente lets the owning client close a pedido with a selected tecnico.
	FinalizeCliente FinalizePolicy = "cliente"
)

// ParseFinalizePolicy accepts "server" or "cliente"; empty means server.
func ParseFinalizePolicy(s string) (FinalizePolicy, error) {
	switch FinalizePolicy(s) {
	case "", FinalizeServer:
		return FinalizeServer, nil
	case FinalizeCliente:
		return FinalizeCliente, nil
	}
	return "", fmt.Errorf("unknown finalize policy %q", s)
}

// InFlightFunc reports whether a mutation is currently running for a pedido.
type InFlightFunc func(pedidoID int64) bool

// Machine evaluates permissions and applies transitions. The zero value is
// usable: server-side finalization, wall clock, no in-flight guard.
type Machine struct {
	Finalize FinalizePolicy
	InFlight InFlightFunc
	Now      func() time.Time
}

// New returns a Machine with the given finalize policy.
func New(policy FinalizePolicy) *Machine {
	return &Machine{Finalize: policy}
}

func (m *Machine) now() time.Time {
	if m != nil && m.Now != nil {
		return m.Now()
	}
	return time.Now().UTC()
}

func (m *Machine) inFlight(id int64) bool {
	return m != nil && m.InFlight != nil && m.InFlight(id)
}

// rank orders the forward estados; cancelado sits outside the order.
var rank = map[models.Estado]int{
	models.EstadoSinCandidatos:       0,
	models.EstadoConCandidatos:       1,
	models.EstadoTecnicoSeleccionado: 2,
	models.EstadoFinalizado:          3,
	models.EstadoCalificado:          4,
}

// IsTerminal reports whether no action can leave estado e.
func IsTerminal(e models.Estado) bool {
	return e == models.EstadoCalificado || e == models.EstadoCancelado
}

// IsOpen reports whether the pedido still accepts candidatos and cancellation.
func IsOpen(e models.Estado) bool {
	return e == models.EstadoSinCandidatos || e == models.EstadoConCandidatos
}

// Forward reports whether moving from one estado to another never goes back.
// Staying put is forward; cancelado is reachable only from open estados.
func Forward(from, to models.Estado) bool {
	if from == to {
		return true
	}
	if from == models.EstadoCancelado {
		return false
	}
	if to == models.EstadoCancelado {
		return IsOpen(from)
	}
	rf, okf := rank[from]
	rt, okt := rank[to]
	return okf && okt && rt > rf
}

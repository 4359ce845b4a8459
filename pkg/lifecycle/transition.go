package lifecycle

import (
	"fmt"
	"strings"

	"github.com/garnizeh/pedidos/pkg/models"
)

type ActionKind string

const (
	ActionCancel        ActionKind = "cancel"
	ActionAddCandidate  ActionKind = "addCandidate"
	ActionSelectTecnico ActionKind = "selectTecnico"
	ActionRate          ActionKind = "rate"
	ActionRespond       ActionKind = "respond"
	ActionFinalize      ActionKind = "finalize"
)

const (
	MinCalificacion = 1
	MaxCalificacion = 5
)

// Action is one user intent against a pedido. Build it with the helpers below.
type Action struct {
	Kind         ActionKind
	TecnicoID    int64
	Calificacion int
	Comentario   string
	Respuesta    string
}

func Cancel() Action { return Action{Kind: ActionCancel} }
func AddCandidate(tecnicoID int64) Action {
	return Action{Kind: ActionAddCandidate, TecnicoID: tecnicoID}
}
func SelectTecnico(tecnicoID int64) Action {
	return Action{Kind: ActionSelectTecnico, TecnicoID: tecnicoID}
}
func Rate(calificacion int, comentario string) Action {
	return Action{Kind: ActionRate, Calificacion: calificacion, Comentario: comentario}
}
func Respond(respuesta string) Action { return Action{Kind: ActionRespond, Respuesta: respuesta} }
func Finalize() Action                { return Action{Kind: ActionFinalize} }

// Apply returns the pedido that results from action a. The input is never
// modified. A refused precondition yields a *TransitionError; bad arguments
// yield an error wrapping ErrInvalidInput.
//
// Apply does not consult the in-flight guard: the caller performing the
// mutation is the one holding it.
func (m *Machine) Apply(p models.Pedido, a Action) (models.Pedido, error) {
	next := clone(p)
	refuse := func(reason string) (models.Pedido, error) {
		return p, &TransitionError{Action: a.Kind, Estado: p.Estado, Reason: reason}
	}

	switch a.Kind {
	case ActionCancel:
		if !IsOpen(p.Estado) {
			return refuse("only pedidos without a selected tecnico can be cancelled")
		}
		now := m.now()
		next.Estado = models.EstadoCancelado
		next.FechaCancelado = &now

	case ActionAddCandidate:
		if a.TecnicoID <= 0 {
			return p, fmt.Errorf("%w: tecnico id must be positive", ErrInvalidInput)
		}
		if !m.CanApplyAsCandidate(p, a.TecnicoID) {
			return refuse(fmt.Sprintf("tecnico %d already applied", a.TecnicoID))
		}
		if !IsOpen(p.Estado) {
			return refuse("pedido no longer accepts candidatos")
		}
		next.Candidatos = append(next.Candidatos, models.PedidoCandidato{PedidoID: p.ID, TecnicoID: a.TecnicoID})
		if p.Estado == models.EstadoSinCandidatos {
			next.Estado = models.EstadoConCandidatos
		}

	case ActionSelectTecnico:
		if !m.CanSelectTecnico(p, a.TecnicoID) {
			return refuse(fmt.Sprintf("tecnico %d is not a candidato of a pedido con_candidatos", a.TecnicoID))
		}
		id := a.TecnicoID
		next.TecnicoID = &id
		next.Estado = models.EstadoTecnicoSeleccionado

	case ActionRate:
		if !m.CanRateTecnico(p) {
			return refuse("pedido has no tecnico or is already rated")
		}
		if a.Calificacion < MinCalificacion || a.Calificacion > MaxCalificacion {
			return p, fmt.Errorf("%w: calificacion %d out of range %d..%d", ErrInvalidInput, a.Calificacion, MinCalificacion, MaxCalificacion)
		}
		score := a.Calificacion
		next.Calificacion = &score
		if c := strings.TrimSpace(a.Comentario); c != "" {
			next.Comentario = &c
		}
		next.Estado = models.EstadoCalificado

	case ActionRespond:
		if !m.CanRespondToRating(p) {
			return refuse("pedido is not rated or already has a respuesta")
		}
		r := strings.TrimSpace(a.Respuesta)
		if r == "" {
			return p, fmt.Errorf("%w: respuesta is empty", ErrInvalidInput)
		}
		next.Respuesta = &r

	case ActionFinalize:
		if !m.CanFinalize(p) {
			if m == nil || m.Finalize != FinalizeCliente {
				return refuse("finalizado is set by the server")
			}
			return refuse("only pedidos with a selected tecnico can be finalized")
		}
		now := m.now()
		next.Estado = models.EstadoFinalizado
		next.FechaCierre = &now

	default:
		return refuse("unknown action")
	}

	return next, nil
}

// clone copies p deep enough that appending to slices or re-pointing fields
// on the copy leaves p untouched.
func clone(p models.Pedido) models.Pedido {
	c := p
	if p.Candidatos != nil {
		c.Candidatos = append([]models.PedidoCandidato(nil), p.Candidatos...)
	}
	if p.Disponibilidades != nil {
		c.Disponibilidades = append([]models.PedidoDisponibilidad(nil), p.Disponibilidades...)
	}
	return c
}

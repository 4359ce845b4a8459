package lifecycle

import "github.com/garnizeh/pedidos/pkg/models"

// CanCancel: open estado and no cancellation already in flight.
func (m *Machine) CanCancel(p models.Pedido) bool {
	return IsOpen(p.Estado) && !m.inFlight(p.ID)
}

// CanViewCandidatos: con_candidatos with at least one candidato loaded.
func (m *Machine) CanViewCandidatos(p models.Pedido) bool {
	return p.Estado == models.EstadoConCandidatos && len(p.Candidatos) > 0
}

// CanSelectTecnico: con_candidatos and tecnicoID is one of the candidatos.
func (m *Machine) CanSelectTecnico(p models.Pedido, tecnicoID int64) bool {
	return p.Estado == models.EstadoConCandidatos && p.HasCandidato(tecnicoID)
}

// CanRateTecnico: a tecnico is assigned and no calificacion yet.
func (m *Machine) CanRateTecnico(p models.Pedido) bool {
	return p.TecnicoID != nil && p.Calificacion == nil
}

// CanRespondToRating: rated and the tecnico has not answered.
func (m *Machine) CanRespondToRating(p models.Pedido) bool {
	return p.Calificacion != nil && p.Respuesta == nil
}

// CanApplyAsCandidate: tecnicoID is not already a candidato.
func (m *Machine) CanApplyAsCandidate(p models.Pedido, tecnicoID int64) bool {
	return !p.HasCandidato(tecnicoID)
}

// CanFinalize depends on the finalize policy.
func (m *Machine) CanFinalize(p models.Pedido) bool {
	if m == nil || m.Finalize != FinalizeCliente {
		return false
	}
	return p.Estado == models.EstadoTecnicoSeleccionado
}

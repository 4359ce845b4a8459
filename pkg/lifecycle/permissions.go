package lifecycle

import "github.com/garnizeh/pedidos/pkg/models"

// ClientePermissions are the controls a pedido's owner may use.
type ClientePermissions struct {
	Cancel         bool `json:"cancel"`
	ViewCandidatos bool `json:"viewCandidatos"`
	SelectTecnico  bool `json:"selectTecnico"`
	Rate           bool `json:"rate"`
	Finalize       bool `json:"finalize"`
}

// TecnicoPermissions are the controls a technician may use on a pedido.
type TecnicoPermissions struct {
	Apply   bool `json:"apply"`
	Respond bool `json:"respond"`
}

// Permissions is what the view layer renders for one pedido and one actor.
// Only the block matching the actor's role is filled.
type Permissions struct {
	Rol     models.Rol          `json:"rol"`
	Cliente *ClientePermissions `json:"cliente,omitempty"`
	Tecnico *TecnicoPermissions `json:"tecnico,omitempty"`
}

// Actions lists the enabled action names in a stable order.
func (p Permissions) Actions() []ActionKind {
	var out []ActionKind
	if c := p.Cliente; c != nil {
		if c.Cancel {
			out = append(out, ActionCancel)
		}
		if c.SelectTecnico {
			out = append(out, ActionSelectTecnico)
		}
		if c.Finalize {
			out = append(out, ActionFinalize)
		}
		if c.Rate {
			out = append(out, ActionRate)
		}
	}
	if t := p.Tecnico; t != nil {
		if t.Apply {
			out = append(out, ActionAddCandidate)
		}
		if t.Respond {
			out = append(out, ActionRespond)
		}
	}
	return out
}

// Permissions evaluates every predicate for actor. clienteID and tecnicoID
// are the actor's profile ids; a cliente only controls its own pedidos and a
// tecnico only answers ratings on pedidos assigned to it. Admins get the
// cliente view without the ownership check.
func (m *Machine) Permissions(p models.Pedido, rol models.Rol, actorID int64) Permissions {
	out := Permissions{Rol: rol}
	switch rol {
	case models.RolCliente, models.RolAdmin:
		owner := rol == models.RolAdmin || p.ClienteID == actorID
		out.Cliente = &ClientePermissions{
			Cancel:         owner && m.CanCancel(p),
			ViewCandidatos: owner && m.CanViewCandidatos(p),
			SelectTecnico:  owner && m.CanViewCandidatos(p),
			Rate:           owner && m.CanRateTecnico(p),
			Finalize:       owner && m.CanFinalize(p),
		}
	case models.RolTecnico:
		assigned := p.TecnicoID != nil && *p.TecnicoID == actorID
		out.Tecnico = &TecnicoPermissions{
			Apply:   IsOpen(p.Estado) && m.CanApplyAsCandidate(p, actorID) && !m.inFlight(p.ID),
			Respond: assigned && m.CanRespondToRating(p),
		}
	}
	return out
}

package pedidos

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/garnizeh/pedidos/pkg/lifecycle"
	"github.com/garnizeh/pedidos/pkg/models"
)

// load fetches the pedido with its candidatos, and its disponibilidades when full is set.
func (s *Service) load(ctx context.Context, id int64, full bool) (*models.Pedido, error) {
	p, err := s.pedidos.GetPedido(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get pedido %d: %w", id, err)
	}
	cs, err := s.pedidos.ListCandidatos(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list candidatos of pedido %d: %w", id, err)
	}
	p.Candidatos = cs
	if full && s.disp != nil {
		ds, err := s.disp.ListDisponibilidades(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("list disponibilidades of pedido %d: %w", id, err)
		}
		p.Disponibilidades = ds
	}
	return p, nil
}

func (s *Service) withCandidatos(ctx context.Context, ps []models.Pedido) error {
	for i := range ps {
		cs, err := s.pedidos.ListCandidatos(ctx, ps[i].ID)
		if err != nil {
			return fmt.Errorf("list candidatos of pedido %d: %w", ps[i].ID, err)
		}
		ps[i].Candidatos = cs
	}
	return nil
}

// Get returns one pedido with candidatos and disponibilidades. A cliente
// only sees its own pedidos.
func (s *Service) Get(ctx context.Context, a Actor, id int64) (*View, error) {
	p, err := s.load(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if a.Rol == models.RolCliente && !owns(a, *p) {
		return nil, fmt.Errorf("%w: pedido %d belongs to another cliente", ErrForbidden, id)
	}
	return s.view(*p, a), nil
}

// ListForCliente returns the pedidos of the acting cliente.
func (s *Service) ListForCliente(ctx context.Context, a Actor) ([]View, error) {
	if err := requireRol(a, models.RolCliente); err != nil {
		return nil, err
	}
	ps, err := s.pedidos.FetchPedidos(ctx, models.By("clienteId", a.ClienteID))
	if err != nil {
		return nil, fmt.Errorf("list pedidos of cliente %d: %w", a.ClienteID, err)
	}
	if err := s.withCandidatos(ctx, ps); err != nil {
		return nil, err
	}
	return s.views(ps, a), nil
}

// ListForTecnico returns the pedidos assigned to the acting tecnico.
func (s *Service) ListForTecnico(ctx context.Context, a Actor) ([]View, error) {
	if err := requireRol(a, models.RolTecnico); err != nil {
		return nil, err
	}
	ps, err := s.pedidos.FetchPedidos(ctx, models.By("tecnicoId", a.TecnicoID))
	if err != nil {
		return nil, fmt.Errorf("list pedidos of tecnico %d: %w", a.TecnicoID, err)
	}
	return s.views(ps, a), nil
}

// ListAll returns every pedido matching filter. Admin only.
func (s *Service) ListAll(ctx context.Context, a Actor, filter models.Filter) ([]View, error) {
	if err := requireRol(a, models.RolAdmin); err != nil {
		return nil, err
	}
	ps, err := s.pedidos.FetchPedidos(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list pedidos: %w", err)
	}
	if err := s.withCandidatos(ctx, ps); err != nil {
		return nil, err
	}
	return s.views(ps, a), nil
}

// ListOpen returns the pedidos the acting tecnico can still apply to,
// limited to the tecnico's areas when it has any.
func (s *Service) ListOpen(ctx context.Context, a Actor) ([]View, error) {
	if err := requireRol(a, models.RolTecnico); err != nil {
		return nil, err
	}

	areas := map[int64]bool{}
	if s.profiles != nil {
		tas, err := s.profiles.ListTecnicoAreas(ctx, models.By("tecnicoId", a.TecnicoID))
		if err != nil {
			return nil, fmt.Errorf("list areas of tecnico %d: %w", a.TecnicoID, err)
		}
		for _, ta := range tas {
			areas[ta.AreaID] = true
		}
	}

	var open []models.Pedido
	for _, e := range []models.Estado{models.EstadoSinCandidatos, models.EstadoConCandidatos} {
		ps, err := s.pedidos.FetchPedidos(ctx, models.Filter{"estado": string(e)})
		if err != nil {
			return nil, fmt.Errorf("list %s pedidos: %w", e, err)
		}
		for _, p := range ps {
			if len(areas) == 0 || areas[p.AreaID] {
				open = append(open, p)
			}
		}
	}
	sort.Slice(open, func(i, j int) bool { return open[i].ID < open[j].ID })

	if err := s.withCandidatos(ctx, open); err != nil {
		return nil, err
	}
	out := make([]View, 0, len(open))
	for _, p := range open {
		v := s.view(p, a)
		if v.Permissions.Tecnico != nil && v.Permissions.Tecnico.Apply {
			out = append(out, *v)
		}
	}
	return out, nil
}

// Create validates the form and opens a pedido with its disponibilidades.
// A cliente creates pedidos only for itself.
func (s *Service) Create(ctx context.Context, a Actor, form models.PedidoForm) (*View, error) {
	if err := requireRol(a, models.RolCliente, models.RolAdmin); err != nil {
		return nil, err
	}
	if a.Rol == models.RolCliente {
		if form.ClienteID == 0 {
			form.ClienteID = a.ClienteID
		}
		if form.ClienteID != a.ClienteID {
			return nil, fmt.Errorf("%w: pedido for another cliente", ErrForbidden)
		}
	}
	if s.validator != nil {
		if err := s.validator.Pedido(ctx, form); err != nil {
			return nil, err
		}
	}

	created, err := s.pedidos.CreatePedido(ctx, &models.Pedido{
		ClienteID:     form.ClienteID,
		AreaID:        form.AreaID,
		Estado:        models.EstadoSinCandidatos,
		Requerimiento: form.Requerimiento,
	})
	if err != nil {
		return nil, fmt.Errorf("create pedido: %w", err)
	}

	for _, d := range form.Disponibilidades {
		d.PedidoID = created.ID
		got, err := s.disp.CreateDisponibilidad(ctx, &d)
		if err != nil {
			s.logger.Error("pedidos: disponibilidad not saved, removing pedido", slog.Int64("pedido_id", created.ID), slog.String("err", err.Error()))
			if derr := s.pedidos.DeletePedido(ctx, created.ID); derr != nil {
				s.logger.Error("pedidos: cannot remove incomplete pedido", slog.Int64("pedido_id", created.ID), slog.String("err", derr.Error()))
				return nil, &IncompleteError{PedidoID: created.ID, Dia: d.Dia, Err: err}
			}
			return nil, fmt.Errorf("save disponibilidad %s: %w", d.Dia, err)
		}
		created.Disponibilidades = append(created.Disponibilidades, *got)
	}

	s.logger.Info("pedidos: created", slog.Int64("pedido_id", created.ID), slog.Int64("cliente_id", created.ClienteID))
	return s.view(*created, a), nil
}

// AddDisponibilidad adds a slot to an open pedido of the acting cliente.
func (s *Service) AddDisponibilidad(ctx context.Context, a Actor, pedidoID int64, d models.PedidoDisponibilidad) (*models.PedidoDisponibilidad, error) {
	if s.validator != nil {
		if err := s.validator.Disponibilidad(ctx, d); err != nil {
			return nil, err
		}
	}
	release, err := s.acquire(pedidoID)
	if err != nil {
		return nil, err
	}
	defer release()

	p, err := s.load(ctx, pedidoID, false)
	if err != nil {
		return nil, err
	}
	if !owns(a, *p) {
		return nil, fmt.Errorf("%w: pedido %d belongs to another cliente", ErrForbidden, pedidoID)
	}
	if !lifecycle.IsOpen(p.Estado) {
		return nil, &lifecycle.TransitionError{Action: "addDisponibilidad", Estado: p.Estado, Reason: "pedido is no longer open"}
	}
	d.PedidoID = pedidoID
	got, err := s.disp.CreateDisponibilidad(ctx, &d)
	if err != nil {
		return nil, fmt.Errorf("create disponibilidad: %w", err)
	}
	return got, nil
}

// RemoveDisponibilidad deletes a slot of a pedido of the acting cliente.
func (s *Service) RemoveDisponibilidad(ctx context.Context, a Actor, pedidoID, disponibilidadID int64) error {
	release, err := s.acquire(pedidoID)
	if err != nil {
		return err
	}
	defer release()

	p, err := s.load(ctx, pedidoID, true)
	if err != nil {
		return err
	}
	if !owns(a, *p) {
		return fmt.Errorf("%w: pedido %d belongs to another cliente", ErrForbidden, pedidoID)
	}
	found := false
	for _, d := range p.Disponibilidades {
		found = found || d.ID == disponibilidadID
	}
	if !found {
		return fmt.Errorf("disponibilidad %d of pedido %d: %w", disponibilidadID, pedidoID, ErrNotFound)
	}
	if err := s.disp.DeleteDisponibilidad(ctx, disponibilidadID); err != nil {
		return fmt.Errorf("delete disponibilidad %d: %w", disponibilidadID, err)
	}
	return nil
}

// Delete removes a pedido. Admins delete any pedido; a cliente only its own
// while nobody applied to it or after cancelling it.
func (s *Service) Delete(ctx context.Context, a Actor, id int64) error {
	release, err := s.acquire(id)
	if err != nil {
		return err
	}
	defer release()

	p, err := s.load(ctx, id, false)
	if err != nil {
		return err
	}
	if !owns(a, *p) {
		return fmt.Errorf("%w: pedido %d belongs to another cliente", ErrForbidden, id)
	}
	if a.Rol != models.RolAdmin && p.Estado != models.EstadoSinCandidatos && p.Estado != models.EstadoCancelado {
		return &lifecycle.TransitionError{Action: "delete", Estado: p.Estado, Reason: "only pedidos sin_candidatos or cancelado can be deleted"}
	}
	if err := s.pedidos.DeletePedido(ctx, id); err != nil {
		return fmt.Errorf("delete pedido %d: %w", id, err)
	}
	s.logger.Info("pedidos: deleted", slog.Int64("pedido_id", id))
	return nil
}

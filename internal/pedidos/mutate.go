package pedidos

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/garnizeh/pedidos/pkg/client"
	"github.com/garnizeh/pedidos/pkg/lifecycle"
	"github.com/garnizeh/pedidos/pkg/models"
	"github.com/garnizeh/pedidos/pkg/repository"
)

func (s *Service) acquire(id int64) (func(), error) {
	release, ok := s.locks.TryLock(id)
	if !ok {
		return nil, fmt.Errorf("%w: pedido %d", ErrBusy, id)
	}
	return release, nil
}

// Cancel cancels an open pedido of the acting cliente.
func (s *Service) Cancel(ctx context.Context, a Actor, id int64) (*View, error) {
	return s.mutate(ctx, a, id, func(p models.Pedido) (lifecycle.Action, error) {
		if !owns(a, p) {
			return lifecycle.Action{}, fmt.Errorf("%w: pedido %d belongs to another cliente", ErrForbidden, id)
		}
		return lifecycle.Cancel(), nil
	})
}

// Apply registers the acting tecnico as a candidato of pedido id.
func (s *Service) Apply(ctx context.Context, a Actor, id int64) (*View, error) {
	if err := requireRol(a, models.RolTecnico); err != nil {
		return nil, err
	}
	return s.mutate(ctx, a, id, func(models.Pedido) (lifecycle.Action, error) {
		return lifecycle.AddCandidate(a.TecnicoID), nil
	})
}

// SelectTecnico assigns one of the candidatos to the pedido.
func (s *Service) SelectTecnico(ctx context.Context, a Actor, id, tecnicoID int64) (*View, error) {
	return s.mutate(ctx, a, id, func(p models.Pedido) (lifecycle.Action, error) {
		if !owns(a, p) {
			return lifecycle.Action{}, fmt.Errorf("%w: pedido %d belongs to another cliente", ErrForbidden, id)
		}
		return lifecycle.SelectTecnico(tecnicoID), nil
	})
}

// Rate scores the assigned tecnico from 1 to 5 with an optional comment.
func (s *Service) Rate(ctx context.Context, a Actor, id int64, calificacion int, comentario string) (*View, error) {
	if s.validator != nil {
		if err := s.validator.Calificacion(ctx, calificacion, comentario); err != nil {
			return nil, err
		}
	}
	return s.mutate(ctx, a, id, func(p models.Pedido) (lifecycle.Action, error) {
		if !owns(a, p) {
			return lifecycle.Action{}, fmt.Errorf("%w: pedido %d belongs to another cliente", ErrForbidden, id)
		}
		return lifecycle.Rate(calificacion, comentario), nil
	})
}

// Respond lets the assigned tecnico answer the rating.
func (s *Service) Respond(ctx context.Context, a Actor, id int64, respuesta string) (*View, error) {
	if err := requireRol(a, models.RolTecnico); err != nil {
		return nil, err
	}
	return s.mutate(ctx, a, id, func(p models.Pedido) (lifecycle.Action, error) {
		if p.TecnicoID == nil || *p.TecnicoID != a.TecnicoID {
			return lifecycle.Action{}, fmt.Errorf("%w: pedido %d is assigned to another tecnico", ErrForbidden, id)
		}
		return lifecycle.Respond(respuesta), nil
	})
}

// Finalize closes a pedido with a selected tecnico when the finalize policy
// lets the cliente do so.
func (s *Service) Finalize(ctx context.Context, a Actor, id int64) (*View, error) {
	return s.mutate(ctx, a, id, func(p models.Pedido) (lifecycle.Action, error) {
		if !owns(a, p) {
			return lifecycle.Action{}, fmt.Errorf("%w: pedido %d belongs to another cliente", ErrForbidden, id)
		}
		return lifecycle.Finalize(), nil
	})
}

// mutate applies the action chosen by decide and returns the saved pedido.
// Permissions are computed after the lock is released.
func (s *Service) mutate(ctx context.Context, a Actor, id int64, decide func(models.Pedido) (lifecycle.Action, error)) (*View, error) {
	saved, err := s.transition(ctx, id, decide)
	if err != nil {
		return nil, err
	}
	return s.view(saved, a), nil
}

// transition holds the pedido lock while it fetches fresh state, applies
// the action and persists the difference.
func (s *Service) transition(ctx context.Context, id int64, decide func(models.Pedido) (lifecycle.Action, error)) (models.Pedido, error) {
	release, err := s.acquire(id)
	if err != nil {
		return models.Pedido{}, err
	}
	defer release()

	before, err := s.load(ctx, id, false)
	if err != nil {
		return models.Pedido{}, err
	}
	action, err := decide(*before)
	if err != nil {
		return models.Pedido{}, err
	}
	after, err := s.machine.Apply(*before, action)
	if err != nil {
		if errors.Is(err, lifecycle.ErrInvalidTransition) {
			s.abandon(ctx, id, action.Kind)
		}
		return models.Pedido{}, err
	}

	key, err := s.idempotencyKey(ctx, id, action.Kind)
	if err != nil {
		return models.Pedido{}, err
	}
	saved, err := s.persist(ctx, key, *before, after, action)
	s.settle(ctx, key, err)
	if err != nil {
		s.logger.Warn("pedidos: mutation failed",
			slog.Int64("pedido_id", id),
			slog.String("action", string(action.Kind)),
			slog.String("err", err.Error()),
		)
		return models.Pedido{}, err
	}

	s.logger.Info("pedidos: mutation applied",
		slog.Int64("pedido_id", id),
		slog.String("action", string(action.Kind)),
		slog.String("estado", string(saved.Estado)),
	)
	return saved, nil
}

// persist writes the transition. A new candidato is created first; the
// pedido fields that changed are then sent as one patch.
func (s *Service) persist(ctx context.Context, key string, before, after models.Pedido, action lifecycle.Action) (models.Pedido, error) {
	saved := after
	unconfirmed := false
	if action.Kind == lifecycle.ActionAddCandidate {
		c, err := s.pedidos.CreateCandidato(repository.WithIdempotencyKey(ctx, key), before.ID, action.TecnicoID)
		switch {
		case errors.Is(err, client.ErrEmptyResponse):
			unconfirmed = true
		case err != nil:
			return before, fmt.Errorf("add candidato to pedido %d: %w", before.ID, err)
		default:
			saved.Candidatos[len(saved.Candidatos)-1] = *c
		}
	}

	patch := lifecycle.Patch(before, after)
	if patch.Empty() {
		if unconfirmed {
			return s.confirm(ctx, after, action)
		}
		return saved, nil
	}
	patchKey := key
	if action.Kind == lifecycle.ActionAddCandidate {
		patchKey = key + "/pedido"
	}
	updated, err := s.pedidos.UpdatePedido(repository.WithIdempotencyKey(ctx, patchKey), before.ID, patch)
	if errors.Is(err, client.ErrEmptyResponse) || (err == nil && unconfirmed) {
		return s.confirm(ctx, after, action)
	}
	if err != nil {
		return before, fmt.Errorf("update pedido %d: %w", before.ID, err)
	}
	updated.Candidatos = saved.Candidatos
	updated.Disponibilidades = saved.Disponibilidades
	return *updated, nil
}

// confirm reloads a pedido whose write was answered without the saved
// record and checks that the reloaded state matches want.
func (s *Service) confirm(ctx context.Context, want models.Pedido, action lifecycle.Action) (models.Pedido, error) {
	s.logger.Warn("pedidos: write answered without a body, reloading",
		slog.Int64("pedido_id", want.ID),
		slog.String("action", string(action.Kind)),
	)
	got, err := s.load(ctx, want.ID, false)
	if err != nil {
		return want, fmt.Errorf("reload pedido %d: %w", want.ID, err)
	}
	applied := lifecycle.Patch(*got, want).Empty()
	if applied && action.Kind == lifecycle.ActionAddCandidate {
		applied = got.HasCandidato(action.TecnicoID)
	}
	if !applied {
		return *got, fmt.Errorf("pedido %d not updated after %s: %w", want.ID, action.Kind, client.ErrEmptyResponse)
	}
	got.Disponibilidades = want.Disponibilidades
	return *got, nil
}

// idempotencyKey reuses the key of an unconfirmed earlier attempt of the
// same action, or journals a new one.
func (s *Service) idempotencyKey(ctx context.Context, id int64, kind lifecycle.ActionKind) (string, error) {
	if s.journal == nil {
		return s.newKey(), nil
	}
	key, err := s.journal.PendingKey(ctx, id, string(kind))
	if err != nil {
		return "", fmt.Errorf("read mutation journal: %w", err)
	}
	if key != "" {
		s.logger.Info("pedidos: retrying unconfirmed mutation", slog.Int64("pedido_id", id), slog.String("action", string(kind)))
		return key, nil
	}
	key = s.newKey()
	if err := s.journal.RecordMutation(ctx, key, id, string(kind)); err != nil {
		return "", fmt.Errorf("record mutation: %w", err)
	}
	return key, nil
}

// abandon closes a journal entry left pending by an earlier attempt of an
// action the fresh pedido state no longer allows.
func (s *Service) abandon(ctx context.Context, id int64, kind lifecycle.ActionKind) {
	if s.journal == nil {
		return
	}
	key, err := s.journal.PendingKey(ctx, id, string(kind))
	if err != nil || key == "" {
		return
	}
	s.logger.Info("pedidos: dropping unconfirmed mutation", slog.Int64("pedido_id", id), slog.String("action", string(kind)))
	s.settle(ctx, key, nil)
}

// settle closes the journal entry unless the request may not have reached
// the API, in which case the key stays pending for the next attempt.
func (s *Service) settle(ctx context.Context, key string, err error) {
	if s.journal == nil || errors.Is(err, client.ErrNetwork) {
		return
	}
	if cerr := s.journal.CompleteMutation(ctx, key); cerr != nil {
		s.logger.Error("pedidos: cannot complete mutation", slog.String("key", key), slog.String("err", cerr.Error()))
	}
}

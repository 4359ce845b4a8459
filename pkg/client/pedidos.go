package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/garnizeh/pedidos/pkg/models"
	"github.com/garnizeh/pedidos/pkg/repository"
)

const (
	pathPedidos          = "/pedidos"
	pathCandidatos       = "/pedido-candidatos"
	pathDisponibilidades = "/pedido-disponibilidad"
)

var _ repository.PedidoRepo = (*Client)(nil)
var _ repository.DisponibilidadRepo = (*Client)(nil)

func itemPath(base string, id int64) string {
	return base + "/" + strconv.FormatInt(id, 10)
}

// FetchPedidos lists pedidos matching every pair of filter.
func (c *Client) FetchPedidos(ctx context.Context, filter models.Filter) ([]models.Pedido, error) {
	return list[models.Pedido](ctx, c, pathPedidos, filter)
}

// GetPedido looks a pedido up through the list filter, as the API exposes
// no item GET for pedidos.
func (c *Client) GetPedido(ctx context.Context, id int64) (*models.Pedido, error) {
	ps, err := c.FetchPedidos(ctx, models.By("id", id))
	if err != nil {
		return nil, err
	}
	for i := range ps {
		if ps[i].ID == id {
			return &ps[i], nil
		}
	}
	return nil, &APIError{Method: http.MethodGet, Path: pathPedidos, Status: http.StatusNotFound, Message: "pedido " + strconv.FormatInt(id, 10), kind: ErrNotFound}
}

func (c *Client) CreatePedido(ctx context.Context, p *models.Pedido) (*models.Pedido, error) {
	return create(ctx, c, pathPedidos, p)
}

// UpdatePedido sends patch with an idempotency key, so a retried update is
// applied once by an API that honors the header. A reply without the saved
// pedido fails with ErrEmptyResponse.
func (c *Client) UpdatePedido(ctx context.Context, id int64, patch models.PedidoPatch) (*models.Pedido, error) {
	path := itemPath(pathPedidos, id)
	var out models.Pedido
	if err := c.do(ctx, call{method: http.MethodPut, path: path, body: patch, keyed: true}, &out); err != nil {
		return nil, err
	}
	if out.ID == 0 {
		return nil, &APIError{Method: http.MethodPut, Path: path, kind: ErrServer, err: ErrEmptyResponse}
	}
	return &out, nil
}

func (c *Client) DeletePedido(ctx context.Context, id int64) error {
	return remove(ctx, c, pathPedidos, id)
}

// CreateCandidato records tecnicoID as a candidato of pedidoID. Keyed like UpdatePedido.
func (c *Client) CreateCandidato(ctx context.Context, pedidoID, tecnicoID int64) (*models.PedidoCandidato, error) {
	in := models.PedidoCandidato{PedidoID: pedidoID, TecnicoID: tecnicoID}
	var out models.PedidoCandidato
	if err := c.do(ctx, call{method: http.MethodPost, path: pathCandidatos, body: in, keyed: true}, &out); err != nil {
		return nil, err
	}
	if out.ID == 0 {
		return nil, &APIError{Method: http.MethodPost, Path: pathCandidatos, kind: ErrServer, err: ErrEmptyResponse}
	}
	return &out, nil
}

func (c *Client) ListCandidatos(ctx context.Context, pedidoID int64) ([]models.PedidoCandidato, error) {
	return list[models.PedidoCandidato](ctx, c, pathCandidatos, models.By("pedidoId", pedidoID))
}

func (c *Client) DeleteCandidato(ctx context.Context, id int64) error {
	return remove(ctx, c, pathCandidatos, id)
}

func (c *Client) ListDisponibilidades(ctx context.Context, pedidoID int64) ([]models.PedidoDisponibilidad, error) {
	return list[models.PedidoDisponibilidad](ctx, c, pathDisponibilidades, models.By("pedidoId", pedidoID))
}

func (c *Client) CreateDisponibilidad(ctx context.Context, d *models.PedidoDisponibilidad) (*models.PedidoDisponibilidad, error) {
	return create(ctx, c, pathDisponibilidades, d)
}

func (c *Client) DeleteDisponibilidad(ctx context.Context, id int64) error {
	return remove(ctx, c, pathDisponibilidades, id)
}

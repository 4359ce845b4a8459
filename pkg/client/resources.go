package client

import (
	"context"
	"net/http"

	"github.com/garnizeh/pedidos/pkg/models"
	"github.com/garnizeh/pedidos/pkg/repository"
)

const (
	pathAreas        = "/areas"
	pathClientes     = "/clientes"
	pathTecnicos     = "/tecnicos"
	pathTecnicoAreas = "/tecnico-areas"
	pathUsuarios     = "/usuarios"
	pathFacturas     = "/facturas"
)

var _ repository.AreaRepo = (*Client)(nil)
var _ repository.ProfileRepo = (*Client)(nil)
var _ repository.UsuarioRepo = (*Client)(nil)
var _ repository.FacturaRepo = (*Client)(nil)

func list[T any](ctx context.Context, c *Client, path string, filter models.Filter) ([]T, error) {
	var out []T
	if err := c.do(ctx, call{method: http.MethodGet, path: path, query: filter.Values()}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func get[T any](ctx context.Context, c *Client, path string, id int64) (*T, error) {
	var out T
	if err := c.do(ctx, call{method: http.MethodGet, path: itemPath(path, id)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func create[T any](ctx context.Context, c *Client, path string, in *T) (*T, error) {
	var out T
	if err := c.do(ctx, call{method: http.MethodPost, path: path, body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func update[T any](ctx context.Context, c *Client, path string, id int64, in *T) (*T, error) {
	var out T
	if err := c.do(ctx, call{method: http.MethodPut, path: itemPath(path, id), body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func remove(ctx context.Context, c *Client, path string, id int64) error {
	return c.do(ctx, call{method: http.MethodDelete, path: itemPath(path, id)}, nil)
}

// Areas

func (c *Client) ListAreas(ctx context.Context, filter models.Filter) ([]models.Area, error) {
	return list[models.Area](ctx, c, pathAreas, filter)
}

func (c *Client) GetArea(ctx context.Context, id int64) (*models.Area, error) {
	return get[models.Area](ctx, c, pathAreas, id)
}

func (c *Client) CreateArea(ctx context.Context, a *models.Area) (*models.Area, error) {
	return create(ctx, c, pathAreas, a)
}

func (c *Client) UpdateArea(ctx context.Context, a *models.Area) (*models.Area, error) {
	return update(ctx, c, pathAreas, a.ID, a)
}

func (c *Client) DeleteArea(ctx context.Context, id int64) error {
	return remove(ctx, c, pathAreas, id)
}

// Clientes

func (c *Client) ListClientes(ctx context.Context, filter models.Filter) ([]models.Cliente, error) {
	return list[models.Cliente](ctx, c, pathClientes, filter)
}

func (c *Client) GetCliente(ctx context.Context, id int64) (*models.Cliente, error) {
	return get[models.Cliente](ctx, c, pathClientes, id)
}

func (c *Client) CreateCliente(ctx context.Context, cl *models.Cliente) (*models.Cliente, error) {
	return create(ctx, c, pathClientes, cl)
}

func (c *Client) UpdateCliente(ctx context.Context, cl *models.Cliente) (*models.Cliente, error) {
	return update(ctx, c, pathClientes, cl.ID, cl)
}

func (c *Client) DeleteCliente(ctx context.Context, id int64) error {
	return remove(ctx, c, pathClientes, id)
}

// Tecnicos

func (c *Client) ListTecnicos(ctx context.Context, filter models.Filter) ([]models.Tecnico, error) {
	return list[models.Tecnico](ctx, c, pathTecnicos, filter)
}

func (c *Client) GetTecnico(ctx context.Context, id int64) (*models.Tecnico, error) {
	return get[models.Tecnico](ctx, c, pathTecnicos, id)
}

func (c *Client) CreateTecnico(ctx context.Context, t *models.Tecnico) (*models.Tecnico, error) {
	return create(ctx, c, pathTecnicos, t)
}

func (c *Client) UpdateTecnico(ctx context.Context, t *models.Tecnico) (*models.Tecnico, error) {
	return update(ctx, c, pathTecnicos, t.ID, t)
}

func (c *Client) DeleteTecnico(ctx context.Context, id int64) error {
	return remove(ctx, c, pathTecnicos, id)
}

// Tecnico areas

func (c *Client) ListTecnicoAreas(ctx context.Context, filter models.Filter) ([]models.TecnicoArea, error) {
	return list[models.TecnicoArea](ctx, c, pathTecnicoAreas, filter)
}

func (c *Client) CreateTecnicoArea(ctx context.Context, ta *models.TecnicoArea) (*models.TecnicoArea, error) {
	return create(ctx, c, pathTecnicoAreas, ta)
}

func (c *Client) DeleteTecnicoArea(ctx context.Context, id int64) error {
	return remove(ctx, c, pathTecnicoAreas, id)
}

// Usuarios

func (c *Client) ListUsuarios(ctx context.Context, filter models.Filter) ([]models.Usuario, error) {
	return list[models.Usuario](ctx, c, pathUsuarios, filter)
}

func (c *Client) GetUsuario(ctx context.Context, id int64) (*models.Usuario, error) {
	return get[models.Usuario](ctx, c, pathUsuarios, id)
}

func (c *Client) UpdateUsuario(ctx context.Context, u *models.Usuario) (*models.Usuario, error) {
	return update(ctx, c, pathUsuarios, u.ID, u)
}

func (c *Client) DeleteUsuario(ctx context.Context, id int64) error {
	return remove(ctx, c, pathUsuarios, id)
}

// Facturas

func (c *Client) ListFacturas(ctx context.Context, filter models.Filter) ([]models.Factura, error) {
	return list[models.Factura](ctx, c, pathFacturas, filter)
}

func (c *Client) CreateFactura(ctx context.Context, f *models.Factura) (*models.Factura, error) {
	return create(ctx, c, pathFacturas, f)
}

func (c *Client) UpdateFactura(ctx context.Context, f *models.Factura) (*models.Factura, error) {
	return update(ctx, c, pathFacturas, f.ID, f)
}

func (c *Client) DeleteFactura(ctx context.Context, id int64) error {
	return remove(ctx, c, pathFacturas, id)
}

package repository

//go:generate mockgen -destination=mock/mock.go -package=mock github.com/garnizeh/pedidos/pkg/repository AuthRepo,DisponibilidadRepo,MutationRepo,PedidoRepo,ProfileRepo,SessionRepo

import (
	"context"

	"github.com/garnizeh/pedidos/pkg/models"
)

// Repository interfaces consumed by the pedido core. The REST binding in
// pkg/client implements the remote ones; internal/repository/sqlite
// implements the local ones (session, mutation journal).

type PedidoRepo interface {
	FetchPedidos(ctx context.Context, filter models.Filter) ([]models.Pedido, error)
	GetPedido(ctx context.Context, id int64) (*models.Pedido, error)
	CreatePedido(ctx context.Context, p *models.Pedido) (*models.Pedido, error)
	UpdatePedido(ctx context.Context, id int64, patch models.PedidoPatch) (*models.Pedido, error)
	DeletePedido(ctx context.Context, id int64) error
	CreateCandidato(ctx context.Context, pedidoID, tecnicoID int64) (*models.PedidoCandidato, error)
	ListCandidatos(ctx context.Context, pedidoID int64) ([]models.PedidoCandidato, error)
}

type DisponibilidadRepo interface {
	ListDisponibilidades(ctx context.Context, pedidoID int64) ([]models.PedidoDisponibilidad, error)
	CreateDisponibilidad(ctx context.Context, d *models.PedidoDisponibilidad) (*models.PedidoDisponibilidad, error)
	DeleteDisponibilidad(ctx context.Context, id int64) error
}

// ProfileRepo resolves the cliente or tecnico record behind a usuario.
type ProfileRepo interface {
	ListClientes(ctx context.Context, filter models.Filter) ([]models.Cliente, error)
	ListTecnicos(ctx context.Context, filter models.Filter) ([]models.Tecnico, error)
	ListTecnicoAreas(ctx context.Context, filter models.Filter) ([]models.TecnicoArea, error)
}

type AuthRepo interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
}

// SessionRepo persists the single local session. Load returns nil, nil when
// nothing is stored.
type SessionRepo interface {
	LoadSession(ctx context.Context) (*models.Session, error)
	SaveSession(ctx context.Context, s *models.Session) error
	ClearSession(ctx context.Context) error
}

// MutationRepo journals idempotency keys of mutations that have not been
// confirmed by the API, so a retry after a failure reuses the same key.
type MutationRepo interface {
	PendingKey(ctx context.Context, pedidoID int64, action string) (string, error)
	RecordMutation(ctx context.Context, key string, pedidoID int64, action string) error
	CompleteMutation(ctx context.Context, key string) error
}

// Admin resources are plain CRUD over the API.

type AreaRepo interface {
	ListAreas(ctx context.Context, filter models.Filter) ([]models.Area, error)
	CreateArea(ctx context.Context, a *models.Area) (*models.Area, error)
	UpdateArea(ctx context.Context, a *models.Area) (*models.Area, error)
	DeleteArea(ctx context.Context, id int64) error
}

type UsuarioRepo interface {
	ListUsuarios(ctx context.Context, filter models.Filter) ([]models.Usuario, error)
	UpdateUsuario(ctx context.Context, u *models.Usuario) (*models.Usuario, error)
	DeleteUsuario(ctx context.Context, id int64) error
}

type FacturaRepo interface {
	ListFacturas(ctx context.Context, filter models.Filter) ([]models.Factura, error)
	CreateFactura(ctx context.Context, f *models.Factura) (*models.Factura, error)
	UpdateFactura(ctx context.Context, f *models.Factura) (*models.Factura, error)
	DeleteFactura(ctx context.Context, id int64) error
}

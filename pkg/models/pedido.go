package models

import (
	"fmt"
	"net/url"
	"sort"
	"time"
)

type Estado string

const (
	EstadoSinCandidatos       Estado = "sin_candidatos"
	EstadoConCandidatos       Estado = "con_candidatos"
	EstadoTecnicoSeleccionado Estado = "tecnico_seleccionado"
	EstadoFinalizado          Estado = "finalizado"
	EstadoCalificado          Estado = "calificado"
	EstadoCancelado           Estado = "cancelado"
)

// ParseEstado converts a raw string to an Estado.
func ParseEstado(s string) (Estado, error) {
	e := Estado(s)
	switch e {
	case EstadoSinCandidatos, EstadoConCandidatos, EstadoTecnicoSeleccionado,
		EstadoFinalizado, EstadoCalificado, EstadoCancelado:
		return e, nil
	}
	return "", fmt.Errorf("unknown pedido estado %q", s)
}

// Dia is a day of the week as the API spells it.
type Dia string

const (
	DiaLunes     Dia = "lunes"
	DiaMartes    Dia = "martes"
	DiaMiercoles Dia = "miercoles"
	DiaJueves    Dia = "jueves"
	DiaViernes   Dia = "viernes"
	DiaSabado    Dia = "sabado"
	DiaDomingo   Dia = "domingo"
)

// Dias lists the week in order, starting on Monday.
var Dias = []Dia{DiaLunes, DiaMartes, DiaMiercoles, DiaJueves, DiaViernes, DiaSabado, DiaDomingo}

// ParseDia converts a raw string to a Dia.
func ParseDia(s string) (Dia, error) {
	for _, d := range Dias {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown dia %q", s)
}

type Pedido struct {
	ID             int64      `json:"id"`
	ClienteID      int64      `json:"clienteId"`
	TecnicoID      *int64     `json:"tecnicoId"`
	AreaID         int64      `json:"areaId"`
	Estado         Estado     `json:"estado"`
	Requerimiento  string     `json:"requerimiento"`
	Calificacion   *int       `json:"calificacion"`
	Comentario     *string    `json:"comentario"`
	Respuesta      *string    `json:"respuesta"`
	FechaCreacion  *time.Time `json:"fechaCreacion,omitempty"`
	FechaCierre    *time.Time `json:"fechaCierre,omitempty"`
	FechaCancelado *time.Time `json:"fechaCancelado,omitempty"`

	// Loaded from /pedido-candidatos and /pedido-disponibilidad when needed.
	Candidatos       []PedidoCandidato      `json:"candidatos,omitempty"`
	Disponibilidades []PedidoDisponibilidad `json:"disponibilidades,omitempty"`
}

// HasCandidato reports whether tecnicoID already applied to the pedido.
func (p Pedido) HasCandidato(tecnicoID int64) bool {
	for _, c := range p.Candidatos {
		if c.TecnicoID == tecnicoID {
			return true
		}
	}
	return false
}

type PedidoCandidato struct {
	ID        int64 `json:"id,omitempty"`
	PedidoID  int64 `json:"pedidoId"`
	TecnicoID int64 `json:"tecnicoId"`
}

type PedidoDisponibilidad struct {
	ID         int64  `json:"id,omitempty"`
	PedidoID   int64  `json:"pedidoId"`
	Dia        Dia    `json:"dia"`
	HoraInicio string `json:"horaInicio"`
	HoraFin    string `json:"horaFin"`
}

// PedidoPatch is the partial body of PUT /pedidos/{id}. Nil fields are not sent.
type PedidoPatch struct {
	Estado         *Estado    `json:"estado,omitempty"`
	TecnicoID      *int64     `json:"tecnicoId,omitempty"`
	Calificacion   *int       `json:"calificacion,omitempty"`
	Comentario     *string    `json:"comentario,omitempty"`
	Respuesta      *string    `json:"respuesta,omitempty"`
	Requerimiento  *string    `json:"requerimiento,omitempty"`
	FechaCierre    *time.Time `json:"fechaCierre,omitempty"`
	FechaCancelado *time.Time `json:"fechaCancelado,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p PedidoPatch) Empty() bool {
	return p.Estado == nil && p.TecnicoID == nil && p.Calificacion == nil &&
		p.Comentario == nil && p.Respuesta == nil && p.Requerimiento == nil &&
		p.FechaCierre == nil && p.FechaCancelado == nil
}

// Filter is a set of field/value pairs sent as list query parameters,
// e.g. {"clienteId": "3"}.
type Filter map[string]string

// By returns a single-pair filter with an integer value.
func By(field string, id int64) Filter {
	return Filter{field: fmt.Sprint(id)}
}

// Values encodes the filter as a query string in stable key order.
func (f Filter) Values() url.Values {
	v := url.Values{}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v.Set(k, f[k])
	}
	return v
}

// PedidoForm is what a client fills in to open a pedido.
type PedidoForm struct {
	ClienteID        int64                  `json:"clienteId"`
	AreaID           int64                  `json:"areaId"`
	Requerimiento    string                 `json:"requerimiento"`
	Disponibilidades []PedidoDisponibilidad `json:"-"`
}

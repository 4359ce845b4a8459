package lifecycle

import (
	"time"

	"github.com/garnizeh/pedidos/pkg/models"
)

// Patch returns the fields that differ between before and after, ready for
// UpdatePedido. Candidatos are not part of the patch: they live in their own
// resource.
func Patch(before, after models.Pedido) models.PedidoPatch {
	var out models.PedidoPatch
	if before.Estado != after.Estado {
		e := after.Estado
		out.Estado = &e
	}
	if !eqInt64(before.TecnicoID, after.TecnicoID) {
		out.TecnicoID = after.TecnicoID
	}
	if !eqInt(before.Calificacion, after.Calificacion) {
		out.Calificacion = after.Calificacion
	}
	if !eqString(before.Comentario, after.Comentario) {
		out.Comentario = after.Comentario
	}
	if !eqString(before.Respuesta, after.Respuesta) {
		out.Respuesta = after.Respuesta
	}
	if before.Requerimiento != after.Requerimiento {
		r := after.Requerimiento
		out.Requerimiento = &r
	}
	if !eqTime(before.FechaCierre, after.FechaCierre) {
		out.FechaCierre = after.FechaCierre
	}
	if !eqTime(before.FechaCancelado, after.FechaCancelado) {
		out.FechaCancelado = after.FechaCancelado
	}
	return out
}

func eqInt64(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

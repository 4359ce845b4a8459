package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/garnizeh/pedidos/internal/pedidos"
	"github.com/garnizeh/pedidos/internal/session"
	"github.com/garnizeh/pedidos/internal/validation"
	"github.com/garnizeh/pedidos/pkg/client"
	"github.com/garnizeh/pedidos/pkg/lifecycle"
	"github.com/garnizeh/pedidos/pkg/models"
)

// message turns an error into the text shown to the user. Transport and
// server details stay in the debug log.
func message(err error) string {
	var ue usageError
	var ve *validation.ValidationError
	var apiErr *client.APIError
	var ie *pedidos.IncompleteError
	switch {
	case errors.As(err, &ue):
		return ue.msg
	case errors.As(err, &ie):
		return fmt.Sprintf("el pedido %d se creó pero no se pudo guardar la disponibilidad del %s; revisalo con pedidos show %d", ie.PedidoID, ie.Dia, ie.PedidoID)
	case errors.As(err, &ve):
		parts := make([]string, 0, len(ve.Fields))
		for _, f := range ve.Fields {
			parts = append(parts, f.Field+": "+f.Message)
		}
		return "revisá los datos ingresados (" + strings.Join(parts, "; ") + ")"
	case errors.Is(err, lifecycle.ErrInvalidInput):
		return "los datos de la acción no son válidos"
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		return "la acción no está permitida en el estado actual del pedido"
	case errors.Is(err, pedidos.ErrBusy):
		return "ya hay una operación en curso para este pedido"
	case errors.Is(err, session.ErrNoSession):
		return "tenés que iniciar sesión (pedidos login)"
	case errors.Is(err, pedidos.ErrNoProfile):
		return "tu usuario no tiene perfil de cliente o técnico"
	case errors.Is(err, pedidos.ErrForbidden), errors.Is(err, session.ErrForbidden):
		return "no tenés permiso para realizar esta acción"
	case errors.Is(err, client.ErrAuth):
		return "credenciales inválidas o sesión vencida"
	case errors.Is(err, client.ErrNotFound), errors.Is(err, pedidos.ErrNotFound):
		return "no se encontró lo que buscás"
	case errors.Is(err, client.ErrNetwork):
		return "no se pudo conectar con el servidor, intentá de nuevo"
	case errors.Is(err, client.ErrServer):
		return "el servidor no pudo procesar la solicitud, intentá más tarde"
	case errors.As(err, &apiErr) && errors.Is(err, client.ErrRejected):
		if apiErr.Message != "" {
			return "el servidor rechazó la solicitud: " + apiErr.Message
		}
		return "el servidor rechazó la solicitud"
	}
	return "ocurrió un error inesperado"
}

var estadoLabel = map[models.Estado]string{
	models.EstadoSinCandidatos:       "Sin candidatos",
	models.EstadoConCandidatos:       "Con candidatos",
	models.EstadoTecnicoSeleccionado: "Técnico seleccionado",
	models.EstadoFinalizado:          "Finalizado",
	models.EstadoCalificado:          "Calificado",
	models.EstadoCancelado:           "Cancelado",
}

func label(e models.Estado) string {
	if l, ok := estadoLabel[e]; ok {
		return l
	}
	return string(e)
}

func actions(p lifecycle.Permissions) string {
	as := p.Actions()
	if len(as) == 0 {
		return "-"
	}
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = string(a)
	}
	return strings.Join(out, ",")
}

func optID(id *int64) string {
	if id == nil {
		return "-"
	}
	return fmt.Sprint(*id)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func printViews(w io.Writer, vs []pedidos.View) {
	if len(vs) == 0 {
		fmt.Fprintln(w, "No hay pedidos.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tESTADO\tAREA\tCLIENTE\tTECNICO\tCANDIDATOS\tREQUERIMIENTO\tACCIONES")
	for _, v := range vs {
		p := v.Pedido
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\t%d\t%s\t%s\n",
			p.ID, label(p.Estado), p.AreaID, p.ClienteID, optID(p.TecnicoID),
			len(p.Candidatos), truncate(p.Requerimiento, 40), actions(v.Permissions))
	}
	tw.Flush()
}

func printView(w io.Writer, v *pedidos.View) {
	p := v.Pedido
	fmt.Fprintf(w, "Pedido #%d (%s)\n", p.ID, label(p.Estado))
	fmt.Fprintf(w, "  Área:          %d\n", p.AreaID)
	fmt.Fprintf(w, "  Cliente:       %d\n", p.ClienteID)
	fmt.Fprintf(w, "  Técnico:       %s\n", optID(p.TecnicoID))
	fmt.Fprintf(w, "  Requerimiento: %s\n", p.Requerimiento)
	if p.FechaCreacion != nil {
		fmt.Fprintf(w, "  Creado:        %s\n", p.FechaCreacion.Local().Format("02/01/2006 15:04"))
	}
	if p.FechaCierre != nil {
		fmt.Fprintf(w, "  Cerrado:       %s\n", p.FechaCierre.Local().Format("02/01/2006 15:04"))
	}
	if p.FechaCancelado != nil {
		fmt.Fprintf(w, "  Cancelado:     %s\n", p.FechaCancelado.Local().Format("02/01/2006 15:04"))
	}
	if p.Calificacion != nil {
		fmt.Fprintf(w, "  Calificación:  %s (%d/5)\n", strings.Repeat("★", *p.Calificacion), *p.Calificacion)
	}
	if p.Comentario != nil {
		fmt.Fprintf(w, "  Comentario:    %s\n", *p.Comentario)
	}
	if p.Respuesta != nil {
		fmt.Fprintf(w, "  Respuesta:     %s\n", *p.Respuesta)
	}
	if len(p.Disponibilidades) > 0 {
		fmt.Fprintln(w, "  Disponibilidad:")
		for _, d := range p.Disponibilidades {
			fmt.Fprintf(w, "    [%d] %s %s-%s\n", d.ID, d.Dia, d.HoraInicio, d.HoraFin)
		}
	}
	if c := v.Permissions.Cliente; c != nil && (c.ViewCandidatos || v.Permissions.Rol == models.RolAdmin) {
		if len(p.Candidatos) > 0 {
			fmt.Fprintln(w, "  Candidatos:")
			for _, c := range p.Candidatos {
				fmt.Fprintf(w, "    técnico %d\n", c.TecnicoID)
			}
		}
	}
	fmt.Fprintf(w, "  Acciones:      %s\n", actions(v.Permissions))
}

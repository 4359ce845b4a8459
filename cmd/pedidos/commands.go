package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/garnizeh/pedidos/internal/pedidos"
	"github.com/garnizeh/pedidos/pkg/models"
)

type command struct {
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"login":          {"-email correo -password clave", cmdLogin},
	"register":       {"-email correo -password clave -nombre N -apellido A -rol cliente|tecnico [-telefono T]", cmdRegister},
	"logout":         {"", cmdLogout},
	"whoami":         {"", cmdWhoami},
	"list":           {"[-estado E]", cmdList},
	"open":           {"", cmdOpen},
	"show":           {"<pedido>", cmdShow},
	"create":         {"-area ID -requerimiento texto [-disp \"lunes 09:00-12:00\"]... [-cliente ID]", cmdCreate},
	"cancel":         {"<pedido>", cmdCancel},
	"apply":          {"<pedido>", cmdApply},
	"select":         {"<pedido> <tecnico>", cmdSelect},
	"rate":           {"[-comentario texto] <pedido> <1-5>", cmdRate},
	"respond":        {"<pedido> <respuesta...>", cmdRespond},
	"finalize":       {"<pedido>", cmdFinalize},
	"delete":         {"<pedido>", cmdDelete},
	"disponibilidad": {"add <pedido> <dia> <HH:MM-HH:MM> | rm <pedido> <id>", cmdDisponibilidad},
	"areas":          {"[add -nombre N [-descripcion D] | rm <id>]", cmdAreas},
	"facturas":       {"[-tecnico ID]", cmdFacturas},
	"usuarios":       {"[rm <id>]", cmdUsuarios},
}

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return usagef("argumentos inválidos: %v", err)
	}
	return nil
}

func parseID(s, what string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, usagef("%s inválido: %q", what, s)
	}
	return id, nil
}

// pedidoArg reads the pedido id, the only positional argument of most commands.
func pedidoArg(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, usagef("falta el número de pedido")
	}
	return parseID(args[0], "pedido")
}

// parseSlot reads a disponibilidad written as "<dia> <HH:MM>-<HH:MM>".
func parseSlot(s string) (models.PedidoDisponibilidad, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return models.PedidoDisponibilidad{}, usagef("disponibilidad inválida %q, usá \"lunes 09:00-12:00\"", s)
	}
	dia, err := models.ParseDia(strings.ToLower(fields[0]))
	if err != nil {
		return models.PedidoDisponibilidad{}, usagef("día inválido %q", fields[0])
	}
	from, to, ok := strings.Cut(fields[1], "-")
	if !ok {
		return models.PedidoDisponibilidad{}, usagef("horario inválido %q, usá HH:MM-HH:MM", fields[1])
	}
	return models.PedidoDisponibilidad{Dia: dia, HoraInicio: from, HoraFin: to}, nil
}

// slots collects repeated -disp flags.
type slots []models.PedidoDisponibilidad

func (s *slots) String() string { return fmt.Sprint(len(*s)) }

func (s *slots) Set(v string) error {
	d, err := parseSlot(v)
	if err != nil {
		return err
	}
	*s = append(*s, d)
	return nil
}

func cmdLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlags("login")
	email := fs.String("email", "", "")
	password := fs.String("password", "", "")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	sess, err := a.sessions.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	a.ok("sesión iniciada como %s (%s)", sess.Usuario.Email, sess.Usuario.Rol)
	return nil
}

func cmdRegister(ctx context.Context, a *app, args []string) error {
	fs := newFlags("register")
	var req models.RegisterRequest
	fs.StringVar(&req.Email, "email", "", "")
	fs.StringVar(&req.Password, "password", "", "")
	fs.StringVar(&req.Nombre, "nombre", "", "")
	fs.StringVar(&req.Apellido, "apellido", "", "")
	fs.StringVar(&req.Telefono, "telefono", "", "")
	rol := fs.String("rol", string(models.RolCliente), "")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	req.Rol = models.Rol(*rol)
	u, err := a.sessions.Register(ctx, req)
	if err != nil {
		return err
	}
	a.ok("cuenta creada para %s, ya podés iniciar sesión", u.Email)
	return nil
}

func cmdLogout(ctx context.Context, a *app, _ []string) error {
	if err := a.sessions.Logout(ctx); err != nil {
		return err
	}
	a.ok("sesión cerrada")
	return nil
}

func cmdWhoami(ctx context.Context, a *app, _ []string) error {
	sess, err := a.sessions.Hydrate(ctx)
	if err != nil {
		return err
	}
	u := sess.Usuario
	fmt.Fprintf(a.out, "%s (%s), usuario %d", u.Email, u.Rol, u.ID)
	if !sess.ExpiresAt.IsZero() {
		fmt.Fprintf(a.out, ", sesión válida hasta %s", sess.ExpiresAt.Local().Format("02/01/2006 15:04"))
	}
	fmt.Fprintln(a.out)
	return nil
}

func cmdList(ctx context.Context, a *app, args []string) error {
	fs := newFlags("list")
	estado := fs.String("estado", "", "")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	who, err := a.actor(ctx)
	if err != nil {
		return err
	}

	switch who.Rol {
	case models.RolCliente:
		vs, err := a.svc.ListForCliente(ctx, who)
		if err != nil {
			return err
		}
		printViews(a.out, vs)
	case models.RolTecnico:
		vs, err := a.svc.ListForTecnico(ctx, who)
		if err != nil {
			return err
		}
		printViews(a.out, vs)
	default:
		filter := models.Filter{}
		if *estado != "" {
			e, err := models.ParseEstado(*estado)
			if err != nil {
				return usagef("estado desconocido %q", *estado)
			}
			filter["estado"] = string(e)
		}
		vs, err := a.svc.ListAll(ctx, who, filter)
		if err != nil {
			return err
		}
		printViews(a.out, vs)
	}
	return nil
}

func cmdOpen(ctx context.Context, a *app, _ []string) error {
	who, err := a.actor(ctx)
	if err != nil {
		return err
	}
	vs, err := a.svc.ListOpen(ctx, who)
	if err != nil {
		return err
	}
	printViews(a.out, vs)
	return nil
}

func cmdShow(ctx context.Context, a *app, args []string) error {
	id, err := pedidoArg(args)
	if err != nil {
		return err
	}
	who, err := a.actor(ctx)
	if err != nil {
		return err
	}
	v, err := a.svc.Get(ctx, who, id)
	if err != nil {
		return err
	}
	printView(a.out, v)
	return nil
}

func cmdCreate(ctx context.Context, a *app, args []string) error {
	fs := newFlags("create")
	var form models.PedidoForm
	var disp slots
	fs.Int64Var(&form.AreaID, "area", 0, "")
	fs.StringVar(&form.Requerimiento, "requerimiento", "", "")
	fs.Int64Var(&form.ClienteID, "cliente", 0, "")
	fs.Var(&disp, "disp", "")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	form.Disponibilidades = disp

	who, err := a.actor(ctx)
	if err != nil {
		return err
	}
	v, err := a.svc.Create(ctx, who, form)
	if err != nil {
		return err
	}
	a.ok("pedido #%d creado", v.Pedido.ID)
	return nil
}

// mutation runs a single-pedido action and reports the resulting estado.
func mutation(ctx context.Context, a *app, args []string, verb string,
	do func(ctx context.Context, who pedidos.Actor, id int64) (*pedidos.View, error)) error {
	id, err := pedidoArg(args)
	if err != nil {
		return err
	}
	who, err := a.actor(ctx)
	if err != nil {
		return err
	}
	v, err := do(ctx, who, id)
	if err != nil {
		return err
	}
	a.ok("pedido #%d %s (%s)", id, verb, label(v.Pedido.Estado))
	return nil
}

func cmdCancel(ctx context.Context, a *app, args []string) error {
	return mutation(ctx, a, args, "cancelado", a.svc.Cancel)
}

func cmdApply(ctx context.Context, a *app, args []string) error {
	return mutation(ctx, a, args, "con tu postulación", a.svc.Apply)
}

func cmdFinalize(ctx context.Context, a *app, args []string) error {
	return mutation(ctx, a, args, "finalizado", a.svc.Finalize)
}

func cmdSelect(ctx context.Context, a *app, args []string) error {
	if len(args) != 2 {
		return usagef("indicá el pedido y el técnico")
	}
	tecnicoID, err := parseID(args[1], "técnico")
	if err != nil {
		return err
	}
	return mutation(ctx, a, args[:1], fmt.Sprintf("asignado al técnico %d", tecnicoID),
		func(ctx context.Context, who pedidos.Actor, id int64) (*pedidos.View, error) {
			return a.svc.SelectTecnico(ctx, who, id, tecnicoID)
		})
}

func cmdRate(ctx context.Context, a *app, args []string) error {
	fs := newFlags("rate")
	comentario := fs.String("comentario", "", "")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) != 2 {
		return usagef("indicá el pedido y la calificación")
	}
	score, err := strconv.Atoi(rest[1])
	if err != nil {
		return usagef("calificación inválida %q", rest[1])
	}
	return mutation(ctx, a, rest[:1], fmt.Sprintf("calificado con %d", score),
		func(ctx context.Context, who pedidos.Actor, id int64) (*pedidos.View, error) {
			return a.svc.Rate(ctx, who, id, score, *comentario)
		})
}

func cmdRespond(ctx context.Context, a *app, args []string) error {
	if len(args) < 2 {
		return usagef("indicá el pedido y la respuesta")
	}
	respuesta := joinArgs(args[1:])
	return mutation(ctx, a, args[:1], "respondido",
		func(ctx context.Context, who pedidos.Actor, id int64) (*pedidos.View, error) {
			return a.svc.Respond(ctx, who, id, respuesta)
		})
}

func cmdDelete(ctx context.Context, a *app, args []string) error {
	id, err := pedidoArg(args)
	if err != nil {
		return err
	}
	who, err := a.actor(ctx)
	if err != nil {
		return err
	}
	if err := a.svc.Delete(ctx, who, id); err != nil {
		return err
	}
	a.ok("pedido #%d eliminado", id)
	return nil
}

func cmdDisponibilidad(ctx context.Context, a *app, args []string) error {
	if len(args) < 1 {
		return usagef("indicá add o rm")
	}
	switch args[0] {
	case "add":
		if len(args) != 4 {
			return usagef("indicá pedido, día y horario")
		}
		id, err := parseID(args[1], "pedido")
		if err != nil {
			return err
		}
		d, err := parseSlot(args[2] + " " + args[3])
		if err != nil {
			return err
		}
		who, err := a.actor(ctx)
		if err != nil {
			return err
		}
		got, err := a.svc.AddDisponibilidad(ctx, who, id, d)
		if err != nil {
			return err
		}
		a.ok("disponibilidad %d agregada al pedido #%d", got.ID, id)
	case "rm":
		if len(args) != 3 {
			return usagef("indicá pedido y disponibilidad")
		}
		id, err := parseID(args[1], "pedido")
		if err != nil {
			return err
		}
		dispID, err := parseID(args[2], "disponibilidad")
		if err != nil {
			return err
		}
		who, err := a.actor(ctx)
		if err != nil {
			return err
		}
		if err := a.svc.RemoveDisponibilidad(ctx, who, id, dispID); err != nil {
			return err
		}
		a.ok("disponibilidad %d eliminada", dispID)
	default:
		return usagef("subcomando desconocido %q", args[0])
	}
	return nil
}

func cmdAreas(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		if _, err := a.sessions.Hydrate(ctx); err != nil {
			return err
		}
		areas, err := a.api.ListAreas(ctx, nil)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNOMBRE\tDESCRIPCION")
		for _, ar := range areas {
			desc := ""
			if ar.Descripcion != nil {
				desc = *ar.Descripcion
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\n", ar.ID, ar.Nombre, desc)
		}
		return tw.Flush()
	}

	if _, err := a.sessions.Hydrate(ctx); err != nil {
		return err
	}
	if _, err := a.sessions.Require(models.RolAdmin); err != nil {
		return err
	}
	switch args[0] {
	case "add":
		fs := newFlags("areas add")
		nombre := fs.String("nombre", "", "")
		descripcion := fs.String("descripcion", "", "")
		if err := parseFlags(fs, args[1:]); err != nil {
			return err
		}
		area := models.Area{Nombre: strings.TrimSpace(*nombre)}
		if *descripcion != "" {
			area.Descripcion = descripcion
		}
		if err := a.validator.Area(ctx, area); err != nil {
			return err
		}
		got, err := a.api.CreateArea(ctx, &area)
		if err != nil {
			return err
		}
		a.ok("área %d creada", got.ID)
	case "rm":
		if len(args) != 2 {
			return usagef("indicá el área")
		}
		id, err := parseID(args[1], "área")
		if err != nil {
			return err
		}
		if err := a.api.DeleteArea(ctx, id); err != nil {
			return err
		}
		a.ok("área %d eliminada", id)
	default:
		return usagef("subcomando desconocido %q", args[0])
	}
	return nil
}

func cmdFacturas(ctx context.Context, a *app, args []string) error {
	fs := newFlags("facturas")
	tecnico := fs.Int64("tecnico", 0, "")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	who, err := a.actor(ctx)
	if err != nil {
		return err
	}

	filter := models.Filter{}
	switch who.Rol {
	case models.RolTecnico:
		filter = models.By("tecnicoId", who.TecnicoID)
	case models.RolAdmin:
		if *tecnico > 0 {
			filter = models.By("tecnicoId", *tecnico)
		}
	default:
		return fmt.Errorf("facturas for rol %s: %w", who.Rol, pedidos.ErrForbidden)
	}

	facturas, err := a.api.ListFacturas(ctx, filter)
	if err != nil {
		return err
	}
	if len(facturas) == 0 {
		fmt.Fprintln(a.out, "No hay facturas.")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTECNICO\tPERIODO\tMONTO\tPAGADA")
	for _, f := range facturas {
		periodo, pagada := "-", "no"
		if f.Periodo != nil {
			periodo = *f.Periodo
		}
		if f.FechaPago != nil {
			pagada = f.FechaPago.Local().Format("02/01/2006")
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%.2f\t%s\n", f.ID, f.TecnicoID, periodo, f.Monto, pagada)
	}
	return tw.Flush()
}

func cmdUsuarios(ctx context.Context, a *app, args []string) error {
	if _, err := a.sessions.Hydrate(ctx); err != nil {
		return err
	}
	if _, err := a.sessions.Require(models.RolAdmin); err != nil {
		return err
	}
	if len(args) > 0 {
		if args[0] != "rm" || len(args) != 2 {
			return usagef("uso: usuarios rm <id>")
		}
		id, err := parseID(args[1], "usuario")
		if err != nil {
			return err
		}
		if err := a.api.DeleteUsuario(ctx, id); err != nil {
			return err
		}
		a.ok("usuario %d eliminado", id)
		return nil
	}

	us, err := a.api.ListUsuarios(ctx, nil)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMAIL\tROL\tNOMBRE")
	for _, u := range us {
		nombre := ""
		if u.Nombre != nil {
			nombre = *u.Nombre
		}
		if u.Apellido != nil {
			nombre = strings.TrimSpace(nombre + " " + *u.Apellido)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.Email, u.Rol, nombre)
	}
	return tw.Flush()
}

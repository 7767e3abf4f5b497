// Command tallerctl is an operator CLI over the workshop API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taller_flota/internal/client/agenda"
	"taller_flota/internal/client/api"
	"taller_flota/internal/client/documents"
	"taller_flota/internal/client/ficha"
	"taller_flota/internal/client/intake"
	"taller_flota/internal/client/reports"
	"taller_flota/internal/client/session"
	"taller_flota/internal/client/workorder"
	"taller_flota/internal/config"
	"taller_flota/internal/infrastructure/logger"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

const usage = `uso: tallerctl <comando> [opciones]

comandos:
  login      -u usuario -p clave
  logout
  slots      -date AAAA-MM-DD -location ID
  intake     -plate -date [-time] -location [-desc] [-driver RUT]
             [-brand -model -year -type] [-driver-name -driver-user -driver-pass]
  status     -plate PATENTE -to ESTADO [-comment TEXTO]
  ficha      -plate PATENTE [-from] [-to] [-status] [-location]
  docs       -plate PATENTE | -order ID
  upload     -file RUTA -title TITULO [-type FOTO|INFORME|OTRO] (-order ID | -plate PATENTE)
  reports    [-from] [-to]
  export     [-from] [-to] -out archivo.xlsx
  pause      -order ID [-start [-reason TEXTO] [-note TEXTO] | -stop]
  gate       -plate PATENTE [-entry [-driver RUT] | -exit] [-force -reason TEXTO]
  pending    [-watch 30s]
  mine       [-watch 30s]
`

type app struct {
	client *api.Client
	gate   *session.Gate
	log    *zap.Logger
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	zl := zap.NewNop()
	if os.Getenv("TALLERCTL_DEBUG") != "" {
		if zl, err = logger.New("development"); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	defer func() { _ = zl.Sync() }()

	client := api.New(api.ResolveBaseURL(cfg.Host, cfg.LocalAPIURL, cfg.RemoteAPIURL), api.WithLogger(zl))
	a := &app{
		client: client,
		gate:   session.NewGate(session.NewFileStore(cfg.SessionFile), client, zl),
		log:    zl,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "✖", workorder.Message(err))
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	page := pageFor(cmd)
	decision, err := a.gate.Check(page)
	if err != nil {
		return err
	}
	if decision.Redirect != "" && cmd != "login" {
		return errors.New("sesión no iniciada: ejecute tallerctl login")
	}
	if decision.Session != nil && cmd != "login" && cmd != "logout" {
		if !session.Allowed(decision.Session.Employee.Role, featureFor(cmd)) {
			return fmt.Errorf("el rol %s no tiene acceso a %s", decision.Session.Employee.RoleLabel, cmd)
		}
	}

	switch cmd {
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.gate.Logout(ctx)
	case "slots":
		return a.slots(ctx, args)
	case "intake":
		return a.intake(ctx, args)
	case "status":
		return a.status(ctx, args)
	case "ficha":
		return a.ficha(ctx, args)
	case "docs":
		return a.docs(ctx, args)
	case "upload":
		return a.upload(ctx, args)
	case "reports":
		return a.reports(ctx, args)
	case "export":
		return a.export(ctx, args)
	case "pause":
		return a.pause(ctx, args)
	case "gate":
		return a.gateAccess(ctx, args)
	case "pending":
		return a.board(ctx, args, a.client.PendingOrders)
	case "mine":
		return a.board(ctx, args, a.client.MechanicOrders)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("comando desconocido %q", cmd)
	}
}

func pageFor(cmd string) string {
	if cmd == "login" {
		return session.PageLogin
	}
	return cmd
}

func featureFor(cmd string) session.Feature {
	switch cmd {
	case "slots", "intake", "gate":
		return session.FeatureIngresoVehiculos
	case "status", "pending", "mine", "pause":
		return session.FeatureRegistroTaller
	case "ficha":
		return session.FeatureFichaVehiculo
	case "reports", "export":
		return session.FeatureReportes
	default:
		return session.FeatureInicio
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	user := fs.String("u", "", "usuario")
	pass := fs.String("p", "", "clave")
	_ = fs.Parse(args)

	s, err := a.gate.Login(ctx, *user, *pass)
	if err != nil {
		return err
	}
	fmt.Printf("Bienvenido, %s (%s)\n", s.Employee.Name, s.Employee.RoleLabel)
	for _, item := range session.VisibleNav(s.Employee.Role, session.DefaultNav) {
		fmt.Printf("  · %s\n", item.Label)
	}
	return nil
}

func (a *app) slots(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("slots", flag.ExitOnError)
	date := fs.String("date", time.Now().Format("2006-01-02"), "fecha")
	loc := fs.Int64("location", 0, "taller")
	_ = fs.Parse(args)

	picker := agenda.NewSlotPicker(a.client, a.log)
	if err := picker.Load(ctx, *date, *loc); err != nil {
		return err
	}
	for _, c := range picker.Controls() {
		mark := "libre"
		if !c.Enabled {
			mark = "ocupado"
		}
		fmt.Printf("%s  %s\n", c.Time, mark)
	}
	return nil
}

func (a *app) intake(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("intake", flag.ExitOnError)
	in := intake.Input{}
	fs.StringVar(&in.Plate, "plate", "", "patente")
	fs.StringVar(&in.Date, "date", "", "fecha")
	fs.StringVar(&in.Time, "time", "", "hora")
	fs.Int64Var(&in.LocationID, "location", 0, "taller")
	fs.StringVar(&in.Description, "desc", "", "descripción")
	fs.StringVar(&in.DriverRUT, "driver", "", "RUT del chofer")
	v := intake.VehicleInput{}
	fs.StringVar(&v.Brand, "brand", "", "marca")
	fs.StringVar(&v.Model, "model", "", "modelo")
	fs.IntVar(&v.Year, "year", 0, "año")
	fs.StringVar(&v.Type, "type", "", "tipo")
	d := intake.DriverInput{}
	fs.StringVar(&d.Name, "driver-name", "", "nombre del chofer")
	fs.StringVar(&d.Username, "driver-user", "", "usuario del chofer")
	fs.StringVar(&d.Password, "driver-pass", "", "clave del chofer")
	_ = fs.Parse(args)

	picker := agenda.NewSlotPicker(a.client, a.log)
	flow := intake.NewFlow(a.client, picker, a.log)

	res, err := flow.Submit(ctx, in)
	for err == nil && res.Stage != intake.StageDone {
		switch {
		case res.Stage == intake.StageVehicle && v.Brand != "":
			res, err = flow.ProvideVehicle(ctx, v)
			v.Brand = ""
		case res.Stage == intake.StageDriver && d.Name != "":
			res, err = flow.ProvideDriver(ctx, d)
			d.Name = ""
		case res.Stage == intake.StageVehicle:
			return errors.New("vehículo no registrado: indique -brand y -model")
		case res.Stage == intake.StageDriver:
			return errors.New("chofer nuevo: indique -driver-name, -driver-user y -driver-pass")
		default:
			return errors.New(res.Message)
		}
	}
	if err != nil {
		return err
	}
	fmt.Println(res.Message)
	if in.Time != "" {
		for _, c := range picker.Controls() {
			if c.Time == in.Time {
				fmt.Printf("Horario %s ocupado: %t\n", c.Time, c.Occupied)
			}
		}
	}
	return nil
}

func (a *app) status(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	plate := fs.String("plate", "", "patente")
	to := fs.String("to", "", "nuevo estado")
	comment := fs.String("comment", "", "comentario")
	_ = fs.Parse(args)

	view := ficha.NewView(a.client, newTerminalDialog(os.Stdin, os.Stdout), a.log)
	snap, err := view.Load(ctx, *plate, ficha.Filter{})
	if err != nil {
		return err
	}
	if snap.Panel == nil || !snap.Panel.Visible() {
		return errors.New("el vehículo no tiene una OT que admita cambios de estado")
	}
	if *to == "" {
		fmt.Printf("OT #%s en estado %s. Opciones: %v\n", snap.Panel.OrderKey(), snap.Panel.Status(), snap.Panel.Options())
		return nil
	}
	if *comment == "" {
		_, err = snap.Panel.Request(ctx, *to)
		return err
	}
	order, err := snap.Panel.Submit(ctx, *to, *comment)
	if err != nil {
		return err
	}
	if order != nil {
		fmt.Printf("OT #%d ahora en %s\n", order.ID, order.Status)
	}
	return nil
}

func (a *app) pause(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("pause", flag.ExitOnError)
	order := fs.Int64("order", 0, "OT")
	start := fs.Bool("start", false, "iniciar pausa")
	stop := fs.Bool("stop", false, "finalizar pausa")
	reason := fs.String("reason", "", "motivo")
	note := fs.String("note", "", "observación")
	_ = fs.Parse(args)

	switch {
	case *start && *stop:
		return errors.New("use -start o -stop, no ambos")
	case *start:
		p, err := a.client.StartPause(ctx, *order, *reason, *note)
		if err != nil {
			return err
		}
		fmt.Printf("Pausa iniciada en OT #%d: %s\n", p.OrderID, p.Reason)
		return nil
	case *stop:
		p, err := a.client.StopPause(ctx, *order)
		if err != nil {
			return err
		}
		fmt.Printf("Pausa finalizada en OT #%d (%s)\n", p.OrderID, time.Duration(p.ElapsedSeconds)*time.Second)
		return nil
	}

	pauses, err := a.client.Pauses(ctx, *order)
	if err != nil {
		return err
	}
	for _, p := range pauses {
		state := "finalizada"
		if p.Active {
			state = "activa"
		}
		fmt.Printf("  %s  %-10s %8s  %s\n", p.StartedAt.Local().Format("2006-01-02 15:04"), state, time.Duration(p.ElapsedSeconds)*time.Second, p.Reason)
	}
	return nil
}

func (a *app) gateAccess(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("gate", flag.ExitOnError)
	req := api.GateRequest{}
	fs.StringVar(&req.Plate, "plate", "", "patente")
	fs.StringVar(&req.DriverRUT, "driver", "", "RUT del chofer")
	fs.BoolVar(&req.Force, "force", false, "operación forzada")
	fs.StringVar(&req.Reason, "reason", "", "motivo")
	entry := fs.Bool("entry", false, "registrar ingreso")
	exit := fs.Bool("exit", false, "registrar salida")
	_ = fs.Parse(args)

	switch {
	case *entry && *exit:
		return errors.New("use -entry o -exit, no ambos")
	case *entry:
		rec, err := a.client.GateEntry(ctx, req)
		if err != nil {
			return err
		}
		fmt.Printf("Ingreso %s registrado (chofer %s)\n", rec.Plate, rec.DriverRUT)
		return nil
	case *exit:
		rec, err := a.client.GateExit(ctx, req)
		if err != nil {
			return err
		}
		fmt.Printf("Salida %s registrada el %s\n", rec.Plate, rec.ExitDate)
		return nil
	}

	st, err := a.client.GateLookup(ctx, req.Plate)
	if err != nil {
		return err
	}
	where := "fuera del recinto"
	if st.Inside {
		where = "dentro del recinto"
	}
	fmt.Printf("%s  %s %s  %s\n", st.Vehicle.Plate, st.Vehicle.Brand, st.Vehicle.Model, where)
	if o := st.LatestOrder; o != nil {
		fmt.Printf("Última OT #%d  %s  salida autorizada: %t\n", o.ID, o.Status, st.ExitReleased)
	}
	if len(st.ExpectedDrivers) > 0 {
		fmt.Printf("Chofer esperado: %v\n", st.ExpectedDrivers)
	}
	return nil
}

func (a *app) ficha(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("ficha", flag.ExitOnError)
	plate := fs.String("plate", "", "patente")
	f := ficha.Filter{}
	fs.StringVar(&f.From, "from", "", "desde")
	fs.StringVar(&f.To, "to", "", "hasta")
	fs.StringVar(&f.Status, "status", "", "estado")
	fs.Int64Var(&f.Location, "location", 0, "taller")
	_ = fs.Parse(args)

	snap, err := ficha.NewView(a.client, nil, a.log).Load(ctx, *plate, f)
	if err != nil {
		return err
	}
	if v := snap.Ficha.Vehicle; v != nil {
		fmt.Printf("%s  %s %s (%d)  %s\n", v.Plate, v.Brand, v.Model, v.Year, v.Status)
	} else {
		fmt.Printf("%s  vehículo no registrado\n", snap.Ficha.Plate)
	}
	k := snap.Ficha.KPIs
	fmt.Printf("OTs: %d  Incidentes: %d  Préstamos: %d  Llave: %s\n", k.Orders, k.Incidents, k.Loans, k.Key)
	if o := snap.Ficha.CurrentOrder; o != nil {
		fmt.Printf("OT actual #%d  %s  %s %s\n", o.ID, o.Status, o.Date, o.Time)
	}
	for _, o := range snap.History {
		fmt.Printf("  #%d  %s  %s\n", o.ID, o.Date, o.Status)
	}
	return nil
}

func (a *app) docs(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("docs", flag.ExitOnError)
	plate := fs.String("plate", "", "patente")
	order := fs.Int64("order", 0, "OT")
	_ = fs.Parse(args)

	listing, err := documents.NewManager(a.client, a.log).List(ctx, optionalID(*order), *plate)
	if err != nil {
		return err
	}
	printDocs("OT actual", listing.Current)
	printDocs("OTs anteriores", listing.Past)
	printDocs("Vehículo", listing.VehicleLevel)
	return nil
}

func printDocs(title string, docs []api.Document) {
	fmt.Printf("%s (%d)\n", title, len(docs))
	for _, d := range docs {
		fmt.Printf("  [%s] %s  %s\n", d.Type, d.Title, d.URL)
	}
}

func (a *app) upload(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	path := fs.String("file", "", "archivo")
	title := fs.String("title", "", "título")
	docType := fs.String("type", "", "tipo")
	plate := fs.String("plate", "", "patente")
	order := fs.Int64("order", 0, "OT")
	_ = fs.Parse(args)

	in := documents.UploadInput{Title: *title, Type: *docType, Plate: *plate, OrderID: optionalID(*order)}
	if *path != "" {
		f, err := os.Open(*path)
		if err != nil {
			return err
		}
		defer f.Close()
		in.File, in.FileName = f, f.Name()
	}
	doc, err := documents.NewManager(a.client, a.log).Upload(ctx, in)
	if err != nil {
		return err
	}
	fmt.Printf("Documento %s subido: %s\n", doc.ID, doc.URL)
	return nil
}

func (a *app) reports(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reports", flag.ExitOnError)
	from := fs.String("from", "", "desde")
	to := fs.String("to", "", "hasta")
	_ = fs.Parse(args)

	snap, err := reports.NewDashboard(a.client).Load(ctx, *from, *to)
	if err != nil {
		return err
	}
	s := snap.Summary
	fmt.Printf("%s → %s\n", s.From, s.To)
	fmt.Printf("Vehículos: %d  En taller: %d  OTs activas: %d  Empleados activos: %d\n",
		s.VehiclesTotal, s.VehiclesInWorkshop, s.ActiveOrders, s.ActiveEmployees)
	for i, l := range snap.ByStatus.Labels {
		fmt.Printf("  %-14s %3.0f\n", l, snap.ByStatus.Values[i])
	}
	fmt.Printf("Promedio global: %.1f días\n", snap.AverageTimes.GlobalDays)
	for i, l := range snap.DaysByShop.Labels {
		fmt.Printf("  %-20s %.1f días\n", l, snap.DaysByShop.Values[i])
	}
	return nil
}

func (a *app) export(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	f := api.OrdersFilter{}
	fs.StringVar(&f.From, "from", "", "desde")
	fs.StringVar(&f.To, "to", "", "hasta")
	fs.StringVar(&f.Plate, "plate", "", "patente")
	fs.StringVar(&f.Status, "status", "", "estado")
	out := fs.String("out", "ots.xlsx", "archivo de salida")
	_ = fs.Parse(args)

	data, err := a.client.ExportOrders(ctx, f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("%s (%d bytes)\n", *out, len(data))
	return nil
}

func (a *app) board(ctx context.Context, args []string, fetch func(context.Context) ([]api.Order, error)) error {
	fs := flag.NewFlagSet("board", flag.ExitOnError)
	watch := fs.Duration("watch", 0, "intervalo de refresco")
	_ = fs.Parse(args)

	show := func(orders []api.Order) {
		fmt.Printf("— %s — %d OTs\n", time.Now().Format("15:04:05"), len(orders))
		for _, o := range orders {
			fmt.Printf("  #%d  %s  %s %s  %s\n", o.ID, o.Plate, o.Date, o.Time, o.Status)
		}
	}

	if *watch <= 0 {
		orders, err := fetch(ctx)
		if err != nil {
			return err
		}
		show(orders)
		return nil
	}

	b := workorder.NewBoard(fetch, *watch, a.log)
	b.OnChange(show)
	b.Mount(ctx)
	<-ctx.Done()
	b.Unmount()
	return nil
}

func optionalID(id int64) *int64 {
	if id <= 0 {
		return nil
	}
	return &id
}


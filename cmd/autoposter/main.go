package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/nikolayk812/autoposter/internal/catalog"
	"github.com/nikolayk812/autoposter/internal/checkout"
	"github.com/nikolayk812/autoposter/internal/config"
	"github.com/nikolayk812/autoposter/internal/domain"
	"github.com/nikolayk812/autoposter/internal/format"
	"github.com/nikolayk812/autoposter/internal/observability"
	"github.com/nikolayk812/autoposter/internal/order"
	"github.com/nikolayk812/autoposter/internal/port"
	"github.com/nikolayk812/autoposter/internal/repository"
	"github.com/nikolayk812/autoposter/internal/service"
	"github.com/nikolayk812/autoposter/internal/sink"
	"github.com/pkg/browser"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errUsage = errors.New("usage")

const usage = `usage: autoposter <command> [flags]

commands:
  catalog                         list products and sizes
  show                            print the cart, totals and checkout status
  add [-product id] <size>        add one unit of a size
  qty <key> <delta>               change a line quantity (line is removed at 0)
  clear                           empty the cart
  checkout [-region rf|by] [-address text] [-comment text] [-dry-run]
                                  send the order to the shop in Telegram
`

func main() {
	// keep stdout for the cart view; URL handlers may chatter
	browser.Stdout = os.Stderr
	browser.Stderr = os.Stderr

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, opts ...config.Option) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	cfg, err := config.Load(opts...)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	logger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	defer func() { _ = logger.Sync() }()

	a, closeApp, err := newApp(ctx, cfg, logger, stdout, stderr)
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		fmt.Fprintln(stderr, err)
		return exitError
	}
	defer closeApp()

	err = a.dispatch(ctx, args[0], args[1:])
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		fmt.Fprint(stderr, usage)
		return exitUsage
	default:
		fmt.Fprintln(stderr, err)
		return exitError
	}
}

type app struct {
	catalog domain.Catalog
	money   format.Money
	carts   *service.CartService
	gate    *checkout.Gate
	handoff *handoff
	stdout  io.Writer
	stderr  io.Writer
}

// handoff lets the checkout command choose the launcher after its flags are parsed.
type handoff struct {
	port.Launcher
}

func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger, stdout, stderr io.Writer) (*app, func(), error) {
	cat, err := catalog.Load(cfg.Catalog.File)
	if err != nil {
		return nil, nil, fmt.Errorf("catalog.Load: %w", err)
	}

	tag, err := language.Parse(cfg.Checkout.Locale)
	if err != nil {
		return nil, nil, fmt.Errorf("language.Parse: %w", err)
	}
	money := format.NewMoney(tag, cat.Currency)

	slots, closeSlots, err := openSlots(ctx, cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("openSlots: %w", err)
	}

	repo, err := repository.NewCart(slots, cfg.Cart.Key, logger)
	if err != nil {
		closeSlots()
		return nil, nil, fmt.Errorf("repository.NewCart: %w", err)
	}

	notifier := port.NotifierFunc(func(_ context.Context, msg string) {
		fmt.Fprintln(stderr, msg)
	})

	carts, err := service.NewCartService(repo, cat, notifier, logger)
	if err != nil {
		closeSlots()
		return nil, nil, fmt.Errorf("service.NewCartService: %w", err)
	}

	h := &handoff{Launcher: sink.NewSystem()}

	gate, err := checkout.NewGate(cat, order.NewComposer(money, order.DefaultTemplate()), money, h, cfg.Checkout.Recipient,
		checkout.WithDelay(cfg.Checkout.HandoffDelay),
		checkout.WithNotifier(notifier),
		checkout.WithLogger(logger))
	if err != nil {
		closeSlots()
		return nil, nil, fmt.Errorf("checkout.NewGate: %w", err)
	}

	a := &app{
		catalog: cat,
		money:   money,
		carts:   carts,
		gate:    gate,
		handoff: h,
		stdout:  stdout,
		stderr:  stderr,
	}

	// re-render after every committed mutation
	carts.Subscribe(a.render)

	return a, closeSlots, nil
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "catalog":
		return a.listCatalog()
	case "show":
		a.render(a.carts.Load(ctx))
		return nil
	case "add":
		return a.add(ctx, args)
	case "qty":
		return a.changeQuantity(ctx, args)
	case "clear":
		_, err := a.carts.Clear(ctx)
		return err
	case "checkout":
		return a.checkout(ctx, args)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func (a *app) listCatalog() error {
	for _, p := range a.catalog.Products {
		fmt.Fprintf(a.stdout, "%s [%s]\n", p.Title, p.ID)
		if p.Subtitle != "" {
			fmt.Fprintf(a.stdout, "  %s\n", p.Subtitle)
		}
		for _, v := range p.Variants {
			fmt.Fprintf(a.stdout, "  %s — %s\n", v.Size, a.money.Amount(v.Price))
		}
		fmt.Fprintf(a.stdout, "  от %s, минимальный заказ %s\n", a.money.Amount(p.PriceFrom()), a.money.Amount(p.MinOrder))
	}

	return nil
}

func (a *app) add(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(a.stderr)

	var productID string
	if p, ok := a.catalog.Default(); ok {
		productID = p.ID
	}
	fs.StringVar(&productID, "product", productID, "product id")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: add needs exactly one size", errUsage)
	}

	_, err := a.carts.Add(ctx, productID, fs.Arg(0))
	return err
}

func (a *app) changeQuantity(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: qty needs a key and a delta", errUsage)
	}

	delta, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: delta[%s] is not an integer", errUsage, args[1])
	}

	_, err = a.carts.ChangeQuantity(ctx, args[0], delta)
	return err
}

func (a *app) checkout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	fs.SetOutput(a.stderr)

	region := fs.String("region", string(domain.RegionDomestic), "delivery region: rf or by")
	address := fs.String("address", "", "city and address")
	comment := fs.String("comment", "", "style and text wishes")
	dryRun := fs.Bool("dry-run", false, "print the links instead of opening them")

	if err := fs.Parse(args); err != nil {
		return err
	}

	r, err := domain.ParseRegion(*region)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	if *dryRun {
		a.handoff.Launcher = sink.NewPrint(a.stdout)
	}

	receipt, err := a.gate.Submit(ctx, a.carts.Load(ctx), domain.OrderContext{
		Region:  r,
		Address: *address,
		Comment: *comment,
	})
	if err != nil {
		return err
	}

	// the process must outlive the delayed fallback attempt
	receipt.Wait()

	if *dryRun {
		fmt.Fprintln(a.stdout, receipt.Message)
	}

	return nil
}

func (a *app) render(cart domain.Cart) {
	w := a.stdout

	if cart.IsEmpty() {
		fmt.Fprintln(w, "Корзина пустая. Выбери размер — и оформим заказ в Telegram.")
		return
	}

	for i, l := range cart.Lines {
		fmt.Fprintf(w, "%d) %s\n", i+1, l.Title)
		fmt.Fprintf(w, "   %s\n", l.Key)
		fmt.Fprintf(w, "   Размер: %s • %s / шт\n", l.Size, a.money.Amount(l.Price))
		fmt.Fprintf(w, "   × %d = %s\n", l.Quantity, a.money.Amount(l.Subtotal()))
	}

	fmt.Fprintf(w, "Товаров: %d\n", cart.Count())
	fmt.Fprintf(w, "Итого: %s\n", a.money.Amount(cart.Total()))

	if d := a.gate.CanCheckout(cart, a.gate.MinimumOrder()); d.Status == checkout.StatusBelowMinimum {
		fmt.Fprintln(w, d.Reason)
	}
}

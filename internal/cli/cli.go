// Package cli is the terminal storefront: it browses the menu, keeps the
// cart on disk or in Redis and places orders.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"

	"github.com/fjod/frocone/internal/apiclient"
	"github.com/fjod/frocone/internal/cart"
	"github.com/fjod/frocone/internal/checkout"
	"github.com/fjod/frocone/internal/config"
	"github.com/fjod/frocone/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
)

var (
	ErrUsage = errors.New("usage error")
	// ErrReported marks failures already shown to the user as a notice.
	ErrReported = errors.New("already reported")
)

const usage = `Usage: frocone [global flags] <command> [args]

Commands:
  menu      [--category NAME] [--special] [--trending]
  add       <productId> [--qty N]
  remove    <productId>
  qty       <productId> <quantity>
  cart
  clear
  checkout  --name NAME --email EMAIL --phone PHONE [--type dine-in|takeaway|delivery] [--notes TEXT]

Global flags:
`

type Catalog interface {
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

type App struct {
	out     io.Writer
	catalog Catalog
	orders  checkout.OrderCreator
	store   *cart.Store
}

func NewApp(out io.Writer, catalog Catalog, orders checkout.OrderCreator, store *cart.Store) *App {
	store.Subscribe(func(st cart.State) { RenderDrawer(out, st) })
	return &App{out: out, catalog: catalog, orders: orders, store: store}
}

// Run parses global flags, wires the client and executes one command.
func Run(ctx context.Context, args []string, cfg *config.Client, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("frocone", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SetInterspersed(false)
	fs.StringVar(&cfg.APIURL, "api", cfg.APIURL, "storefront base URL")
	fs.StringVar(&cfg.CartDir, "cart-dir", cfg.CartDir, "directory holding the cart file")
	fs.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "keep the cart in Redis at this address instead of a file")
	fs.StringVar(&cfg.DeviceID, "device", cfg.DeviceID, "cart key suffix when using Redis (defaults to the hostname)")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "API request timeout")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return ErrUsage
	}

	persister, closeFn, err := newPersister(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	logger := slog.Default()
	client := apiclient.New(cfg.APIURL, cfg.RequestTimeout, apiclient.WithLogger(logger))
	store := cart.NewStore(ctx, persister, cart.WithLogger(logger))

	return NewApp(stdout, client, client, store).Exec(ctx, fs.Args())
}

func newPersister(cfg *config.Client) (cart.Persister, func(), error) {
	if cfg.RedisAddr != "" {
		device := cfg.DeviceID
		if device == "" {
			host, err := os.Hostname()
			if err != nil {
				return nil, nil, fmt.Errorf("resolve device id: %w", err)
			}
			device = host
		}
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return cart.NewRedisPersister(client, device), func() { _ = client.Close() }, nil
	}

	dir := cfg.CartDir
	if dir == "" {
		var err error
		if dir, err = cart.DefaultDir(); err != nil {
			return nil, nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create cart dir: %w", err)
	}
	return cart.NewFilePersister(dir), func() {}, nil
}

// Exec runs a single command against the app's store.
func (a *App) Exec(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "menu":
		return a.menu(ctx, rest)
	case "add":
		return a.add(ctx, rest)
	case "remove":
		id, err := productID(rest)
		if err != nil {
			return err
		}
		a.store.RemoveItem(id)
		a.store.SetIsOpen(true)
		return nil
	case "qty":
		if len(rest) != 2 {
			return fmt.Errorf("%w: qty <productId> <quantity>", ErrUsage)
		}
		id, err := productID(rest[:1])
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(rest[1])
		if err != nil {
			return fmt.Errorf("%w: quantity must be a number", ErrUsage)
		}
		a.store.UpdateQuantity(id, n)
		a.store.SetIsOpen(true)
		return nil
	case "cart":
		a.store.SetIsOpen(true)
		return nil
	case "clear":
		a.store.ClearCart()
		fmt.Fprintln(a.out, "Cart cleared.")
		return nil
	case "checkout":
		return a.checkout(ctx, rest)
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}

func (a *App) menu(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("menu", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var filter domain.ProductFilter
	fs.StringVar(&filter.Category, "category", "", "category to show")
	fs.BoolVar(&filter.Special, "special", false, "only specials")
	fs.BoolVar(&filter.Trending, "trending", false, "only trending items")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	products, err := a.catalog.ListProducts(ctx, filter)
	if err != nil {
		return fmt.Errorf("load menu: %w", err)
	}
	renderMenu(a.out, products)
	return nil
}

func (a *App) add(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("add", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	qty := fs.Int("qty", 1, "how many to add")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	id, err := productID(fs.Args())
	if err != nil {
		return err
	}
	if *qty < 1 {
		return fmt.Errorf("%w: --qty must be at least 1", ErrUsage)
	}

	p, err := a.catalog.GetProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("load product %d: %w", id, err)
	}

	existing := 0
	for _, l := range a.store.Items() {
		if l.ProductID == p.ID {
			existing = l.Quantity
		}
	}
	if *qty > math.MaxInt-existing {
		return fmt.Errorf("%w: --qty %d is too large for product %d", ErrUsage, *qty, id)
	}

	item := cart.Item{ProductID: p.ID, Name: p.Name, Price: p.Price, ImageURL: p.ImageURL}
	a.store.Dispatch(
		cart.Add{Item: item},
		cart.SetQuantity{ProductID: p.ID, Quantity: existing + *qty},
		cart.SetOpen{Open: true},
	)
	return nil
}

func (a *App) checkout(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("checkout", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	d := checkout.NewDetails()
	fs.StringVar(&d.Name, "name", "", "your name")
	fs.StringVar(&d.Email, "email", "", "email address")
	fs.StringVar(&d.Phone, "phone", "", "phone number")
	orderType := fs.String("type", string(domain.OrderTypeTakeaway), "dine-in, takeaway or delivery")
	fs.StringVar(&d.Instructions, "notes", "", "special instructions")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	d.Type = domain.OrderType(*orderType)

	flow := checkout.NewFlow(a.store, a.orders, checkout.NotifierFunc(func(n checkout.Notice) {
		if n.Field != "" {
			fmt.Fprintf(a.out, "%s (%s)\n", n.Message, n.Field)
			return
		}
		fmt.Fprintln(a.out, n.Message)
	}))

	if err := flow.Begin(); err != nil {
		return err
	}
	if err := flow.SetDetails(d); err != nil {
		return err
	}
	order, err := flow.Submit(ctx)
	if err != nil {
		if flow.Phase() == checkout.PhaseFailed {
			return fmt.Errorf("%w: %w", ErrReported, err)
		}
		return err
	}
	fmt.Fprintf(a.out, "Order #%d is %s.\n", order.ID, order.Status)
	return nil
}

func productID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: expected one product id", ErrUsage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: invalid product id %q", ErrUsage, args[0])
	}
	return id, nil
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/example/menubridge/internal/bridge"
	"github.com/example/menubridge/internal/config"
	"github.com/example/menubridge/internal/host"
	"github.com/example/menubridge/internal/ipc"
	"github.com/example/menubridge/internal/logging"
	"github.com/example/menubridge/internal/menutree"
	"github.com/example/menubridge/internal/override"
	"github.com/example/menubridge/internal/protocol"
	"github.com/example/menubridge/internal/service"
	"github.com/example/menubridge/internal/tray"
)

func main() {
	log.SetFlags(0)

	settings := config.FromEnv()
	args, overrides, err := parseGlobalFlags(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}
	if overrides.addr != "" {
		settings.Address = overrides.addr
	}
	if overrides.secret != "" {
		settings.Secret = overrides.secret
	}
	if overrides.debug || settings.Debug {
		logging.EnableDebug()
	}
	if settings.Secret == "" {
		log.Fatal("a shared secret is required; set MENUBRIDGE_SECRET or pass --secret")
	}

	endpoint := ipc.DefaultEndpoint()
	if settings.Address != "" {
		endpoint = ipc.ParseEndpoint(settings.Address)
	}

	if len(args) == 0 || normalizeCommand(args[0]) == "run" {
		if err := runDaemon(endpoint, settings.Secret); err != nil && !errors.Is(err, context.Canceled) {
			log.Fatalf("bridge exited with error: %v", err)
		}
		return
	}

	if err := handleCLI(endpoint, settings.Secret, args); err != nil {
		log.Fatalf("%v", err)
	}
}

type globalFlags struct {
	debug  bool
	addr   string
	secret string
}

// parseGlobalFlags strips the flags shared by every mode from args and
// returns the remaining command words.
func parseGlobalFlags(args []string) ([]string, globalFlags, error) {
	var g globalFlags
	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--debug" || arg == "-debug":
			g.debug = true
		case strings.HasPrefix(arg, "--addr="):
			g.addr = strings.TrimPrefix(arg, "--addr=")
		case arg == "--addr":
			if i+1 >= len(args) {
				return nil, g, errors.New("--addr requires a value")
			}
			i++
			g.addr = args[i]
		case strings.HasPrefix(arg, "--secret="):
			g.secret = strings.TrimPrefix(arg, "--secret=")
		case arg == "--secret":
			if i+1 >= len(args) {
				return nil, g, errors.New("--secret requires a value")
			}
			i++
			g.secret = args[i]
		default:
			filtered = append(filtered, arg)
		}
	}
	return filtered, g, nil
}

func normalizeCommand(arg string) string {
	trimmed := strings.TrimLeft(arg, "-/")
	return strings.ToLower(trimmed)
}

// systemDefaults stands in for the platform responder chain: the behavior
// standard items fall back to when the host declines an action.
type systemDefaults struct{}

func (systemDefaults) Perform(action string, sender *menutree.Item) {
	log.Printf("edit: default %s via %q", action, sender.Title)
}

func runDaemon(endpoint ipc.Endpoint, secret string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	loop := bridge.NewLoop()
	svc, err := service.New(secret, endpoint, loop)
	if err != nil {
		return err
	}

	root := menutree.NewStandardBar(systemDefaults{})
	br := bridge.New(root, svc)
	svc.AttachBridge(br)
	engine := override.New(svc)

	errs := make(chan error, 2)
	go func() { errs <- loop.Run(ctx) }()

	if err := loop.Do(func() {
		if err := engine.Install(root); err != nil {
			log.Printf("install menu overrides: %v", err)
		}
	}); err != nil {
		return err
	}

	go func() { errs <- svc.Run(ctx) }()

	mirror := tray.NewMirror(loop, br)
	go func() {
		if err := mirror.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("tray mirror unavailable: %v", err)
		}
	}()

	err = <-errs
	cancel()
	return err
}

func handleCLI(endpoint ipc.Endpoint, secret string, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client, err := host.Dial(ctx, endpoint, secret)
	if err != nil {
		return err
	}
	defer client.Close()

	command := normalizeCommand(args[0])
	switch command {
	case "add":
		return handleAdd(ctx, client, args[1:])
	case "submenu":
		return handleSubmenu(ctx, client, args[1:])
	case "update":
		return handleUpdate(ctx, client, args[1:])
	case "enable":
		return handleEnable(ctx, client, args[1:])
	case "remove":
		return handleRemove(ctx, client, args[1:])
	case "watch":
		return handleWatch(ctx, client)
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func handleAdd(ctx context.Context, client *host.Client, args []string) error {
	fs := newFlagSet("add")
	menuID := fs.String("menu", menutree.RootID, "target menu identifier")
	itemID := fs.String("id", "", "custom item identifier")
	title := fs.String("title", "", "display title")
	index := fs.Int("index", -1, "insertion index; negative appends")
	key := fs.String("key", "", "key equivalent")
	modifiers := fs.String("modifiers", "", "comma-separated modifier names")
	disabled := fs.Bool("disabled", false, "create the item disabled")
	if err := fs.Parse(args); err != nil {
		return err
	}

	reqArgs := protocol.AddMenuItemArgs{
		MenuID:        *menuID,
		ItemID:        *itemID,
		Title:         *title,
		KeyEquivalent: *key,
		KeyModifiers:  parseList(*modifiers),
	}
	if *index >= 0 {
		reqArgs.Index = index
	}
	if *disabled {
		reqArgs.Enabled = protocol.Bool(false)
	}

	return report(client.Call(ctx, protocol.MethodAddMenuItem, reqArgs))
}

func handleSubmenu(ctx context.Context, client *host.Client, args []string) error {
	fs := newFlagSet("submenu")
	parent := fs.String("parent", menutree.RootID, "parent menu identifier")
	submenuID := fs.String("id", "", "submenu identifier")
	title := fs.String("title", "", "display title")
	index := fs.Int("index", -1, "insertion index; negative appends")
	if err := fs.Parse(args); err != nil {
		return err
	}

	reqArgs := protocol.AddSubmenuArgs{
		ParentMenuID: *parent,
		SubmenuID:    *submenuID,
		Title:        *title,
	}
	if *index >= 0 {
		reqArgs.Index = index
	}

	return report(client.Call(ctx, protocol.MethodAddSubmenu, reqArgs))
}

func handleUpdate(ctx context.Context, client *host.Client, args []string) error {
	fs := newFlagSet("update")
	itemID := fs.String("id", "", "custom item identifier")
	title := fs.String("title", "", "new display title")
	enabled := fs.String("enabled", "", "new enabled state: true or false")
	if err := fs.Parse(args); err != nil {
		return err
	}

	reqArgs := protocol.UpdateMenuItemArgs{ItemID: *itemID}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "title" {
			reqArgs.Title = title
		}
	})
	switch strings.ToLower(*enabled) {
	case "":
	case "true":
		reqArgs.Enabled = protocol.Bool(true)
	case "false":
		reqArgs.Enabled = protocol.Bool(false)
	default:
		return fmt.Errorf("--enabled must be true or false, got %q", *enabled)
	}

	return report(client.Call(ctx, protocol.MethodUpdateMenuItem, reqArgs))
}

func handleEnable(ctx context.Context, client *host.Client, args []string) error {
	fs := newFlagSet("enable")
	itemID := fs.String("id", "", "custom item identifier")
	enabled := fs.Bool("enabled", true, "enabled state")
	if err := fs.Parse(args); err != nil {
		return err
	}

	reqArgs := protocol.SetMenuItemEnabledArgs{ItemID: *itemID, Enabled: enabled}
	return report(client.Call(ctx, protocol.MethodSetMenuItemEnabled, reqArgs))
}

func handleRemove(ctx context.Context, client *host.Client, args []string) error {
	fs := newFlagSet("remove")
	itemID := fs.String("id", "", "custom item identifier")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return report(client.Call(ctx, protocol.MethodRemoveMenuItem, protocol.RemoveMenuItemArgs{ItemID: *itemID}))
}

// handleWatch stays connected and prints notifications, answering every
// standard action with "not handled" so default behavior is preserved.
func handleWatch(ctx context.Context, client *host.Client) error {
	observe := func(name string) host.ActionHandler {
		return func() bool {
			fmt.Printf("intercepted %s\n", name)
			return false
		}
	}
	client.OnCut(observe(protocol.NotifyCut))
	client.OnCopy(observe(protocol.NotifyCopy))
	client.OnPaste(observe(protocol.NotifyPaste))
	client.OnSelectAll(observe(protocol.NotifySelectAll))
	client.OnMenuItemSelected(func(itemID string) {
		fmt.Printf("selected %s\n", itemID)
	})

	fmt.Println("watching bridge notifications; press Ctrl-C to stop")
	<-ctx.Done()
	return nil
}

func report(result bool, err error) error {
	if err != nil {
		return err
	}
	fmt.Printf("%t\n", result)
	return nil
}

func parseList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stdout)
	return fs
}

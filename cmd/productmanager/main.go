package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"productmanager/internal/apiclient"
	"productmanager/internal/auth"
	"productmanager/internal/config"
	"productmanager/internal/dashboard"
	"productmanager/internal/form"
	"productmanager/internal/logging"
	"productmanager/internal/models"
	"productmanager/internal/session"
	"productmanager/internal/view"
)

// consoleNotifier prints toast messages as plain lines.
type consoleNotifier struct{}

func (consoleNotifier) Success(message string) { fmt.Println("ok:", message) }
func (consoleNotifier) Error(message string)   { fmt.Println("error:", message) }

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	logger := logging.New(cfg.LogLevel)

	store := session.NewStore(cfg.SessionFile)
	api := apiclient.New(cfg.APIBaseURL, store)
	provider := auth.NewProvider(store, api, logger)
	provider.Restore()

	ctx := logging.IntoContext(context.Background(), logger)
	in := bufio.NewScanner(os.Stdin)

	if provider.Current() == nil {
		if !loginFlow(ctx, in, provider) {
			return
		}
	}

	ctrl := dashboard.NewController(api, consoleNotifier{}, logger)
	runDashboard(ctx, in, ctrl, provider)
}

// loginFlow prompts for credentials until a login succeeds. Returns false on
// EOF.
func loginFlow(ctx context.Context, in *bufio.Scanner, provider *auth.Provider) bool {
	for {
		email, ok := prompt(in, "email: ")
		if !ok {
			return false
		}
		password, ok := prompt(in, "password: ")
		if !ok {
			return false
		}

		if err := provider.Login(ctx, email, password); err != nil {
			fmt.Println("error:", err)
			continue
		}
		return true
	}
}

func runDashboard(ctx context.Context, in *bufio.Scanner, ctrl *dashboard.Controller, provider *auth.Provider) {
	ctrl.Load(ctx)

	for {
		sess := provider.Current()
		state := ctrl.State()

		fmt.Print(view.RenderHeader(sess))
		if state.Query != "" {
			fmt.Printf("search: %q\n", state.Query)
		}
		fmt.Print(view.RenderList(state.Visible, state.Query, sess.IsAdmin()))

		line, ok := prompt(in, "> ")
		if !ok {
			return
		}
		cmd, arg, _ := strings.Cut(line, " ")

		switch cmd {
		case "", "list":
			// loop re-renders
		case "search":
			ctrl.SetQuery(strings.TrimSpace(arg))
		case "refresh":
			ctrl.Load(ctx)
		case "add":
			if !sess.IsAdmin() {
				fmt.Println("error: admin commands are not available")
				continue
			}
			ctrl.OpenCreate()
			formFlow(ctx, in, ctrl, form.Fields{})
		case "edit":
			if !sess.IsAdmin() {
				fmt.Println("error: admin commands are not available")
				continue
			}
			p, found := pick(state.Visible, arg)
			if !found {
				fmt.Println("error: no such product")
				continue
			}
			ctrl.OpenEdit(p)
			formFlow(ctx, in, ctrl, form.Seed(p))
		case "delete":
			if !sess.IsAdmin() {
				fmt.Println("error: admin commands are not available")
				continue
			}
			p, found := pick(state.Visible, arg)
			if !found {
				fmt.Println("error: no such product")
				continue
			}
			ctrl.RequestDelete(p.ID)
			confirmDeleteFlow(ctx, in, ctrl, p)
		case "logout":
			if err := provider.Logout(); err != nil {
				fmt.Println("error:", err)
				continue
			}
			if !loginFlow(ctx, in, provider) {
				return
			}
			ctrl.Load(ctx)
		case "quit", "exit":
			return
		case "help":
			printHelp(sess.IsAdmin())
		default:
			fmt.Println("unknown command, try: help")
		}
	}
}

// formFlow runs the create/edit form until it validates and submits, or the
// user cancels with ".". Submit failures keep the form open with the entered
// values intact.
func formFlow(ctx context.Context, in *bufio.Scanner, ctrl *dashboard.Controller, seed form.Fields) {
	fields := seed
	for {
		f, ok := promptFields(in, fields)
		if !ok {
			ctrl.CloseForm()
			return
		}
		fields = f

		product, fieldErrs := fields.Validate()
		if len(fieldErrs) > 0 {
			for _, e := range fieldErrs {
				fmt.Println("error:", e)
			}
			continue
		}

		if err := ctrl.Submit(ctx, product); err != nil {
			continue
		}
		return
	}
}

// promptFields reads every form field, keeping the previous value when the
// user enters nothing. "." on any field cancels the form.
func promptFields(in *bufio.Scanner, current form.Fields) (form.Fields, bool) {
	fmt.Println("enter product fields (blank keeps the shown value, \".\" cancels)")
	read := func(label, prev string) (string, bool) {
		v, ok := prompt(in, fmt.Sprintf("%s [%s]: ", label, prev))
		if !ok || v == "." {
			return "", false
		}
		if v == "" {
			return prev, true
		}
		return v, true
	}

	var ok bool
	if current.Name, ok = read("name", current.Name); !ok {
		return current, false
	}
	if current.Description, ok = read("description", current.Description); !ok {
		return current, false
	}
	if current.Price, ok = read("price", current.Price); !ok {
		return current, false
	}
	if current.Stock, ok = read("stock", current.Stock); !ok {
		return current, false
	}
	if current.Category, ok = read("category", current.Category); !ok {
		return current, false
	}
	return current, true
}

func confirmDeleteFlow(ctx context.Context, in *bufio.Scanner, ctrl *dashboard.Controller, p models.Product) {
	answer, ok := prompt(in, fmt.Sprintf("delete %q? this cannot be undone (y/N): ", p.Name))
	if !ok || !strings.EqualFold(answer, "y") {
		ctrl.CancelDelete()
		return
	}
	_ = ctrl.ConfirmDelete(ctx)
}

func pick(visible []models.Product, arg string) (models.Product, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > len(visible) {
		return models.Product{}, false
	}
	return visible[n-1], true
}

func prompt(in *bufio.Scanner, label string) (string, bool) {
	fmt.Print(label)
	if !in.Scan() {
		return "", false
	}
	return strings.TrimSpace(in.Text()), true
}

func printHelp(isAdmin bool) {
	fmt.Println("commands: list | search <text> | refresh | logout | quit")
	if isAdmin {
		fmt.Println("admin:    add | edit <n> | delete <n>")
	}
}

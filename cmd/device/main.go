package main

import (
	"context"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"trip-expense-tracker/internal/budget"
	"trip-expense-tracker/internal/client"
	"trip-expense-tracker/internal/csvexport"
	"trip-expense-tracker/internal/identity"
	"trip-expense-tracker/internal/localstore"
	"trip-expense-tracker/internal/syncer"
	"trip-expense-tracker/models"
)

const usage = `usage: device <command> [flags]

commands:
  init     show (or create) this device's identity
  add      record a new expense
  list     sync and print the expense list with budget status
  delete   remove an expense by id
  sync     reconcile with the cloud once, or on a schedule with -auto
  code     print a sync code for linking another device
  link     adopt another device's sync code
  budget   set or show the trip budget
  export   write the expense list as CSV
`

type app struct {
	store    *localstore.SQLiteStore
	identity *identity.Manager
	api      *client.Client
	syncer   *syncer.Syncer
	budget   *budget.Tracker
}

func newApp() *app {
	storePath := os.Getenv("TRIP_DEVICE_STORE")
	if storePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("failed to locate home directory: %v", err)
		}
		storePath = filepath.Join(home, ".trip-expenses.db")
	}

	store, err := localstore.OpenSQLite(storePath)
	if err != nil {
		log.Fatalf("failed to open device store: %v", err)
	}

	apiURL := os.Getenv("TRIP_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}
	secret := os.Getenv("TRIP_SYNC_SECRET")
	if secret == "" {
		secret = "trip-expense-tracker"
	}

	ident := identity.NewManager(store, []byte(secret))
	api := client.New(apiURL)
	return &app{
		store:    store,
		identity: ident,
		api:      api,
		syncer:   syncer.New(api, ident),
		budget:   budget.NewTracker(store),
	}
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	a := newApp()
	defer a.store.Close()
	ctx := context.Background()

	switch os.Args[1] {
	case "init":
		a.runInit()
	case "add":
		a.runAdd(ctx, os.Args[2:])
	case "list":
		a.runList(ctx)
	case "delete":
		a.runDelete(ctx, os.Args[2:])
	case "sync":
		a.runSync(ctx, os.Args[2:])
	case "code":
		a.runCode()
	case "link":
		a.runLink(os.Args[2:])
	case "budget":
		a.runBudget(os.Args[2:])
	case "export":
		a.runExport(os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func (a *app) runInit() {
	id, err := a.identity.InitializeDevice()
	if err != nil {
		log.Fatalf("failed to initialize device: %v", err)
	}
	fmt.Printf("user:   %s\ndevice: %s\n", id.UserID, id.DeviceID)
}

func (a *app) runAdd(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	amount := fs.Float64("amount", 0, "amount spent")
	category := fs.String("category", models.CategoryOther, "expense category")
	description := fs.String("description", "", "what the money went on")
	date := fs.String("date", "", "expense date (2006-01-02 or RFC3339, default now)")
	receipt := fs.String("receipt", "", "path to a receipt photo to attach")
	food := fs.String("food", "", "path to a food photo to attach")
	fs.Parse(args)

	id, err := a.identity.InitializeDevice()
	if err != nil {
		log.Fatalf("failed to initialize device: %v", err)
	}

	expense := &models.Expense{
		Amount:      *amount,
		Category:    *category,
		Description: *description,
		UserID:      id.UserID,
		DeviceID:    id.DeviceID,
	}
	if *date != "" {
		expense.Date = parseDate(*date)
	}
	if *receipt != "" {
		expense.ReceiptPhotos = models.PhotoList{readPhoto(*receipt)}
	}
	if *food != "" {
		expense.FoodPhotos = models.PhotoList{readPhoto(*food)}
	}
	if err := expense.Validate(); err != nil {
		log.Fatalf("invalid expense: %v", err)
	}

	created, err := a.api.CreateExpense(ctx, expense)
	if err != nil {
		log.Fatalf("failed to save expense: %v", err)
	}
	fmt.Printf("saved %s: %.2f (%s)\n", created.ID, created.Amount, created.Category)

	// Refresh the cache and budget so the next list is current even offline.
	if expenses, err := a.syncer.Sync(ctx); err == nil {
		a.budget.Recompute(expenses)
	}
}

func (a *app) runList(ctx context.Context) {
	expenses, err := a.syncer.Sync(ctx)
	if err != nil {
		log.Fatalf("failed to load expenses: %v", err)
	}
	if len(expenses) == 0 {
		fmt.Println("no expenses recorded")
		return
	}

	for _, e := range expenses {
		photos := ""
		if len(e.ReceiptPhotos) > 0 {
			photos += " [receipt]"
		}
		if len(e.FoodPhotos) > 0 {
			photos += " [food]"
		}
		fmt.Printf("%s  %s  %8.2f  %-13s  %s%s\n",
			e.ID, e.Date.Format("2006-01-02"), e.Amount, e.Category, e.Description, photos)
	}

	b, err := a.budget.Recompute(expenses)
	if err != nil {
		log.Fatalf("failed to recompute budget: %v", err)
	}
	if b.Total > 0 {
		fmt.Printf("\nbudget: %.2f  remaining: %.2f\n", b.Total, b.Remaining)
	}
}

func (a *app) runDelete(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.String("id", "", "expense id to delete")
	fs.Parse(args)
	if *id == "" {
		log.Fatal("delete requires -id")
	}

	if err := a.api.DeleteExpense(ctx, *id); err != nil {
		log.Fatalf("failed to delete expense: %v", err)
	}
	if expenses, err := a.syncer.Sync(ctx); err == nil {
		a.budget.Recompute(expenses)
	}
	fmt.Println("deleted")
}

func (a *app) runSync(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)
	auto := fs.Bool("auto", false, "keep syncing on a schedule")
	every := fs.String("every", "@every 15m", "cron schedule used with -auto")
	fs.Parse(args)

	syncOnce := func() {
		expenses, err := a.syncer.Sync(ctx)
		if err != nil {
			log.Printf("sync failed: %v", err)
			return
		}
		if _, err := a.budget.Recompute(expenses); err != nil {
			log.Printf("failed to recompute budget: %v", err)
		}
		log.Printf("synced %d expenses", len(expenses))
	}

	syncOnce()
	if !*auto {
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(*every, syncOnce); err != nil {
		log.Fatalf("invalid sync schedule %q: %v", *every, err)
	}
	c.Start()
	select {}
}

func (a *app) runCode() {
	code, err := a.identity.GenerateSyncCode()
	if err != nil {
		log.Fatalf("failed to generate sync code: %v", err)
	}
	fmt.Println(code)
}

func (a *app) runLink(args []string) {
	fs := flag.NewFlagSet("link", flag.ExitOnError)
	code := fs.String("code", "", "sync code from the other device")
	fs.Parse(args)

	err := a.identity.LinkWithSyncCode(*code)
	switch {
	case errors.Is(err, identity.ErrInvalidSyncCode):
		log.Fatal("invalid sync code, please try again")
	case errors.Is(err, identity.ErrSyncCodeExpired):
		log.Fatal("sync code expired, generate a fresh one on the other device")
	case err != nil:
		log.Fatalf("failed to link device: %v", err)
	}
	fmt.Println("linked; future syncs use the other device's data")
}

func (a *app) runBudget(args []string) {
	fs := flag.NewFlagSet("budget", flag.ExitOnError)
	set := fs.Float64("set", 0, "set the total trip budget")
	fs.Parse(args)

	if *set > 0 {
		b, err := a.budget.Set(*set)
		if err != nil {
			log.Fatalf("failed to set budget: %v", err)
		}
		fmt.Printf("budget set to %.2f\n", b.Total)
		return
	}

	b, ok, err := a.budget.Get()
	if err != nil {
		log.Fatalf("failed to read budget: %v", err)
	}
	if !ok {
		fmt.Println("no budget set")
		return
	}
	fmt.Printf("budget: %.2f  remaining: %.2f\n", b.Total, b.Remaining)
}

func (a *app) runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	dir := fs.String("dir", ".", "directory to write the CSV into")
	fs.Parse(args)

	expenses, err := a.identity.LocalExpenses()
	if err != nil {
		log.Fatalf("failed to load cached expenses: %v", err)
	}

	path, err := csvexport.WriteFile(*dir, expenses, time.Now())
	if errors.Is(err, csvexport.ErrNoExpenses) {
		fmt.Println("no expenses to export, sync first")
		return
	}
	if err != nil {
		log.Fatalf("failed to export: %v", err)
	}
	fmt.Printf("wrote %s\n", path)
}

func parseDate(value string) time.Time {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		log.Fatalf("unparseable date %q", value)
	}
	return t
}

func readPhoto(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("failed to read photo %s: %v", path, err)
	}
	return base64.StdEncoding.EncodeToString(data)
}

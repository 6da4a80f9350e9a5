// Package cli implements the interactive notez command line client: a
// read-eval-print loop over the note store, with a background watcher that
// tracks note service reachability.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/notezapp/notez/internal/client/ai"
	"github.com/notezapp/notez/internal/client/client"
	"github.com/notezapp/notez/internal/client/config"
	"github.com/notezapp/notez/internal/client/store"
	"github.com/notezapp/notez/internal/logging"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// reloadQuiet is how long connectivity must stay up before the app
// refreshes the note list from the service. Keeps flapping links from
// triggering a reload storm.
const reloadQuiet = 2 * time.Second

type App struct {
	config *config.Config
	api    client.Client
	store  *store.Store
	ai     ai.Client
	db     *sql.DB
	log    logging.Logger
	Mode   Mode
	reader *bufio.Reader
	reload *store.Debouncer
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	cacheRepo, db, err := client.InitDatabase(ctx, c.CacheDSN)
	if err != nil {
		log.Error(ctx, "error initializing cache database", "error", err)
		return nil, err
	}

	api := client.NewHTTPClient(c.APIBaseURL, c.AccessToken)

	var aiClient ai.Client
	if c.AIBaseURL != "" {
		aiClient = ai.NewHTTPClient(c.AIBaseURL)
	}

	return &App{
		config: c,
		api:    api,
		store:  store.New(api, cacheRepo, log),
		ai:     aiClient,
		db:     db,
		log:    log,
		Mode:   ModeOffline,
		reader: bufio.NewReader(os.Stdin),
		reload: store.NewDebouncer(reloadQuiet),
	}, nil
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		a.log.Info(ctx, "switched mode", "mode", mode)
		if mode == ModeOnline {
			a.reload.Trigger(func() {
				a.store.Load(context.Background())
			})
		}
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	defer a.api.Close()
	defer a.reload.Stop()

	if err := a.api.Ping(ctx); err == nil {
		a.Mode = ModeOnline
	}

	a.store.Load(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	printlnFn("Welcome to notez CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) getStatus() string {
	s := string(a.Mode)
	if sel := a.store.Selected(); sel != nil {
		s = s + " " + sel.Title
	}
	return "(" + s + ")"
}

// StartOnlineStatusWatcher polls the note service on the given interval and
// flips the app between online and offline mode. Regaining connectivity
// schedules a debounced reload of the note list.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.api.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ctx, ModeOffline)
			} else {
				a.setMode(ctx, ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}

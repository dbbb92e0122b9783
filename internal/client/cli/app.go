package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophschedule/internal/cipherx"
	"github.com/dmitrijs2005/gophschedule/internal/client/client"
	"github.com/dmitrijs2005/gophschedule/internal/client/config"
	"github.com/dmitrijs2005/gophschedule/internal/client/index"
	"github.com/dmitrijs2005/gophschedule/internal/client/services"
	"github.com/dmitrijs2005/gophschedule/internal/kv/s3store"
	"github.com/dmitrijs2005/gophschedule/internal/logging"
	"github.com/dmitrijs2005/gophschedule/internal/wallet"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// getPassword is a test seam for the passphrase prompt.
var getPassword = GetPassword

type App struct {
	config  *config.Config
	logger  logging.Logger
	backend *client.Backend
	cipher  cipherx.Cipher
	sync    *services.SyncService
	reveal  *services.RevealService
	cred    client.Credential

	// schedule is created on the first write, after the wallet authorized it.
	schedule *services.ScheduleService

	mu     sync.Mutex
	Mode   Mode
	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time
}

// NewApp opens the configured store and, if present, the wallet keystore.
// Without a keystore the app is read-only.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {

	b, err := client.Open(ctx, client.Options{
		Kind:    c.Store,
		Address: c.ServerEndpointAddr,
		DSN:     c.DSN,
		S3: s3store.Config{
			Bucket:       c.S3Bucket,
			Prefix:       c.S3Prefix,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	a := newApp(c, b, logger, os.Stdin, os.Stdout)

	ks, err := wallet.LoadKeystore(c.KeystorePath)
	switch {
	case err == nil:
		a.cred = wallet.NewKeystoreSigner(ks, a.promptPassphrase)
	case errors.Is(err, fs.ErrNotExist):
		logger.Warn(ctx, "no keystore found, running read-only", "path", c.KeystorePath)
	default:
		b.Close()
		return nil, err
	}

	if err := a.initReveal(); err != nil {
		b.Close()
		return nil, err
	}
	return a, nil
}

func newApp(c *config.Config, b *client.Backend, logger logging.Logger, in io.Reader, out io.Writer) *App {
	if logger == nil {
		logger = logging.NewNop()
	}
	idx := index.NewManager(b.Reader, nil, logger)
	return &App{
		config:  c,
		logger:  logger,
		backend: b,
		cipher:  cipherx.NewTaggedCipher(),
		sync:    services.NewSyncService(b.Reader, idx, logger, c.FetchConcurrency),
		reader:  bufio.NewReader(in),
		out:     out,
		now:     time.Now,
	}
}

// initReveal builds the per-process challenge. The chain id comes from the
// wallet when one is loaded.
func (a *App) initReveal() error {
	var chainID int64
	if a.cred != nil {
		chainID = a.cred.ChainID()
	}
	ch, err := services.NewSessionChallenge(a.config.ContractAddress, chainID, a.now())
	if err != nil {
		return fmt.Errorf("session challenge: %w", err)
	}
	a.reveal = services.NewRevealService(a.cipher, ch, a.logger)
	return nil
}

func (a *App) promptPassphrase(ctx context.Context, message string) ([]byte, error) {
	fmt.Fprintf(a.out, "Signature request:\n%s\n", message)
	return getPassword(a.out)
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Mode != mode {
		a.Mode = mode
		a.logger.Info(context.Background(), "switched mode", "mode", mode)
	}
}

func (a *App) mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Mode
}

// Run starts the REPL and releases the store when it returns.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) Close() error {
	a.reveal.Clear()
	return a.backend.Close()
}

func (a *App) hasWallet() bool {
	return a.cred != nil
}

// StartOnlineStatusWatcher probes the store every interval and flips Mode.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) probe(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	ok, err := a.backend.Reader.IsAvailable(ctx)
	if err != nil || !ok {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

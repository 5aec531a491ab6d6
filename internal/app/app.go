package app

import (
	"net/http"

	"ciphera/internal/domain"
	"ciphera/internal/relay"
	identitysvc "ciphera/internal/services/identity"
	messagesvc "ciphera/internal/services/message"
	prekeysvc "ciphera/internal/services/prekey"
	sessionsvc "ciphera/internal/services/session"
	"ciphera/internal/store"
)

// App bundles the stores, services and relay client a single CLI
// invocation needs, built once in PersistentPreRunE and shared by every
// subcommand.
type App struct {
	Identity domain.IdentityService
	Prekey   domain.PreKeyService
	Sessions domain.SessionService
	Messages domain.MessageService
	Accounts domain.AccountStore
	Relay    domain.RelayClient
	RelayURL string
	HTTP     *http.Client
}

// New constructs the dependency graph from cfg: file-backed stores rooted
// at cfg.Home, the C2/C3/C4 services layered over them, and an HTTP relay
// client pointed at cfg.RelayURL (nil if unset).
func New(cfg Config) (*App, error) {
	identityStore := store.NewIdentityFileStore(cfg.Home)
	prekeyStore := store.NewPreKeyFileStore(cfg.Home)
	bundleStore := store.NewBundleFileStore(cfg.Home)
	sessionStore := store.NewSessionFileStore(cfg.Home)
	ratchetStore := store.NewRatchetFileStore(cfg.Home)
	accountStore := store.NewAccountFileStore(cfg.Home)

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	var rc domain.RelayClient
	if cfg.RelayURL != "" {
		hc := relay.NewHTTP(cfg.RelayURL)
		hc.HTTP = httpClient
		rc = hc
	}

	identitySvc := identitysvc.New(identityStore)
	prekeySvc := prekeysvc.New(identityStore, prekeyStore, bundleStore)
	sessionSvc := sessionsvc.New(identityStore, bundleStore, sessionStore, ratchetStore, rc)
	messageSvc := messagesvc.New(identityStore, prekeyStore, sessionStore, ratchetStore, sessionSvc, rc)

	return &App{
		Identity: identitySvc,
		Prekey:   prekeySvc,
		Sessions: sessionSvc,
		Messages: messageSvc,
		Accounts: accountStore,
		Relay:    rc,
		RelayURL: cfg.RelayURL,
		HTTP:     httpClient,
	}, nil
}

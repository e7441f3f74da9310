package nimsforestkiosk

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// Routes served by WebTarget.
const (
	RouteIndex     = "/"
	RouteHealth    = "/health"
	RouteViewmodel = "/api/viewmodel"
	RouteCall      = "/api/call"
	RouteDismiss   = "/api/modal/dismiss"
	RouteScenario  = "/api/scenarios/{name}"
	RouteStatic    = "/static/"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// Controller receives the visitor's actions from the web page.
type Controller interface {
	// Load starts a kiosk for a page load and returns its first view.
	Load(query url.Values) (*ViewState, error)
	Press() error
	Dismiss(reason DismissReason) error
	Simulate(scenario string) error
}

// WebTarget serves the kiosk page to browsers, a JSON API at /api/viewmodel and the
// visitor's actions.
type WebTarget struct {
	addr       string
	server     *http.Server
	listener   net.Listener
	state      *ViewState
	mu         sync.RWMutex
	webDir     string // Optional directory with static web assets
	controller Controller
	origins    []string
	lang       string
	log        *logrus.Entry
	started    bool
}

// WebOption configures a WebTarget.
type WebOption func(*WebTarget)

// WithWebDir sets the directory served under /static/.
func WithWebDir(dir string) WebOption {
	return func(t *WebTarget) {
		t.webDir = dir
	}
}

// WithController routes page loads and actions to c.
func WithController(c Controller) WebOption {
	return func(t *WebTarget) {
		t.controller = c
	}
}

// WithAllowedOrigins restricts CORS to the given origins. The default allows any origin.
func WithAllowedOrigins(origins ...string) WebOption {
	return func(t *WebTarget) {
		t.origins = origins
	}
}

// WithPageLang sets the lang attribute of the page.
func WithPageLang(lang string) WebOption {
	return func(t *WebTarget) {
		t.lang = lang
	}
}

// NewWebTarget creates a target that serves the kiosk over HTTP on addr. With an empty
// addr no server is started and only Handler is useful.
func NewWebTarget(addr string, opts ...WebOption) (*WebTarget, error) {
	target := &WebTarget{
		addr:    addr,
		origins: []string{"*"},
		lang:    "en",
		log:     Logger.WithField("component", "web"),
	}

	for _, opt := range opts {
		opt(target)
	}

	if target.webDir != "" {
		info, err := os.Stat(target.webDir)
		if err != nil {
			return nil, fmt.Errorf("open web dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("web dir %q is not a directory", target.webDir)
		}
	}

	return target, nil
}

// Name implements Target.
func (t *WebTarget) Name() string {
	return fmt.Sprintf("WebTarget(%s)", t.addr)
}

// Update implements Target.
func (t *WebTarget) Update(ctx context.Context, state *ViewState) error {
	t.mu.Lock()
	t.state = state
	wasStarted := t.started
	t.mu.Unlock()

	// Auto-start server on first update
	if !wasStarted && t.addr != "" {
		return t.start()
	}
	return nil
}

// State returns the last view pushed to the target.
func (t *WebTarget) State() *ViewState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// Handler returns the HTTP handler for embedding in existing servers.
func (t *WebTarget) Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc(RouteHealth, t.handleHealth).Methods(http.MethodGet)
	router.HandleFunc(RouteViewmodel, t.handleViewmodel).Methods(http.MethodGet)
	router.HandleFunc(RouteCall, t.handleCall).Methods(http.MethodPost)
	router.HandleFunc(RouteDismiss, t.handleDismiss).Methods(http.MethodPost)
	router.HandleFunc(RouteScenario, t.handleScenario).Methods(http.MethodPost)
	if t.webDir != "" {
		router.PathPrefix(RouteStatic).Handler(
			http.StripPrefix(RouteStatic, http.FileServer(http.Dir(t.webDir))),
		).Methods(http.MethodGet)
	}
	router.HandleFunc(RouteIndex, t.handleIndex).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: t.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(router)
}

func (t *WebTarget) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (t *WebTarget) handleViewmodel(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ViewStateToJSON(t.State()))
}

type pageData struct {
	Lang             string
	View             ViewJSON
	ButtonBackground template.CSS
}

func (t *WebTarget) handleIndex(w http.ResponseWriter, r *http.Request) {
	state := t.State()
	if t.controller != nil {
		loaded, err := t.controller.Load(r.URL.Query())
		if err != nil {
			t.log.WithError(err).Error("load kiosk")
			http.Error(w, "kiosk unavailable", http.StatusServiceUnavailable)
			return
		}
		state = loaded
	}
	if state == nil {
		state = Render(DefaultIdentity(), Snapshot{}, NewPrinter(localeOrDefault(t.lang)), nil)
	}

	data := pageData{
		Lang:             t.lang,
		View:             ViewStateToJSON(state),
		ButtonBackground: template.CSS(state.Button.Background),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		t.log.WithError(err).Error("render page")
	}
}

func (t *WebTarget) handleCall(w http.ResponseWriter, r *http.Request) {
	if !t.requireController(w) {
		return
	}
	if err := t.controller.Press(); err != nil {
		t.writeActionError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, ViewStateToJSON(t.State()))
}

func (t *WebTarget) handleDismiss(w http.ResponseWriter, r *http.Request) {
	if !t.requireController(w) {
		return
	}
	reason, err := ParseDismissReason(r.URL.Query().Get("reason"))
	if err != nil {
		t.writeActionError(w, err)
		return
	}
	if err := t.controller.Dismiss(reason); err != nil {
		t.writeActionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (t *WebTarget) handleScenario(w http.ResponseWriter, r *http.Request) {
	if !t.requireController(w) {
		return
	}
	if err := t.controller.Simulate(mux.Vars(r)["name"]); err != nil {
		t.writeActionError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, ViewStateToJSON(t.State()))
}

func (t *WebTarget) requireController(w http.ResponseWriter) bool {
	if t.controller == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorJSON{Error: "no controller configured"})
		return false
	}
	return true
}

type errorJSON struct {
	Error string `json:"error"`
}

func (t *WebTarget) writeActionError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrControlDisabled):
		status = http.StatusConflict
	case errors.Is(err, ErrScenariosDisabled):
		status = http.StatusForbidden
	case errors.Is(err, ErrUnknownScenario):
		status = http.StatusNotFound
	case errors.Is(err, ErrUnknownDismissReason):
		status = http.StatusBadRequest
	case errors.Is(err, ErrNoKiosk), errors.Is(err, ErrLoopStopped):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		t.log.WithError(err).Error("kiosk action failed")
	} else {
		t.log.WithError(err).Debug("kiosk action rejected")
	}
	writeJSON(w, status, errorJSON{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (t *WebTarget) start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return nil
	}

	ln, err := net.Listen("tcp", t.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", t.addr, err)
	}
	t.listener = ln
	t.server = &http.Server{
		Handler:           t.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := t.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.log.WithError(err).Error("web server stopped")
		}
	}()

	t.started = true
	t.log.WithField("addr", ln.Addr().String()).Info("web target listening")
	return nil
}

// Close implements Target.
func (t *WebTarget) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.server != nil {
		return t.server.Shutdown(context.Background())
	}
	return nil
}

// URL returns the URL where the web target is serving.
func (t *WebTarget) URL() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.listener != nil {
		return "http://" + t.listener.Addr().String()
	}
	return "http://localhost" + t.addr
}

package rod

import (
	"sync"
	"sync/atomic"

	"github.com/fwojciec/recipeprep"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of rendered pages after which the browser
// is restarted.
const DefaultMaxPages = 75

// BrowserManager owns a headless browser and restarts it after a fixed
// number of renders, since Chrome's memory baseline grows with every page
// and is never released.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	bin      string

	rendered atomic.Int64
	maxPages int64
	restarts atomic.Int64
	closed   atomic.Bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets the number of renders between browser restarts.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// WithBrowserPath uses the browser binary at path instead of looking one up.
func WithBrowserPath(path string) ManagerOption {
	return func(bm *BrowserManager) {
		bm.bin = path
	}
}

// NewBrowserManager launches a headless browser. Close must be called when
// the manager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(bm)
	}
	if bm.maxPages <= 0 {
		return nil, recipeprep.Errorf(recipeprep.EINVALID, "max pages must be positive, got %d", bm.maxPages)
	}

	browser, lnchr, err := bm.launch()
	if err != nil {
		return nil, err
	}
	bm.browser, bm.launcher = browser, lnchr

	return bm, nil
}

// Browser returns the live browser, restarting it first when the render
// budget is spent. Callers report each finished render with
// IncrementPageCount.
func (bm *BrowserManager) Browser() *rod.Browser {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.rendered.Load() >= bm.maxPages {
		bm.restart()
	}
	return bm.browser
}

// IncrementPageCount records one finished render.
func (bm *BrowserManager) IncrementPageCount() {
	bm.rendered.Add(1)
}

// Restarts returns how many times the browser has been replaced.
func (bm *BrowserManager) Restarts() int64 {
	return bm.restarts.Load()
}

// Close shuts the browser down. Subsequent calls are no-ops.
func (bm *BrowserManager) Close() error {
	if !bm.closed.CompareAndSwap(false, true) {
		return nil
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()

	err := shutdown(bm.browser, bm.launcher)
	bm.browser, bm.launcher = nil, nil
	return err
}

// LauncherPID returns the process ID of the current browser launcher, or 0
// once closed.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.launcher == nil {
		return 0
	}
	return bm.launcher.PID()
}

func (bm *BrowserManager) launch() (*rod.Browser, *launcher.Launcher, error) {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)
	if bm.bin != "" {
		lnchr = lnchr.Bin(bm.bin)
	}

	u, err := lnchr.Launch()
	if err != nil {
		return nil, nil, recipeprep.Errorf(recipeprep.EINTERNAL, "failed to launch browser: %v", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return nil, nil, recipeprep.Errorf(recipeprep.EINTERNAL, "failed to connect to browser: %v", err)
	}
	return browser, lnchr, nil
}

// restart swaps in a fresh browser. The old one stays in service when the
// new launch fails. Must be called with mu held.
func (bm *BrowserManager) restart() {
	browser, lnchr, err := bm.launch()
	if err != nil {
		return
	}

	_ = shutdown(bm.browser, bm.launcher)
	bm.browser, bm.launcher = browser, lnchr
	bm.rendered.Store(0)
	bm.restarts.Add(1)
}

func shutdown(browser *rod.Browser, lnchr *launcher.Launcher) error {
	var err error
	if browser != nil {
		err = browser.Close()
	}
	if lnchr != nil {
		lnchr.Kill()
	}
	return err
}

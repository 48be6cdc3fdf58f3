// Package pages wires the top level pages of the mobile client: the static loading
// page, the password page and the app page that hosts every other view.
package pages

import (
	"AppBuilder/internal/logger"
	"context"
	"errors"
	"fmt"
	"reflect"
	"runtime/debug"
	"sync"
)

// Page keys.
const (
	Loading  = "loading"
	Password = "password"
	App      = "app"
)

// Events emitted by the password page.
const (
	EventLoading       = "loading"
	EventLoadingDone   = "loadingDone"
	EventPasswordReady = "passwordReady"
	EventPasswordDone  = "passwordDone"
)

// Alert titles shown when a page cannot be constructed.
const (
	passwordErrorTitle = "Error starting password page"
	appErrorTitle      = "Error starting app page"
)

// Page is anything that can be brought to the front.
type Page interface {
	Show()
}

// LoadingPage covers the screen while work is in progress.
type LoadingPage interface {
	Page
	Overlay()
	Hide()
}

// PasswordPage unlocks the app and reports its progress through events.
type PasswordPage interface {
	Page
	On(event string, fn Handler)
}

// AppPage is the main application page.
type AppPage interface {
	Page
	// ShowElement makes the page visible without bringing it to the front,
	// so it shows through transparent parts of the password page.
	ShowElement()
}

// Alerter displays an error to the user.
type Alerter interface {
	Alert(message, title string)
}

// Analytics records errors for later inspection.
type Analytics interface {
	LogError(err error)
}

// Deps are the collaborators Init needs.
type Deps struct {
	Loading     LoadingPage
	NewPassword func() (PasswordPage, error)
	NewApp      func() (AppPage, error)
	Alerter     Alerter
	Analytics   Analytics
}

// Registry maps page keys to page instances.
type Registry struct {
	mu       sync.RWMutex
	pages    map[string]Page
	password PasswordPage
	app      AppPage
	loading  LoadingPage
	done     bool
}

// Init constructs the password and app pages and connects the password page events.
// A page that fails to construct is reported and left out; Init itself does not fail.
// Later calls do nothing.
func (r *Registry) Init(ctx context.Context, deps Deps) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done {
		return nil
	}
	r.done = true

	if !isNil(deps.Loading) {
		r.loading = deps.Loading
	}
	r.password = construct(ctx, deps, passwordErrorTitle, deps.NewPassword)
	r.app = construct(ctx, deps, appErrorTitle, deps.NewApp)

	r.pages = map[string]Page{}
	if r.loading != nil {
		r.pages[Loading] = r.loading
	}
	if r.password != nil {
		r.pages[Password] = r.password
	}
	if r.app != nil {
		r.pages[App] = r.app
	}

	if r.password == nil {
		logger.Warn(ctx, "Password page unavailable, page events not connected.")
		return nil
	}
	r.password.On(EventLoading, func(...any) {
		if r.loading != nil {
			r.loading.Overlay()
		}
	})
	r.password.On(EventLoadingDone, func(...any) {
		if r.loading != nil {
			r.loading.Hide()
		}
	})
	r.password.On(EventPasswordReady, func(...any) {
		if r.app != nil {
			r.app.ShowElement()
		}
	})
	r.password.On(EventPasswordDone, func(...any) {
		if r.app != nil {
			r.app.Show()
		}
	})
	return nil
}

// construct runs newPage, turning an error or a panic into an alert and an analytics entry.
func construct[P any](ctx context.Context, deps Deps, title string, newPage func() (P, error)) (page P) {
	var zero P
	if newPage == nil {
		return zero
	}

	var err error
	var stack []byte
	func() {
		defer func() {
			if rec := recover(); rec != nil {
				err = fmt.Errorf("panic: %v", rec)
				stack = debug.Stack()
			}
		}()
		page, err = newPage()
		if err == nil && isNil(page) {
			err = errors.New("constructor returned a nil page")
		}
		if err != nil {
			stack = debug.Stack()
		}
	}()
	if err == nil {
		return page
	}

	logger.Error(ctx, "%s: %v", title, err)
	if deps.Alerter != nil {
		deps.Alerter.Alert(err.Error()+"<br />"+string(stack), title)
	}
	if deps.Analytics != nil {
		deps.Analytics.LogError(err)
	}
	return zero
}

// isNil reports whether v is nil or an interface holding a nil pointer.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Show brings the page registered under key to the front. Unknown keys are ignored.
func (r *Registry) Show(key string) {
	r.mu.RLock()
	page := r.pages[key]
	r.mu.RUnlock()
	if page != nil {
		page.Show()
	}
}

// Get returns the page registered under key.
func (r *Registry) Get(key string) (Page, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	page, ok := r.pages[key]
	return page, ok
}

var std = &Registry{}

// Init initializes the default registry.
func Init(ctx context.Context, deps Deps) error {
	return std.Init(ctx, deps)
}

// Show shows a page of the default registry.
func Show(key string) {
	std.Show(key)
}

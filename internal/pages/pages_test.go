package pages

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// journal records page calls in order.
type journal struct {
	calls []string
}

func (j *journal) add(s string) { j.calls = append(j.calls, s) }

type fakeLoading struct{ j *journal }

func (p *fakeLoading) Show()    { p.j.add("loading.show") }
func (p *fakeLoading) Overlay() { p.j.add("loading.overlay") }
func (p *fakeLoading) Hide()    { p.j.add("loading.hide") }

type fakePassword struct {
	Emitter
	j *journal
}

func (p *fakePassword) Show() { p.j.add("password.show") }

type fakeApp struct{ j *journal }

func (p *fakeApp) Show()        { p.j.add("app.show") }
func (p *fakeApp) ShowElement() { p.j.add("app.element.show") }

type alert struct{ message, title string }

type fakeAlerter struct{ alerts []alert }

func (a *fakeAlerter) Alert(message, title string) {
	a.alerts = append(a.alerts, alert{message, title})
}

type fakeAnalytics struct{ errs []error }

func (a *fakeAnalytics) LogError(err error) { a.errs = append(a.errs, err) }

func newDeps(j *journal) (Deps, *fakePassword) {
	pw := &fakePassword{j: j}
	return Deps{
		Loading:     &fakeLoading{j: j},
		NewPassword: func() (PasswordPage, error) { return pw, nil },
		NewApp:      func() (AppPage, error) { return &fakeApp{j: j}, nil },
		Alerter:     &fakeAlerter{},
		Analytics:   &fakeAnalytics{},
	}, pw
}

func TestInitWiresPasswordEvents(t *testing.T) {
	j := &journal{}
	deps, pw := newDeps(j)
	r := &Registry{}
	if err := r.Init(context.Background(), deps); err != nil {
		t.Fatalf("Init: %v", err)
	}

	for _, event := range []string{EventLoading, EventLoadingDone, EventPasswordReady, EventPasswordDone} {
		if !pw.Emit(event) {
			t.Errorf("no handler for %s", event)
		}
	}
	want := []string{"loading.overlay", "loading.hide", "app.element.show", "app.show"}
	if diff := cmp.Diff(want, j.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestShow(t *testing.T) {
	j := &journal{}
	deps, _ := newDeps(j)
	r := &Registry{}
	r.Init(context.Background(), deps)

	r.Show(Password)
	r.Show(Loading)
	r.Show(App)
	r.Show("settings")

	want := []string{"password.show", "loading.show", "app.show"}
	if diff := cmp.Diff(want, j.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestShowBeforeInit(t *testing.T) {
	r := &Registry{}
	r.Show(App) // must not panic
	if _, ok := r.Get(App); ok {
		t.Error("Get(app) found a page before Init")
	}
}

func TestInitReportsFailedAppPage(t *testing.T) {
	j := &journal{}
	deps, pw := newDeps(j)
	deps.NewApp = func() (AppPage, error) { return nil, errors.New("no framework") }
	alerter := deps.Alerter.(*fakeAlerter)
	analytics := deps.Analytics.(*fakeAnalytics)

	r := &Registry{}
	if err := r.Init(context.Background(), deps); err != nil {
		t.Fatalf("Init: %v", err)
	}

	if len(alerter.alerts) != 1 {
		t.Fatalf("got %d alerts, want 1", len(alerter.alerts))
	}
	a := alerter.alerts[0]
	if a.title != "Error starting app page" {
		t.Errorf("alert title = %q", a.title)
	}
	if !strings.HasPrefix(a.message, "no framework<br />") {
		t.Errorf("alert message = %q", a.message)
	}
	if len(analytics.errs) != 1 {
		t.Errorf("got %d analytics errors, want 1", len(analytics.errs))
	}

	// Password events still work; the missing app page is skipped
	pw.Emit(EventLoading)
	pw.Emit(EventPasswordDone)
	if diff := cmp.Diff([]string{"loading.overlay"}, j.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	if _, ok := r.Get(App); ok {
		t.Error("failed app page registered")
	}
}

func TestInitRejectsNilPages(t *testing.T) {
	j := &journal{}
	deps, pw := newDeps(j)
	deps.Loading = (*fakeLoading)(nil)
	deps.NewApp = func() (AppPage, error) { return (*fakeApp)(nil), nil }
	alerter := deps.Alerter.(*fakeAlerter)

	r := &Registry{}
	if err := r.Init(context.Background(), deps); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if len(alerter.alerts) != 1 || alerter.alerts[0].title != "Error starting app page" {
		t.Fatalf("alerts = %+v", alerter.alerts)
	}

	// Neither nil page is called
	pw.Emit(EventLoading)
	pw.Emit(EventPasswordReady)
	pw.Emit(EventPasswordDone)
	r.Show(App)
	r.Show(Loading)
	if len(j.calls) != 0 {
		t.Errorf("calls = %v, want none", j.calls)
	}
	for _, key := range []string{App, Loading} {
		if _, ok := r.Get(key); ok {
			t.Errorf("nil %s page registered", key)
		}
	}
}

func TestInitRecoversPasswordPanic(t *testing.T) {
	j := &journal{}
	deps, _ := newDeps(j)
	deps.NewPassword = func() (PasswordPage, error) { panic("template missing") }
	alerter := deps.Alerter.(*fakeAlerter)

	r := &Registry{}
	if err := r.Init(context.Background(), deps); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if len(alerter.alerts) != 1 || alerter.alerts[0].title != "Error starting password page" {
		t.Fatalf("alerts = %+v", alerter.alerts)
	}
	if !strings.Contains(alerter.alerts[0].message, "template missing") {
		t.Errorf("alert message = %q", alerter.alerts[0].message)
	}
	if _, ok := r.Get(App); !ok {
		t.Error("app page not registered after password failure")
	}
}

func TestInitOnce(t *testing.T) {
	j := &journal{}
	deps, _ := newDeps(j)
	built := 0
	deps.NewApp = func() (AppPage, error) {
		built++
		return &fakeApp{j: j}, nil
	}
	r := &Registry{}
	r.Init(context.Background(), deps)
	r.Init(context.Background(), deps)
	if built != 1 {
		t.Errorf("app page built %d times, want 1", built)
	}
}

func TestEmitterOrder(t *testing.T) {
	var e Emitter
	var got []any
	e.On("x", func(args ...any) { got = append(got, "first", args[0]) })
	e.On("x", func(args ...any) { got = append(got, "second") })

	if e.Emit("y") {
		t.Error("Emit(y) reported handlers")
	}
	e.Emit("x", 42)
	if diff := cmp.Diff([]any{"first", 42, "second"}, got); diff != "" {
		t.Errorf("emit mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultRegistry(t *testing.T) {
	j := &journal{}
	deps, _ := newDeps(j)
	std = &Registry{}
	defer func() { std = &Registry{} }()

	Init(context.Background(), deps)
	Show(Loading)
	if diff := cmp.Diff([]string{"loading.show"}, j.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

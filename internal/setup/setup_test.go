package setup

import (
	"AppBuilder/internal/assets"
	"AppBuilder/internal/config"
	"AppBuilder/internal/constants"
	"AppBuilder/internal/options"
	"AppBuilder/internal/prompt"
	"AppBuilder/internal/tasks"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"
	"github.com/google/go-cmp/cmp"
)

// recorder is a task that remembers the options it was given.
type recorder struct {
	name  string
	calls *[]string
	got   options.Options
	err   error
	// answer is merged into the options, as if asked
	answer options.Options
}

func (r *recorder) Run(_ context.Context, opts options.Options) error {
	*r.calls = append(*r.calls, r.name)
	opts.Merge(r.answer)
	r.got = opts
	return r.err
}

type fakeDocker struct {
	running []string
	err     error
	asked   string
}

func (f *fakeDocker) RunningServices(_ context.Context, stack string) ([]string, error) {
	f.asked = stack
	return f.running, f.err
}

type fixture struct {
	wizard *Wizard
	calls  []string
	ssl    *recorder
	db     *recorder
	bot    *recorder
	email  *recorder
	docker *fakeDocker
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{docker: &fakeDocker{}}
	f.ssl = &recorder{name: "ssl", calls: &f.calls}
	f.db = &recorder{name: "db", calls: &f.calls}
	f.bot = &recorder{name: "bot", calls: &f.calls}
	f.email = &recorder{name: "email", calls: &f.calls}

	project := tasks.Project{
		Dir:       t.TempDir(),
		Asker:     prompt.DefaultsAsker{},
		Templates: assets.Embedded(),
		Config:    config.Default(),
	}
	f.wizard = &Wizard{
		Project: project,
		Tasks:   tasks.Set{SSL: f.ssl, DB: f.db, Bot: f.bot, Email: f.email},
		Docker:  f.docker,
	}
	return f
}

func (f *fixture) read(t *testing.T, elem ...string) string {
	t.Helper()
	data, err := os.ReadFile(f.wizard.Project.Path(elem...))
	if err != nil {
		t.Fatalf("reading %s: %v", filepath.Join(elem...), err)
	}
	return string(data)
}

func TestRunDefaults(t *testing.T) {
	f := newFixture(t)
	if err := f.wizard.Run(context.Background(), options.New()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	opts := f.wizard.Options()
	want := options.Options{
		"stack":    "ab",
		"port":     "80",
		"exposeDB": false,
		"portDB":   "8889",
		"tag":      "master",
	}
	if diff := cmp.Diff(want, opts); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"ssl", "db", "bot", "email"}, f.calls); diff != "" {
		t.Errorf("task order mismatch (-want +got):\n%s", diff)
	}

	compose := f.read(t, "docker-compose.yml")
	if !strings.Contains(compose, `"80:80"`) {
		t.Errorf("docker-compose.yml does not publish port 80:\n%s", compose)
	}
	if !strings.Contains(compose, "image: mariadb\n    # ports:\n    #   - \"8889:3306\"") {
		t.Errorf("db ports not hidden:\n%s", compose)
	}
	for _, src := range constants.GeneratedFileSources {
		if _, err := os.Stat(f.wizard.Project.Path(src)); err != nil {
			t.Errorf("source template %s not extracted: %v", src, err)
		}
	}
	if f.docker.asked != "ab" {
		t.Errorf("docker asked about %q, want ab", f.docker.asked)
	}
}

func TestRunWithOptions(t *testing.T) {
	f := newFixture(t)
	opts := options.Options{
		"stack":        "prod",
		"port":         8080,
		"exposeDB":     true,
		"portDB":       "3307",
		"tag":          "DEVELOP",
		"ssl":          map[string]any{"self": false},
		"ssl.none":     true,
		"db.password":  "pw",
		"bot":          map[string]any{"botName": "nested"},
		"bot.dhPort":   15000,
		"smtp.smtpTLS": true,
	}
	if err := f.wizard.Run(context.Background(), opts); err != nil {
		t.Fatalf("Run: %v", err)
	}

	compose := f.read(t, "docker-compose.yml")
	for _, want := range []string{`"8080:80"`, `"3307:3306"`, "ab-web:develop"} {
		if !strings.Contains(compose, want) {
			t.Errorf("docker-compose.yml missing %q:\n%s", want, compose)
		}
	}

	if diff := cmp.Diff(options.Options{"self": false, "none": true}, f.ssl.got); diff != "" {
		t.Errorf("ssl options mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(options.Options{"password": "pw"}, f.db.got); diff != "" {
		t.Errorf("db options mismatch (-want +got):\n%s", diff)
	}
	wantBot := options.Options{"dhEnable": false, "dhPort": 15000, "dockerTag": "develop", "botName": "nested"}
	if diff := cmp.Diff(wantBot, f.bot.got); diff != "" {
		t.Errorf("bot options mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(options.Options{"smtpTLS": true}, f.email.got); diff != "" {
		t.Errorf("smtp options mismatch (-want +got):\n%s", diff)
	}

	for file, want := range map[string]string{
		"package.json": "docker stack deploy -c docker-compose.yml prod",
		"cli.sh":       "name=prod_${service}",
		"Down.sh":      "docker stack rm prod",
		"logs.js":      "`prod_${service}`",
		"UP.sh":        "docker-compose.yml prod",
	} {
		if got := f.read(t, file); !strings.Contains(got, want) {
			t.Errorf("%s missing %q:\n%s", file, want, got)
		}
	}
}

func TestRunRepatchesFromDefaults(t *testing.T) {
	f := newFixture(t)
	if err := f.wizard.Run(context.Background(), options.Options{"stack": "one"}); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if err := f.wizard.Run(context.Background(), options.Options{"stack": "two"}); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if got := f.read(t, "UP.sh"); !strings.Contains(got, "docker-compose.yml two") {
		t.Errorf("UP.sh not re-patched:\n%s", got)
	}
}

func TestRunNameSubdir(t *testing.T) {
	f := newFixture(t)
	if err := f.wizard.Run(context.Background(), options.Options{"name": "site", "stack": "s1"}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := f.read(t, "site", "Down.sh"); !strings.Contains(got, "rm s1") {
		t.Errorf("site/Down.sh not patched:\n%s", got)
	}
}

func TestRunInvalidTag(t *testing.T) {
	f := newFixture(t)
	err := f.wizard.Run(context.Background(), options.Options{"tag": "latest"})
	if err == nil {
		t.Fatal("Run accepted tag latest")
	}
	if len(f.calls) != 0 {
		t.Errorf("tasks ran after a failed question step: %v", f.calls)
	}
	if _, err := os.Stat(f.wizard.Project.Path("docker-compose.yml")); !os.IsNotExist(err) {
		t.Errorf("docker-compose.yml written after a failed question step")
	}
}

func TestRunInvalidStack(t *testing.T) {
	f := newFixture(t)
	err := f.wizard.Run(context.Background(), options.Options{"stack": "My Stack"})
	if err == nil || !strings.Contains(err.Error(), "stack") {
		t.Fatalf("Run error = %v, want a stack error", err)
	}
	if len(f.calls) != 0 {
		t.Errorf("tasks ran after a failed question step: %v", f.calls)
	}
}

func TestRunStopsAtFirstTaskError(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("boom")
	f.db.err = boom

	err := f.wizard.Run(context.Background(), options.New())
	if !errors.Is(err, boom) {
		t.Fatalf("Run error = %v, want boom", err)
	}
	if diff := cmp.Diff([]string{"ssl", "db"}, f.calls); diff != "" {
		t.Errorf("task calls mismatch (-want +got):\n%s", diff)
	}
}

func TestRunUsesProjectTemplate(t *testing.T) {
	f := newFixture(t)
	custom := "services:\n  web:\n    image: custom:{{.tag}}\n"
	src := f.wizard.Project.Path("source.docker-compose.yml")
	if err := os.WriteFile(src, []byte(custom), 0644); err != nil {
		t.Fatal(err)
	}
	if err := f.wizard.Run(context.Background(), options.New()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := f.read(t, "docker-compose.yml"); got != "services:\n  web:\n    image: custom:master\n" {
		t.Errorf("docker-compose.yml = %q", got)
	}
}

func TestRunRejectsInvalidYAML(t *testing.T) {
	f := newFixture(t)
	src := f.wizard.Project.Path("source.dbinit-compose.yml")
	if err := os.WriteFile(src, []byte("services:\n  db:\n image: [\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := f.wizard.Run(context.Background(), options.New()); err == nil {
		t.Fatal("Run accepted invalid YAML")
	}
}

func TestRunLocked(t *testing.T) {
	f := newFixture(t)
	other := flock.New(f.wizard.Project.Path(constants.LockFileName))
	if ok, err := other.TryLock(); err != nil || !ok {
		t.Fatalf("TryLock = %v, %v", ok, err)
	}
	defer other.Unlock()

	err := f.wizard.Run(context.Background(), options.New())
	if !errors.Is(err, ErrLocked) {
		t.Errorf("Run error = %v, want ErrLocked", err)
	}
}

func TestLineDiff(t *testing.T) {
	got := lineDiff("a\nb\nc\n", "a\nx\nc\n")
	want := []string{"- b", "+ x"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("lineDiff mismatch (-want +got):\n%s", diff)
	}
}

func TestSummaryRowsMasksSecrets(t *testing.T) {
	opts := options.Options{
		"port":              "80",
		"db.password":       "pw",
		"bot.botToken":      "xoxb",
		"smtp.smtpAuthPass": "",
		"ssl":               map[string]any{"self": true},
	}
	got := summaryRows(opts, opts.Keys())
	want := [][]string{
		{"{{_Option_}}bot.botToken{{|-|}}", "********"},
		{"{{_Option_}}db.password{{|-|}}", "********"},
		{"{{_Option_}}port{{|-|}}", "80"},
		{"{{_Option_}}smtp.smtpAuthPass{{|-|}}", ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("summaryRows mismatch (-want +got):\n%s", diff)
	}
}

func TestSummaryIncludesTaskAnswers(t *testing.T) {
	f := newFixture(t)
	f.db.answer = options.Options{"password": "pw"}
	f.bot.answer = options.Options{"botEnable": true, "botName": "ab-bot"}
	opts := options.Options{"smtp.smtpEnabled": false}
	if err := f.wizard.Run(context.Background(), opts); err != nil {
		t.Fatalf("Run: %v", err)
	}

	all := f.wizard.summaryOptions()
	for key, want := range map[string]any{
		"port":             "80",
		"db.password":      "pw",
		"bot.botEnable":    true,
		"bot.botName":      "ab-bot",
		"bot.dhEnable":     false,
		"smtp.smtpEnabled": false,
	} {
		if got, ok := all.Get(key); !ok || got != want {
			t.Errorf("summary %s = %v (present %t), want %v", key, got, ok, want)
		}
	}
	if all.Has("bot.dockerTag") {
		t.Error("summary should not repeat the docker tag under bot")
	}
	if f.wizard.Options().Has("db.password") {
		t.Error("task answers leaked into the setup options")
	}
}

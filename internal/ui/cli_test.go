package ui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/weekline/internal/config"
	"github.com/javiermolinar/weekline/internal/db"
	"github.com/javiermolinar/weekline/internal/plan"
)

type testEnv struct {
	t          *testing.T
	repo       *db.SQLite
	cfg        *config.Config
	configPath string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	repo, err := db.New(filepath.Join(dir, "weekline.db"))
	if err != nil {
		t.Fatalf("creating repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(dir, "weekline.db")
	return &testEnv{t: t, repo: repo, cfg: cfg, configPath: filepath.Join(dir, "config.toml")}
}

// run executes one command line against a fresh App sharing the env's store.
func (e *testEnv) run(stdin string, args ...string) (string, error) {
	e.t.Helper()
	a := NewApp(e.repo, e.cfg)
	a.configPath = e.configPath
	a.interactive = func() bool { return false }

	var out bytes.Buffer
	a.root.SetArgs(args)
	a.root.SetOut(&out)
	a.root.SetErr(io.Discard)
	a.root.SetIn(strings.NewReader(stdin))
	err := a.Execute()
	return out.String(), err
}

func (e *testEnv) engagement(name, start, end string) *plan.Engagement {
	e.t.Helper()
	eng, err := plan.NewEngagement(name, "Acme", start, end)
	if err != nil {
		e.t.Fatalf("NewEngagement: %v", err)
	}
	if err := e.repo.CreateEngagement(context.Background(), eng); err != nil {
		e.t.Fatalf("CreateEngagement: %v", err)
	}
	return eng
}

func (e *testEnv) items(engagementID string) []*plan.Item {
	e.t.Helper()
	items, err := e.repo.ListItems(context.Background(), engagementID)
	if err != nil {
		e.t.Fatalf("ListItems: %v", err)
	}
	return items
}

func TestVersionCmd(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run("", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "weekline dev") {
		t.Errorf("output = %q", out)
	}
}

func TestEngagementNewAndList(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("", "engagement", "new", "Acme rebrand",
		"--client=Acme", "--start=2024-01-01", "--end=2024-03-25", "--default")
	if err != nil {
		t.Fatalf("engagement new: %v", err)
	}
	if !strings.Contains(out, "Acme rebrand (13 weeks)") {
		t.Errorf("new output = %q", out)
	}

	all, err := env.repo.ListEngagements(context.Background())
	if err != nil || len(all) != 1 {
		t.Fatalf("ListEngagements = %v, %v", all, err)
	}
	if env.cfg.Engagement.Default != all[0].ID {
		t.Errorf("default = %q, want %q", env.cfg.Engagement.Default, all[0].ID)
	}
	saved, err := config.LoadFrom(env.configPath)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if saved.Engagement.Default != all[0].ID {
		t.Errorf("saved default = %q", saved.Engagement.Default)
	}

	out, err = env.run("", "engagement", "list")
	if err != nil {
		t.Fatalf("engagement list: %v", err)
	}
	if !strings.Contains(out, "* "+all[0].ID) || !strings.Contains(out, "Acme rebrand") {
		t.Errorf("list output = %q", out)
	}
}

func TestEngagementNewRequiresFieldsWithoutTerminal(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.run("", "engagement", "new", "Acme rebrand"); err == nil {
		t.Fatal("expected error without --end")
	}
}

func TestEngagementNewRejectsInvertedRange(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run("", "engagement", "new", "Acme", "--start=2024-03-01", "--end=2024-01-01")
	if !errors.Is(err, plan.ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}
}

func TestEngagementUse(t *testing.T) {
	env := newTestEnv(t)
	eng := env.engagement("Acme rebrand", "2024-01-01", "2024-03-25")

	out, err := env.run("", "engagement", "use", eng.ID)
	if err != nil {
		t.Fatalf("engagement use: %v", err)
	}
	if !strings.Contains(out, "Acme rebrand") || env.cfg.Engagement.Default != eng.ID {
		t.Errorf("output = %q, default = %q", out, env.cfg.Engagement.Default)
	}

	if _, err := env.run("", "engagement", "use", "missing"); !errors.Is(err, plan.ErrEngagementNotFound) {
		t.Errorf("err = %v, want ErrEngagementNotFound", err)
	}
}

func TestAddCmd(t *testing.T) {
	env := newTestEnv(t)
	eng := env.engagement("Acme rebrand", "2024-01-01", "2024-03-25")

	out, err := env.run("", "add", "web", "Landing Page", "--amount=1 page", "--weeks=2-4")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if want := "Added Landing Page [web] W2-W4 to Acme rebrand"; !strings.Contains(out, want) {
		t.Errorf("output = %q, want %q", out, want)
	}

	if _, err := env.run("", "add", "identity", "Logo Design"); err != nil {
		t.Fatalf("add unscheduled: %v", err)
	}

	items := env.items(eng.ID)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Span != (plan.Span{Start: 2, End: 4}) || items[0].Amount != "1 page" {
		t.Errorf("first item = %+v", items[0])
	}
	if items[1].Span.IsScheduled() {
		t.Errorf("second item should be unscheduled, got %v", items[1].Span)
	}
}

func TestAddCmdRejects(t *testing.T) {
	env := newTestEnv(t)
	env.engagement("Acme rebrand", "2024-01-01", "2024-03-25")

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unknown category", []string{"add", "print", "Flyer"}, plan.ErrUnknownCategory},
		{"past the axis", []string{"add", "web", "Blog", "--weeks=12-14"}, plan.ErrInvalidSpan},
		{"inverted weeks", []string{"add", "web", "Blog", "--weeks=4-2"}, plan.ErrInvalidSpan},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.run("", tt.args...); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAddCmdUsesEngagementFlag(t *testing.T) {
	env := newTestEnv(t)
	older := env.engagement("Old", "2023-01-01", "2023-02-01")
	env.engagement("New", "2024-01-01", "2024-03-25")

	if _, err := env.run("", "add", "setup", "Kickoff", "-e", older.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := env.items(older.ID); len(got) != 1 {
		t.Fatalf("older engagement has %d items, want 1", len(got))
	}
}

func TestShowWithoutEngagements(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.run("", "show"); !errors.Is(err, ErrNoEngagement) {
		t.Fatalf("err = %v, want ErrNoEngagement", err)
	}
}

func TestShowCmd(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.UI.ShowAmount = false
	eng := env.engagement("Acme rebrand", "2024-01-01", "2024-03-25")
	item, _ := plan.NewItem(eng.ID, plan.CategoryWeb, "Landing Page", "1 page")
	item.Span = plan.Span{Start: 2, End: 4}
	if err := env.repo.CreateItem(context.Background(), item); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	out, err := env.run("", "show", "--no-color", "--width=80", "--spans")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"Acme rebrand · Acme", "Jan 2024", "Web", strings.Repeat(glyphBar, 12), "W2-W4"} {
		if !strings.Contains(out, want) {
			t.Errorf("chart missing %q:\n%s", want, out)
		}
	}

	out, err = env.run("", "show", "--list")
	if err != nil {
		t.Fatalf("show --list: %v", err)
	}
	if !strings.Contains(out, "W2-W4") || !strings.Contains(out, "Jan 08 - Jan 28") {
		t.Errorf("list output = %q", out)
	}
}

const samplePlan = `engagement:
  name: Acme rebrand
  client: Acme
  start: 2024-01-01
  end: 2024-03-25
services:
  - category: web
    name: Landing Page
    amount: 1 page
    weeks: [2, 4]
  - category: identity
    name: Logo Design
`

func TestImportCmd(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte(samplePlan), 0o644); err != nil {
		t.Fatalf("writing plan: %v", err)
	}

	out, err := env.run("", "import", path, "--default")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "Imported 2 services") {
		t.Errorf("output = %q", out)
	}

	all, err := env.repo.ListEngagements(context.Background())
	if err != nil || len(all) != 1 {
		t.Fatalf("ListEngagements = %v, %v", all, err)
	}
	if env.cfg.Engagement.Default != all[0].ID {
		t.Errorf("default not set")
	}
	if got := env.items(all[0].ID); len(got) != 2 {
		t.Errorf("got %d items, want 2", len(got))
	}
}

func TestImportCmdFromStdinInto(t *testing.T) {
	env := newTestEnv(t)
	eng := env.engagement("Existing", "2024-01-01", "2024-03-25")

	out, err := env.run(samplePlan, "import", "-", "--into", eng.ID)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if strings.Contains(out, "Created engagement") {
		t.Errorf("--into should not create an engagement: %q", out)
	}
	if !strings.Contains(out, "from stdin into Existing") {
		t.Errorf("output = %q", out)
	}
	if got := env.items(eng.ID); len(got) != 2 {
		t.Errorf("got %d items, want 2", len(got))
	}
}

func TestConfigCmdCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weekline", "config.toml")
	var out bytes.Buffer

	if err := runConfigInteractive(&out, path, false); err != nil {
		t.Fatalf("runConfigInteractive: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	for _, want := range []string{"Created " + path, "week_width", "double_click_ms"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

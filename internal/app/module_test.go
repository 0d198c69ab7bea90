package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matheus3301/chatwidget/internal/config"
	"github.com/matheus3301/chatwidget/internal/roster"
	"github.com/matheus3301/chatwidget/internal/store"
	"github.com/matheus3301/chatwidget/internal/widget"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
)

func testParams(t *testing.T) Params {
	t.Helper()
	dir := t.TempDir()
	return Params{
		Profile:    "test",
		ConfigPath: filepath.Join(dir, "widget.toml"),
		LogPath:    filepath.Join(dir, "logs", "chatwidget.log"),
	}
}

func TestModuleMountsDefaultWidget(t *testing.T) {
	p := testParams(t)

	var s *widget.Session
	app := fxtest.New(t, Module(p), fx.Populate(&s))
	app.RequireStart()

	n, err := s.MessageCount()
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Errorf("seeded messages = %d, want 4", n)
	}
	if got := len(s.Contacts()); got != 3 {
		t.Errorf("contacts = %d, want 3", got)
	}
	if s.Window() != widget.Closed {
		t.Errorf("window = %s, want CLOSED", s.Window())
	}

	app.RequireStop()

	data, err := os.ReadFile(p.LogPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"widget mounted", "widget unmounted"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log missing %q", want)
		}
	}
}

func TestModuleSQLiteBackend(t *testing.T) {
	p := testParams(t)
	cfg := config.Default()
	cfg.Store.Backend = config.BackendSQLite
	cfg.Notifications = config.Notifications{Log: true, Duration: time.Second}
	if err := config.Save(p.ConfigPath, cfg); err != nil {
		t.Fatal(err)
	}

	var (
		s  *widget.Session
		st store.Store
	)
	app := fxtest.New(t, Module(p), fx.Populate(&s, &st))
	app.RequireStart()
	defer app.RequireStop()

	if _, ok := st.(*store.DB); !ok {
		t.Fatalf("store = %T, want *store.DB", st)
	}

	s.ToggleOpen()
	if err := s.Select(3); err != nil {
		t.Fatal(err)
	}
	s.SetDraft("Hello Michael")
	res, err := s.Send()
	if err != nil {
		t.Fatal(err)
	}
	if !res.Sent || res.Message.ReceiverID != 3 {
		t.Errorf("result = %+v", res)
	}

	thread, err := s.ThreadWith(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(thread) != 1 || thread[0].Body != "Hello Michael" {
		t.Errorf("thread = %+v", thread)
	}
}

func TestModuleRejectsBadConfig(t *testing.T) {
	p := testParams(t)
	cfg := config.Default()
	cfg.Contacts = append(cfg.Contacts, roster.Contact{ID: cfg.Contacts[0].ID, DisplayName: "Twin"})
	if err := config.Save(p.ConfigPath, cfg); err != nil {
		t.Fatal(err)
	}

	app := fx.New(Module(p), fx.Populate(new(*widget.Session)))
	if app.Err() == nil {
		t.Fatal("expected error for duplicate contact id")
	}
}

func TestHeadless(t *testing.T) {
	p := testParams(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var count int
	err := Headless(ctx, p, func(s *widget.Session) error {
		var err error
		count, err = s.MessageCount()
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	if count != 4 {
		t.Errorf("count = %d, want 4", count)
	}

	boom := errors.New("boom")
	if err := Headless(ctx, p, func(*widget.Session) error { return boom }); !errors.Is(err, boom) {
		t.Errorf("Headless error = %v, want boom", err)
	}
}

// closeRecorder is a store that remembers whether it was closed.
type closeRecorder struct {
	store.Store
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return c.Store.Close()
}

func TestProvideSessionClosesStoreOnFailure(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Widget)
	}{
		{"foreign seed message", func(cfg *config.Widget) {
			cfg.Messages = append(cfg.Messages, config.SeedMessage{SenderID: 2, ReceiverID: 3, Body: "not ours"})
		}},
		{"identity in roster", func(cfg *config.Widget) {
			cfg.Messages = nil
			cfg.User.ID = cfg.Contacts[0].ID
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			r, err := cfg.Roster()
			if err != nil {
				t.Fatal(err)
			}
			st := &closeRecorder{Store: store.NewMemory()}

			if _, err := provideSession(cfg, r, st, nil, nil, zap.NewNop()); err == nil {
				t.Fatal("expected mount error")
			}
			if !st.closed {
				t.Error("store left open after failed mount")
			}
		})
	}
}

func TestProvideSessionKeepsStoreOpen(t *testing.T) {
	cfg := config.Default()
	r, err := cfg.Roster()
	if err != nil {
		t.Fatal(err)
	}
	st := &closeRecorder{Store: store.NewMemory()}

	if _, err := provideSession(cfg, r, st, nil, nil, zap.NewNop()); err != nil {
		t.Fatal(err)
	}
	if st.closed {
		t.Error("store closed after successful mount")
	}
}

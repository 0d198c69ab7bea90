package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/matheus3301/chatwidget/internal/roster"
	"github.com/matheus3301/chatwidget/internal/store"
	"go.uber.org/zap/zapcore"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Global represents ~/.chatwidget/config.toml.
type Global struct {
	DefaultProfile string `toml:"default_profile"`
}

// Widget is the per-profile widget.toml: who the user is, who they can
// talk to, and the history the widget mounts with.
type Widget struct {
	User          roster.Identity  `toml:"user"`
	Contacts      []roster.Contact `toml:"contacts"`
	Messages      []SeedMessage    `toml:"messages"`
	Notifications Notifications    `toml:"notifications"`
	Store         StoreConfig      `toml:"store"`
	Log           LogConfig        `toml:"log"`
}

// SeedMessage is a message present when the widget mounts.
type SeedMessage struct {
	SenderID   int64     `toml:"sender_id"`
	ReceiverID int64     `toml:"receiver_id"`
	Body       string    `toml:"body"`
	SentAt     time.Time `toml:"sent_at,omitempty"`
}

// Notifications selects the notification collaborators.
type Notifications struct {
	Toast    bool          `toml:"toast"`
	Desktop  bool          `toml:"desktop"`
	Log      bool          `toml:"log"`
	Duration time.Duration `toml:"duration"`
}

// StoreConfig selects the message log backend.
type StoreConfig struct {
	Backend   string `toml:"backend"`
	PairIndex bool   `toml:"pair_index"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// Validate checks the parts of the config the roster and store do not.
func (w *Widget) Validate() error {
	if w.User.ID == 0 {
		return errors.New("user.id must be non-zero")
	}
	switch w.Store.Backend {
	case "", BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("store.backend %q: want %s or %s", w.Store.Backend, BackendMemory, BackendSQLite)
	}
	if _, err := w.LogLevel(); err != nil {
		return err
	}
	if w.Notifications.Duration < 0 {
		return errors.New("notifications.duration must not be negative")
	}
	return nil
}

// LogLevel parses Log.Level, defaulting to info.
func (w *Widget) LogLevel() (zapcore.Level, error) {
	if w.Log.Level == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(w.Log.Level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}

// Roster builds the contact roster.
func (w *Widget) Roster() (*roster.Roster, error) {
	return roster.New(w.Contacts)
}

// SeedMessages converts the seed entries to store messages. Entries without
// a time are stamped now.
func (w *Widget) SeedMessages(now time.Time) []store.Message {
	out := make([]store.Message, 0, len(w.Messages))
	for _, m := range w.Messages {
		at := m.SentAt
		if at.IsZero() {
			at = now
		}
		out = append(out, store.Message{
			SenderID:   m.SenderID,
			ReceiverID: m.ReceiverID,
			Body:       m.Body,
			SentAt:     at,
		})
	}
	return out
}

// Load reads a widget config. Returns an error if the file is missing.
func Load(path string) (*Widget, error) {
	var cfg Widget
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// LoadOrDefault reads a widget config, falling back to Default when the
// file does not exist. found reports which one was used.
func LoadOrDefault(path string) (cfg *Widget, found bool, err error) {
	cfg, err = Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

// LoadGlobal reads the global config. Returns an error if the file is missing.
func LoadGlobal(path string) (*Global, error) {
	var cfg Global
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes cfg as TOML to path, creating parent dirs as needed.
func Save(path string, cfg any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}

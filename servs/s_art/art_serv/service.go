// file:artkv/servs/s_art/art_serv/service.go
package art_serv

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rskv-p/artkv/pkg/x_art"
	"github.com/rskv-p/artkv/pkg/x_db"
	"github.com/rskv-p/artkv/servs/s_art/art_cfg"
	"gorm.io/gorm"
)

//---------------------
// Service
//---------------------

// Service owns the store and its snapshot database.
type Service struct {
	cfg   art_cfg.ArtConfig
	store *Store
	db    *gorm.DB
	log   zerolog.Logger
}

// New opens the database, creates the admin account and an empty store.
func New(cfg art_cfg.ArtConfig, log zerolog.Logger) (*Service, error) {
	db, err := x_db.Open(x_db.Config{
		Type:     x_db.DbType(cfg.DBType),
		DSN:      cfg.DBDSN,
		LogLevel: cfg.Logger.Level,
	}, log.With().Str("module", "x_db").Logger())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&User{}); err != nil {
		return nil, fmt.Errorf("migrate users: %w", err)
	}
	created, err := EnsureAdmin(db, cfg.AdminUser, cfg.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("admin account: %w", err)
	}
	if created {
		log.Info().Str("user", cfg.AdminUser).Msg("admin account created")
	}

	return &Service{
		cfg:   cfg,
		store: NewStore(log, storeOptions(cfg)...),
		db:    db,
		log:   log,
	}, nil
}

func storeOptions(cfg art_cfg.ArtConfig) []x_art.Option {
	return []x_art.Option{
		x_art.WithMaxNodes(cfg.MaxNodes),
		x_art.WithMaxKeyLen(cfg.MaxKeyLen),
	}
}

func (s *Service) Store() *Store             { return s.store }
func (s *Service) DB() *gorm.DB              { return s.db }
func (s *Service) Config() art_cfg.ArtConfig { return s.cfg }

//---------------------
// Persistence
//---------------------

// Save writes the whole store to the database.
func (s *Service) Save(ctx context.Context) (int, error) {
	snap := s.store.Snapshot()
	entries := make([]x_db.Entry, len(snap))
	for i, kv := range snap {
		entries[i] = x_db.Entry{Key: kv.Key, Value: kv.Value}
	}
	if err := x_db.SaveSnapshot(ctx, s.db, entries); err != nil {
		return 0, fmt.Errorf("save snapshot: %w", err)
	}
	s.log.Info().Int("keys", len(entries)).Msg("snapshot saved")
	return len(entries), nil
}

// Restore replaces the store content with the database rows.
func (s *Service) Restore(ctx context.Context) (int, error) {
	var entries []KV
	err := x_db.Each(ctx, s.db, 0, func(e x_db.Entry) error {
		entries = append(entries, KV{Key: e.Key, Value: e.Value})
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("read snapshot: %w", err)
	}
	if err := s.store.Load(entries); err != nil {
		return 0, fmt.Errorf("load snapshot: %w", err)
	}
	s.log.Info().Int("keys", len(entries)).Msg("snapshot restored")
	return len(entries), nil
}

// Import inserts every row of another database into the store, keeping
// keys that are not in it.
func (s *Service) Import(ctx context.Context, src *gorm.DB) (int, error) {
	n := 0
	err := x_db.Each(ctx, src, 0, func(e x_db.Entry) error {
		if _, _, err := s.store.Put(e.Key, e.Value); err != nil {
			return fmt.Errorf("key %q: %w", e.Key, err)
		}
		n++
		return nil
	})
	return n, err
}

// persistQueue is the event buffer of the write-through mirror.
const persistQueue = 4096

// Persist mirrors every store mutation into the database in the background
// until the returned stop function is called; stop waits for queued events
// to be written. Events dropped under load are repaired by the next Save.
func (s *Service) Persist(ctx context.Context) (stop func()) {
	events, cancel := s.store.Subscribe(persistQueue)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range events {
			if err := s.apply(ctx, ev); err != nil {
				s.log.Error().Err(err).Str("type", ev.Type).Msg("persist event")
			}
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

func (s *Service) apply(ctx context.Context, ev Event) error {
	switch ev.Type {
	case EventPut:
		return x_db.Upsert(ctx, s.db, x_db.Entry{Key: ev.Key, Value: ev.Value})
	case EventDelete:
		return x_db.Remove(ctx, s.db, ev.Key)
	case EventReset:
		_, err := s.Save(ctx)
		return err
	}
	return nil
}

// Close destroys the store and closes the database.
func (s *Service) Close() error {
	s.store.Close()
	return x_db.Close(s.db)
}

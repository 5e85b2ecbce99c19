package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/PabloGalante/atelier-agent/internal/adapters/llm"
	fsstore "github.com/PabloGalante/atelier-agent/internal/adapters/storage/firestore"
	"github.com/PabloGalante/atelier-agent/internal/adapters/storage/gormdb"
	memstore "github.com/PabloGalante/atelier-agent/internal/adapters/storage/memory"
	redisstore "github.com/PabloGalante/atelier-agent/internal/adapters/storage/redis"
	"github.com/PabloGalante/atelier-agent/internal/app/conversation"
	"github.com/PabloGalante/atelier-agent/internal/app/leads"
	"github.com/PabloGalante/atelier-agent/internal/app/recommend"
	"github.com/PabloGalante/atelier-agent/internal/catalog"
	"github.com/PabloGalante/atelier-agent/internal/config"
	"github.com/PabloGalante/atelier-agent/internal/domain"
	"github.com/PabloGalante/atelier-agent/internal/observability"
)

// app is the assembled service graph.
type app struct {
	catalog *catalog.Catalog
	engine  *recommend.Engine
	conv    *conversation.Service
	leads   *leads.Service

	closers []func() error
}

func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}

func buildApp(ctx context.Context, cfg *config.Config) (*app, error) {
	log := observability.Logger()
	a := &app{}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	a.catalog = cat
	a.engine = recommend.NewEngine(cat)

	// one Firestore client serves both stores
	var fs *fsstore.Store
	firestoreStore := func() (*fsstore.Store, error) {
		if fs != nil {
			return fs, nil
		}
		s, err := fsstore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, s.Close)
		fs = s
		return fs, nil
	}

	var sessions domain.SessionStore
	switch cfg.StorageBackend {
	case config.StorageFirestore:
		log.Info("using firestore session store", "project", cfg.GCPProjectID)
		s, err := firestoreStore()
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		sessions = s
	case config.StorageRedis:
		log.Info("using redis session store", "addr", cfg.RedisAddr, "ttl", cfg.SessionTTL.String())
		s, err := redisstore.NewSessionStore(ctx, redisstore.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			TTL:      cfg.SessionTTL,
		})
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.closers = append(a.closers, s.Close)
		sessions = s
	default:
		log.Info("using in-memory session store")
		sessions = memstore.NewSessionStore()
	}

	var leadStore domain.LeadStore
	switch cfg.LeadsBackend {
	case config.LeadsSQLite, config.LeadsPostgres:
		log.Info("using sql lead store", "dialect", cfg.LeadsBackend, "dsn", cfg.LeadsDSN)
		s, err := gormdb.Open(cfg.LeadsBackend, cfg.LeadsDSN)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.closers = append(a.closers, s.Close)
		leadStore = s
	case config.LeadsFirestore:
		s, err := firestoreStore()
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		leadStore = s
	default:
		leadStore = memstore.NewLeadStore()
	}

	var prose domain.ProseGenerator
	switch cfg.ProseBackend {
	case config.ProseVertex:
		log.Info("using vertex prose generator", "model", cfg.ModelName)
		v, err := llm.NewVertexClient(ctx, llm.VertexConfig{
			Project:   cfg.GCPProjectID,
			Location:  cfg.GCPLocation,
			ModelName: cfg.ModelName,
		})
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		prose = v
	case config.ProseMock:
		log.Info("using mock prose generator")
		prose = llm.NewMockProse()
	}

	a.conv = conversation.NewService(a.engine, sessions, leadStore, prose, conversation.Settings{
		MaxInputChars:      cfg.MaxInputChars,
		FollowupAfterTurns: cfg.FollowupAfterTurns,
		ProseTimeout:       cfg.ProseTimeout,
	})
	a.leads = leads.NewService(leadStore)
	return a, nil
}

package root

import (
	"context"

	"lento/internal/activity"
	"lento/internal/config"
	"lento/internal/engine"
	"lento/internal/storage"
)

// openService wires config, storage and the activity source into an engine
// service. The returned cleanup closes the database.
func openService(ctx context.Context) (*engine.Service, func(), error) {
	cfgPath := flagConfig
	if cfgPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, nil, err
		}
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}

	dbPath := flagDB
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	if dbPath == "" {
		p, err := storage.ResolveDBPath()
		if err != nil {
			return nil, nil, err
		}
		dbPath = p
	}

	db, err := storage.Open(ctx, dbPath)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}

	dataPath := flagData
	if dataPath == "" {
		dataPath = cfg.ActivityPath
	}

	svc := engine.NewService(
		storage.NewSQLiteStore(db),
		activity.NewFileSource(dataPath),
		engine.Options{
			MaxDailyQuests:          cfg.MaxDailyQuests,
			AssignmentRetentionDays: cfg.AssignmentRetentionDays,
			XPRetentionDays:         cfg.XPRetentionDays,
		},
	)
	return svc, cleanup, nil
}

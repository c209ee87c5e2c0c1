package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/growthdesk/clinic-intel/internal/dictionary"
	"github.com/growthdesk/clinic-intel/internal/store"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "clinic-intel.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// dictionaryProvider returns the store-backed provider when a store is
// available, otherwise the built-in seed dictionary.
func dictionaryProvider(ctx context.Context, useSeed bool) (dictionary.Provider, store.Store, error) {
	if useSeed {
		return dictionary.NewStatic(dictionary.SeedEntries(), dictionary.SeedCompounds()), nil, nil
	}
	st, err := initStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	return dictionary.NewStoreProvider(st), st, nil
}

// compoundChain builds the static-then-store resolution chain. st may be nil.
func compoundChain(st dictionary.CompoundStore) *dictionary.Chain {
	static := dictionary.NewStatic(dictionary.SeedEntries(), dictionary.SeedCompounds())
	if st == nil {
		return dictionary.NewChain(static)
	}
	return dictionary.NewChain(static, dictionary.NewStoreBacked(st))
}

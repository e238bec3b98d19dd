package cmd

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"dinnerconcierge/internal/csv"
	"dinnerconcierge/internal/database"
	"dinnerconcierge/internal/flow"
	"dinnerconcierge/internal/models"
	"dinnerconcierge/internal/store"
)

// session is the storage and catalog every command works against.
type session struct {
	kv    database.KV
	store *store.Store
	menu  models.FullMenu
}

func openSession() (*session, error) {
	menu, err := loadMenu()
	if err != nil {
		return nil, err
	}

	kv, err := database.Open(cfg.StorageOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Store, err)
	}

	return &session{
		kv:    kv,
		store: store.New(kv, cfg.StorageKey, log.StandardLogger()),
		menu:  menu,
	}, nil
}

func (s *session) Close() error {
	return s.kv.Close()
}

// controller starts a flow over the stored orders, importing payload first if set.
func (s *session) controller(ctx context.Context, payload string) (*flow.Controller, []string, error) {
	ctrl := flow.New(s.store, s.menu, log.StandardLogger())
	names, err := ctrl.Startup(ctx, payload)
	if err != nil {
		return nil, nil, err
	}
	return ctrl, names, nil
}

func loadMenu() (models.FullMenu, error) {
	if menuFile == "" {
		return models.DefaultMenu(), nil
	}
	menu, err := csv.NewParser(menuFile).ParseCatalog()
	if err != nil {
		return models.FullMenu{}, fmt.Errorf("failed to load menu %s: %w", menuFile, err)
	}
	log.Printf("Loaded %d menu items from %s", len(menu.AllItems()), menuFile)
	return menu, nil
}

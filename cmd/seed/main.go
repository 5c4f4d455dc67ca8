package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"voyager-be/internal/apperr"
	"voyager-be/internal/auth"
	"voyager-be/internal/config"
	"voyager-be/internal/db"
	"voyager-be/internal/logger"
	"voyager-be/internal/menu"
	"voyager-be/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var catalog = []menu.Item{
	{ItemName: "Grilled Lobster Thermidor", Category: menu.CategoryCatering, Subcategory: "main-course", Price: 45.99,
		Description: "Fresh lobster with creamy thermidor sauce, served with seasonal vegetables"},
	{ItemName: "Wagyu Beef Tenderloin", Category: menu.CategoryCatering, Subcategory: "main-course", Price: 65.99,
		Description: "Premium wagyu beef cooked to perfection with truffle butter"},
	{ItemName: "Pan-Seared Salmon", Category: menu.CategoryCatering, Subcategory: "main-course", Price: 32.99,
		Description: "Atlantic salmon with lemon herb crust and roasted asparagus"},
	{ItemName: "Champagne & Caviar", Category: menu.CategoryCatering, Subcategory: "appetizer", Price: 89.99,
		Description: "Dom Pérignon champagne served with Ossetra caviar"},
	{ItemName: "Chocolate Soufflé", Category: menu.CategoryCatering, Subcategory: "dessert", Price: 18.99,
		Description: "Warm chocolate soufflé with vanilla ice cream"},

	{ItemName: "Luxury Cruise Photo Album", Category: menu.CategoryStationery, Subcategory: "souvenirs", Price: 29.99,
		Description: "Premium leather-bound photo album with cruise ship embossing"},
	{ItemName: "Ship's Compass Keychain", Category: menu.CategoryStationery, Subcategory: "souvenirs", Price: 12.99,
		Description: "Brass compass keychain with ship's logo"},
	{ItemName: "Cruise Ship Model", Category: menu.CategoryStationery, Subcategory: "gifts", Price: 89.99,
		Description: "Detailed scale model of the cruise ship"},
	{ItemName: "Ocean Breeze Perfume", Category: menu.CategoryStationery, Subcategory: "gifts", Price: 45.99,
		Description: "Exclusive cruise line fragrance with ocean notes"},
	{ItemName: "Nautical Jewelry Set", Category: menu.CategoryStationery, Subcategory: "gifts", Price: 79.99,
		Description: "Elegant anchor and wave-themed jewelry collection"},
}

func main() {
	if err := run(context.Background()); err != nil {
		logger.L().Fatal("seed failed", zap.Error(err))
	}
}

func run(ctx context.Context) error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database, err := db.NewDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	added, err := seedMenu(ctx, menu.NewRepository(database), catalog)
	if err != nil {
		return err
	}
	logger.L().Info("menu seeded", zap.Int("added", added), zap.Int("catalog", len(catalog)))

	if cfg.AdminEmail == "" {
		logger.L().Info("ADMIN_EMAIL not set, skipping admin bootstrap")
		return nil
	}
	created, err := seedAdmin(ctx, user.NewRepository(database), cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword, cfg.BcryptCost)
	if err != nil {
		return err
	}
	logger.L().Info("admin bootstrap", zap.String("email", cfg.AdminEmail), zap.Bool("created", created))
	return nil
}

// seedMenu inserts the items whose name is not yet present in their
// category. Existing rows are left alone so orders keep their references.
func seedMenu(ctx context.Context, repo menu.Repository, items []menu.Item) (int, error) {
	existing := make(map[menu.Category]map[string]bool)
	added := 0

	for _, it := range items {
		names, ok := existing[it.Category]
		if !ok {
			current, err := repo.List(ctx, it.Category)
			if err != nil {
				return added, fmt.Errorf("list %s items: %w", it.Category, err)
			}
			names = make(map[string]bool, len(current))
			for _, c := range current {
				names[c.ItemName] = true
			}
			existing[it.Category] = names
		}
		if names[it.ItemName] {
			continue
		}

		item := it
		item.ID = uuid.New()
		item.Available = true
		if _, err := repo.Create(ctx, &item); err != nil {
			return added, fmt.Errorf("insert %q: %w", it.ItemName, err)
		}
		names[it.ItemName] = true
		added++
	}
	return added, nil
}

// seedAdmin creates the bootstrap admin unless the email is taken.
func seedAdmin(ctx context.Context, repo user.Repository, name, email, password string, cost int) (bool, error) {
	if len(password) < 8 {
		return false, errors.New("ADMIN_PASSWORD must be at least 8 characters")
	}
	email = strings.ToLower(strings.TrimSpace(email))

	_, err := repo.FindByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if apperr.KindOf(err) != apperr.NotFound {
		return false, err
	}

	hash, err := user.HashPassword(password, cost)
	if err != nil {
		return false, err
	}

	_, err = repo.Create(ctx, &user.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         auth.RoleAdmin,
	})
	if errors.Is(err, user.ErrEmailExists) {
		return false, nil
	}
	return err == nil, err
}

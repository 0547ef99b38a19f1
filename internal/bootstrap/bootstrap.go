package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"go-inventory-tracker/internal/config"
	"go-inventory-tracker/internal/repository"
	"go-inventory-tracker/internal/repository/mongostore"
	"go-inventory-tracker/internal/service"
	"go-inventory-tracker/pkg/database"
	"go-inventory-tracker/pkg/jwt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Runtime is the wired persistence and service layer shared by the API server and the admin CLI
type Runtime struct {
	DB    *gorm.DB
	Store repository.Store

	Users      repository.UserRepository
	Roles      repository.RoleRepository
	Privileges repository.PrivilegeRepository

	Inventory service.InventoryService
	Dashboard service.DashboardService
	Auth      service.AuthService
	Reports   service.ReportService
	Seeder    *service.AccessSeeder
}

// Open connects the configured store, migrates the relational schema and seeds access control.
// Users, roles and privileges always live in the relational database.
func Open(ctx context.Context, cfg *config.Config, notifier service.Notifier, log zerolog.Logger) (*Runtime, error) {
	db, err := openRelational(cfg, log)
	if err != nil {
		return nil, err
	}

	var store repository.Store
	if cfg.StoreDriver == config.DriverMongo {
		client, err := database.ConnectMongo(ctx, cfg.MongoURI, log)
		if err != nil {
			_ = database.Close(db)
			return nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, client, cfg.MongoDB); err != nil {
			_ = client.Disconnect(context.Background())
			_ = database.Close(db)
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		store = mongostore.New(client, cfg.MongoDB)
	} else {
		store = repository.NewStore(db)
	}

	if err := database.Migrate(db, cfg.StoreDriver != config.DriverMongo); err != nil {
		_ = store.Close(ctx)
		_ = database.Close(db)
		return nil, err
	}

	rt := &Runtime{
		DB:         db,
		Store:      store,
		Users:      repository.NewUserRepo(db),
		Roles:      repository.NewRoleRepo(db),
		Privileges: repository.NewPrivilegeRepo(db),
	}
	rt.Seeder = service.NewAccessSeeder(rt.Users, rt.Roles, rt.Privileges, log)
	if err := rt.Seeder.Seed(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("seed access control: %w", err)
	}

	rt.Inventory = service.NewInventoryService(store, notifier, log)
	rt.Dashboard = service.NewDashboardService(store)
	rt.Auth = service.NewAuthService(rt.Users, jwt.NewManager(cfg.JWTSecret, cfg.JWTTTL), log)
	rt.Reports = service.NewReportService(store)
	return rt, nil
}

func openRelational(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	if cfg.StoreDriver == config.DriverSQLite {
		return database.ConnectSQLite(cfg.SQLitePath, log)
	}
	return database.ConnectPostgres(cfg.PostgresDSN(), log)
}

// Close releases the inventory store and the relational pool
func (r *Runtime) Close(ctx context.Context) error {
	var errs []error
	if r.Store != nil {
		errs = append(errs, r.Store.Close(ctx))
	}
	if r.DB != nil {
		errs = append(errs, database.Close(r.DB))
	}
	return errors.Join(errs...)
}

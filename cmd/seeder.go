package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/auth"
	"github.com/frahmantamala/hr-management/internal/storage"
	"github.com/frahmantamala/hr-management/internal/storage/postgres"
	"github.com/spf13/cobra"
)

var seedFixture string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with the organization, users and employees of a YAML fixture.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		if cfg.Database.Driver == internal.DriverMemory {
			log.Fatalf("the memory driver seeds itself from storage.seed_fixture on server start")
		}

		path := seedFixture
		if path == "" {
			path = cfg.Storage.SeedFixture
		}
		if path == "" {
			log.Fatalf("no fixture: pass --fixture or set storage.seed_fixture")
		}
		fixture, err := storage.LoadFixture(path)
		if err != nil {
			log.Fatalf("failed to load fixture: %v", err)
		}

		gdb, sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		if clearData {
			if err := gdb.Migrator().DropTable(postgres.Models()...); err != nil {
				log.Fatalf("failed to drop tables: %v", err)
			}
			fmt.Println("Dropped existing tables")
		}
		if err := postgres.AutoMigrate(gdb); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}

		repo := postgres.New(gdb, storeOptions(cfg.Storage)...)
		users, err := repo.ListUsers(ctx)
		if err != nil {
			log.Fatalf("failed to inspect users: %v", err)
		}
		if len(users) > 0 {
			fmt.Printf("Database already has %d users; rerun with --clear to reseed\n", len(users))
			return
		}

		res, err := storage.Seed(ctx, repo, fixture, auth.Hasher(cfg.Security.BCryptCost), time.Now().UTC())
		if err != nil {
			log.Fatalf("failed to seed: %v", err)
		}

		fmt.Printf("Seeded %d gerencias, %d departamentos, %d cargos, %d users, %d employees from %s\n",
			len(res.Gerencias), len(res.Departamentos), len(res.Cargos), len(res.Users), len(res.Employees), path)
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFixture, "fixture", "f", "", "YAML fixture to load (defaults to storage.seed_fixture)")
}

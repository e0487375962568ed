package main

import (
	"Lost-Found-Registry/cmd/config"
	migration "Lost-Found-Registry/cmd/database/migrate"
	"Lost-Found-Registry/domain"
	"Lost-Found-Registry/internal/utils"
	"Lost-Found-Registry/pkg/admin"
	"Lost-Found-Registry/pkg/jwt"
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const defaultPort = "8080"

var configFile string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lostfound",
	Short: "Lost and found registry with QR claim verification",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return utils.LoadConfig(configFile)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", utils.DefaultConfigFile, "YAML config file; environment variables override it")

	createAdminCmd.Flags().String("name", "Administrator", "display name")
	createAdminCmd.Flags().String("email", "", "login email")
	createAdminCmd.Flags().String("password", "", "password (generated when empty)")
	_ = createAdminCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(createAdminCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}

		app, err := config.NewApp(db)
		if err != nil {
			return err
		}

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-quit
			log.Info("shutting down")
			if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
				log.Errorw("shutdown failed", "error", err)
			}
		}()

		return app.Listen(":" + utils.GetConfigOr("APP_PORT", defaultPort))
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := openDatabase(); err != nil {
			return err
		}
		fmt.Println("Schema migrated.")
		return nil
	},
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		generated := password == ""
		if generated {
			var err error
			if password, err = generatePassword(16); err != nil {
				return fmt.Errorf("generating password: %w", err)
			}
		}

		req := domain.CreateAdminRequest{Name: name, Email: email, Password: password}
		utils.InitValidator()
		if err := utils.Validate.Struct(req); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}

		db, err := openDatabase()
		if err != nil {
			return err
		}

		jwtService, err := jwt.NewJWTService()
		if err != nil {
			return err
		}

		adminService := admin.NewAdminService(admin.NewAdminRepository(db), jwtService)
		created, err := adminService.CreateAdmin(context.Background(), req)
		if err != nil {
			return err
		}

		fmt.Printf("Admin account created: %s\n", created.Email)
		if generated {
			fmt.Printf("  Password: %s\n", password)
			fmt.Println("Save this password, it cannot be recovered.")
		}
		return nil
	},
}

func openDatabase() (*gorm.DB, error) {
	db, err := config.ConnectDB()
	if err != nil {
		return nil, err
	}
	if err := migration.Migrate(db); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

func generatePassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}

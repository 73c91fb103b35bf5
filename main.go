package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/SohamRatnaparkhi/developer-minimal-portfolio/internal/config"
	"github.com/SohamRatnaparkhi/developer-minimal-portfolio/internal/content"
	"github.com/SohamRatnaparkhi/developer-minimal-portfolio/internal/store"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Minimal developer portfolio server",
	Long: `portfolio serves a single-page developer portfolio rendered from JSON
content documents: an annotated bio, experience, skills, GitHub activity,
projects, research, achievements and blog posts.`,
	SilenceUsage: true,
}

var (
	servePort    int
	annotateSize string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the portfolio web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}
		gin.SetMode(cfg.GinMode)

		site, err := content.Load(cfg.ContentDir)
		if err != nil {
			return fmt.Errorf("loading content: %w", err)
		}
		if err := site.Validate(); err != nil {
			return fmt.Errorf("invalid content: %w", err)
		}

		db, err := store.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()

		s := newServer(cfg, site, db)
		go s.cleanupOldVisitorData()

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Port),
			Handler: s.routes(),
		}
		ln, err := net.Listen("tcp", srv.Addr)
		if err != nil {
			return fmt.Errorf("listening on %s: %w", srv.Addr, err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.Printf("Portfolio for %s listening on :%d", site.Profile.Name, cfg.Port)
		if verbose {
			log.Printf("  Content: %s", cfg.ContentDir)
			log.Printf("  Database: %s", cfg.DBPath)
			log.Printf("  Mail: %v", cfg.SMTP.Enabled())
		}
		return runServer(ctx, srv, ln)
	},
}

var shutdownTimeout = 5 * time.Second

// runServer serves on ln until ctx is done, then shuts down gracefully.
func runServer(ctx context.Context, srv *http.Server, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %v", err)
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Print the annotated bio as JSON",
	Long: `annotate splits each bio paragraph of the profile into plain, highlighted
and linked segments and prints them as JSON. Useful for checking highlight
and hyperlink rules before deploying new content.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		site, err := content.Load(cfg.ContentDir)
		if err != nil {
			return fmt.Errorf("loading content: %w", err)
		}
		if err := site.Profile.Bio.Variant(annotateSize).Rules.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(site.Profile.Bio.Variant(annotateSize).Annotate())
	},
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "portfolio.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	serveCmd.Flags().IntVar(&servePort, "port", 8080, "port to listen on (overrides config)")
	annotateCmd.Flags().StringVar(&annotateSize, "size", "lg", "bio variant: sm, md or lg")

	rootCmd.AddCommand(serveCmd, annotateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

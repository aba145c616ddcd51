package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/interview-coach/internal/api"
	"github.com/spigell/interview-coach/internal/jobs"
	"github.com/spigell/interview-coach/internal/logger"
	"github.com/spigell/interview-coach/internal/secrets"
	"github.com/spigell/interview-coach/internal/session"
	"github.com/spigell/interview-coach/internal/vapi"
	"github.com/spigell/interview-coach/internal/webhook"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the interview HTTP API",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("addr", "a", "", "listen address (default :8080)")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func serve(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync() //nolint:errcheck

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the interview-coach", zap.String("version", version))

	handler, err := newAPI(config, logger)
	if err != nil {
		logger.Fatal("wiring the api", zap.Error(err))
	}

	server := &http.Server{
		Addr:              config.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", zap.Duration("timeout", config.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server stopped with error", zap.Error(err))
	}

	logger.Info("server stopped")
}

// newAPI builds every collaborator around one shared session store.
func newAPI(config *Config, log *zap.Logger) (http.Handler, error) {
	privateKey, err := config.Vapi.privateKey()
	if err != nil {
		return nil, err
	}
	if privateKey == "" {
		log.Warn("vapi private key is not configured; assistant creation will fail",
			zap.String("hint", "set VAPI_PRIVATE_KEY or VAPI_PRIVATE_KEY_FILE"))
	} else {
		log.Debug("vapi private key loaded", zap.String("key", secrets.Mask(privateKey)))
	}

	policies, err := config.Jobs.policies()
	if err != nil {
		return nil, err
	}
	if config.Jobs.URL == "" {
		log.Warn("recommender url is not configured; job endpoints follow their failure policy")
	}

	client := vapi.New(log, privateKey)
	if config.Vapi.APIURL != "" {
		client.APIURL = config.Vapi.APIURL
	}

	server := api.New(api.Deps{
		Sessions:      session.NewService(session.NewMemoryStore(), log),
		Provisioner:   vapi.NewProvisioner(client, privateKey, config.Vapi.Assistant, log),
		Dispatcher:    webhook.NewDispatcher(webhook.NewFunctions(log, config.Log.MaxLength), log, config.Log.MaxLength),
		Recommender:   jobs.NewRecommender(jobs.NewClient(log, config.Jobs.URL), policies, log),
		PublicConfig:  config.Vapi.publicConfig(),
		Logger:        log,
		Version:       version,
		CORSOrigins:   config.Server.CORSOrigins,
		DefaultUserID: config.Jobs.DefaultUserID,
	})

	return server.Handler(), nil
}

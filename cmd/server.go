package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/scenecoach/internal/agent"
	"github.com/ziadkadry99/scenecoach/internal/audit"
	"github.com/ziadkadry99/scenecoach/internal/profile"
	"github.com/ziadkadry99/scenecoach/internal/server"
	"github.com/ziadkadry99/scenecoach/internal/thread"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the coaching HTTP and websocket server",
	Long:  `Starts the scenecoach server with the agent REST API, the /ws/agent websocket and the coach run log.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = serverPort
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		c, err := newCoachFromConfig(cfg, logger)
		if err != nil {
			return err
		}

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		srv := server.New(server.Config{
			Port:           cfg.Server.Port,
			AllowAll:       cfg.Server.AllowAllOrigins,
			RequestTimeout: time.Duration(cfg.Server.RequestTimeoutSecs) * time.Second,
		}, database, logger.Named("http"))

		runs := audit.NewStore(database)
		svc := agent.NewService(c,
			profile.NewStore(database),
			thread.NewStore(database),
			runs,
			agent.Config{
				HistoryLimit: cfg.Coach.HistoryLimit,
				ThreadLimit:  cfg.Coach.ThreadLimit,
				NotesWindow:  cfg.Coach.NotesWindow,
			},
			logger.Named("agent"))

		agent.RegisterRoutes(srv.API(), svc)
		agent.RegisterWebSocket(srv.Router(), svc)
		audit.RegisterRoutes(srv.API(), runs)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		logger.Info("scenecoach server starting",
			zap.String("version", Version),
			zap.Int("port", cfg.Server.Port),
			zap.String("database", database.Path()),
			zap.String("provider", string(cfg.Provider)),
			zap.String("model", cfg.Model))

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serverCmd)
}

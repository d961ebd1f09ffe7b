package main

import (
	"context"
	"errors"
	"log"
	"os"
	"syscall"
	"time"

	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quesurifn/ics-attendance-server/attendance"
	cal "github.com/quesurifn/ics-attendance-server/calendar"
	h "github.com/quesurifn/ics-attendance-server/handlers"
	"github.com/quesurifn/ics-attendance-server/pkg/config"
	"github.com/quesurifn/ics-attendance-server/store"
)

var cfg *config.Config

var serverCmd = &cobra.Command{
	Use:   "attendance-srv",
	Short: "Run the attendance server",
	Run: func(cmd *cobra.Command, args []string) {
		app := fiber.New()
		logger, _ := zap.NewProduction()
		if cfg.Debug {
			logger, _ = zap.NewDevelopment()
		}
		fiberLogger := fiberzap.New(fiberzap.Config{
			Logger: logger,
		})
		fiberLimiter := limiter.New(limiter.Config{
			Next: func(c *fiber.Ctx) bool {
				return c.IP() == "127.0.0.1"
			},
			Max:        20,
			Expiration: 30 * time.Second,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.Get("x-forwarded-for")
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.JSON(fiber.Map{
					"error": "Too many requests",
				})
			},
		})

		app.Use(fiberLimiter)
		app.Use(fiberLogger)

		st, err := store.Open(context.Background(), appConfig.DBPath)
		if err != nil {
			logger.Fatal("open store", zap.Error(err), zap.String("db_path", appConfig.DBPath))
		}
		defer st.Close()

		tracker := &attendance.Tracker{
			Logger:        logger,
			Feed:          cal.New(logger),
			Store:         st,
			FeedURL:       appConfig.FeedURL,
			Target:        appConfig.TargetRatio,
			OptionalTypes: appConfig.OptionalTypes,
		}

		h := h.Handlers{
			Logger:  logger,
			Tracker: tracker,
		}

		app.Get("/", h.RootHandler)
		app.Post("/refresh", h.RefreshHandler)
		app.Get("/stats", h.StatsHandler)
		app.Get("/events", h.EventsHandler)
		app.Put("/attendance", h.AttendanceHandler)

		if appConfig.RefreshCron != "" {
			sched := cron.New()
			_, err := sched.AddFunc(appConfig.RefreshCron, func() {
				if _, err := tracker.Refresh(context.Background()); err != nil {
					logger.Error("scheduled refresh failed", zap.Error(err))
				}
			})
			if err != nil {
				logger.Fatal("invalid refresh schedule", zap.Error(err), zap.String("cron", appConfig.RefreshCron))
			}
			sched.Start()
			defer sched.Stop()
		}

		defer func() {
			err := logger.Sync()
			if err != nil && !errors.Is(err, syscall.ENOTTY) {
				logger.Fatal(err.Error())
			}
		}()

		log.Fatal(app.Listen(":" + appConfig.Port))
	},
}

func init() {
	cfg = config.New(&config.Settings{ENVPrefix: "ATTD_SRV"})

	serverCmd.Flags().StringVarP(&appConfig.Port, "port", "p", appConfig.Port, "app server port")
	serverCmd.Flags().StringVarP(&appConfig.FeedURL, "feed", "f", appConfig.FeedURL, "timetable feed URL")
	serverCmd.Flags().BoolVarP(&cfg.Debug, "debug", "d", cfg.Debug, "Debug Mode")
}

func main() {
	if err := cfg.Load(&appConfig, "config.yml"); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(-1)
	}

	if err := serverCmd.Execute(); err != nil {
		os.Stderr.WriteString(err.Error())
		os.Exit(-1)
	}
}

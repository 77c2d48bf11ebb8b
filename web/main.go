package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/config"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/core"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/store"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/web/handlers"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/web/middlewares"
)

func main() {
	log := logrus.New()
	cfg := config.Load()

	s, err := store.Open(cfg.DBDriver, cfg.DSN)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	if err := s.AutoMigrate(); err != nil {
		log.WithError(err).Fatal("migration failed")
	}

	rates := core.DefaultRateTable()
	if cfg.RateTablePath != "" {
		rates, err = core.LoadRateTable(cfg.RateTablePath)
		if err != nil {
			log.WithError(err).Fatal("rate table load failed")
		}
	}

	h := handlers.New(s, rates, log)
	if cfg.UploadDir != "" {
		h = h.WithUploadDir(cfg.UploadDir)
	}

	r := gin.Default()
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	r.POST("/upload/timesheet", h.UploadTimesheet)
	r.POST("/upload/cargo", h.UploadCargo)

	api := r.Group("/api")
	if cfg.JWTSecret != "" {
		api.Use(middlewares.Authentication(cfg.JWTSecret))
	} else {
		log.Warn("JWT_SECRET not set, API is unauthenticated")
	}
	{
		api.GET("/timesheets", h.ListEntries)
		api.PUT("/timesheets/:id", h.UpdateEntry)
		api.DELETE("/timesheets/:id", h.DeleteEntry)

		api.GET("/cargo/summary", h.CargoSummary)

		api.GET("/agencies", h.ListAgencies)
		api.POST("/agencies", h.CreateAgency)
		api.POST("/agencies/markups", h.AddMarkup)
		api.GET("/agencies/markup", h.ResolveMarkup)

		api.GET("/workers", h.ListWorkers)
		api.PUT("/workers/:id/active", h.SetWorkerActive)
		api.GET("/workers/:id/agency-periods", h.AgencyPeriods)

		api.GET("/wage-rates", h.ListWageRates)
		api.POST("/wage-rates/reconcile", h.Reconcile)
		api.POST("/wage-rates/dedupe", h.Dedupe)
		api.GET("/wage-rates/analyze", h.AnalyzeWageRates)
		api.GET("/wage-rates/export", h.ExportWageRates)
		api.DELETE("/wage-rates/:id", h.DeleteWageRate)

		api.GET("/dashboard", h.Dashboard)
		api.GET("/reports/weekly", h.WeeklyReport)
		api.GET("/reports/agency-monthly", h.AgencyMonthlyReport)
		api.GET("/reports/costs", h.CostReport)
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

// Package scheduler runs the periodic background tasks: cache refresh for the
// hot market resources and the price alert sweep.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"TrendBot/internal/market"
	"TrendBot/internal/model"
)

// AlertStore is the slice of the store the alert sweep needs.
type AlertStore interface {
	ActiveAlerts() ([]model.Alert, error)
	MarkTriggered(id int64) error
}

// Scheduler manages all cron tasks.
type Scheduler struct {
	cron   *cron.Cron
	api    market.API
	alerts AlertStore
	log    zerolog.Logger
	ctx    context.Context
}

// New creates a scheduler. Tasks run until ctx is canceled or Stop is called.
func New(ctx context.Context, api market.API, alerts AlertStore) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		api:    api,
		alerts: alerts,
		log:    log.With().Str("component", "scheduler").Logger(),
		ctx:    ctx,
	}
}

// RegisterAll registers the refresh and alert sweep tasks under the given
// cron expressions.
func (s *Scheduler) RegisterAll(refreshCron, alertCron string) error {
	if _, err := s.cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	if _, err := s.cron.AddFunc(alertCron, s.alertSweep); err != nil {
		return fmt.Errorf("register alert sweep: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info().Msg("scheduler stopped")
}

// RunRefreshNow executes the refresh task immediately, used at startup to
// serve the first requests from a warm cache.
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	s.log.Info().Msg("refreshing market cache")
	s.api.Warmup(s.ctx)
}

// alertSweep checks every active alert against the current price of its coin.
// Each coin is fetched once per sweep; a fetch failure skips that coin's
// alerts until the next sweep.
func (s *Scheduler) alertSweep() {
	alerts, err := s.alerts.ActiveAlerts()
	if err != nil {
		s.log.Error().Err(err).Msg("load active alerts")
		return
	}
	if len(alerts) == 0 {
		return
	}
	s.log.Info().Int("alerts", len(alerts)).Msg("running alert sweep")

	prices := make(map[string]float64)
	failed := make(map[string]bool)
	for _, a := range alerts {
		if _, ok := prices[a.CoinID]; ok || failed[a.CoinID] {
			continue
		}
		details, err := s.api.Coin(s.ctx, a.CoinID)
		if err != nil {
			s.log.Warn().Str("coin", a.CoinID).Err(err).Msg("fetch price for alert")
			failed[a.CoinID] = true
			continue
		}
		prices[a.CoinID] = details.CurrentPrice
	}

	for _, a := range alerts {
		price, ok := prices[a.CoinID]
		if !ok || !fired(a, price) {
			continue
		}
		if err := s.alerts.MarkTriggered(a.ID); err != nil {
			s.log.Error().Int64("alert", a.ID).Err(err).Msg("mark alert triggered")
			continue
		}
		s.log.Info().
			Int64("alert", a.ID).
			Str("coin", a.CoinID).
			Str("type", a.Type).
			Float64("target", a.TargetPrice).
			Float64("price", price).
			Msg("price alert triggered")
	}
}

func fired(a model.Alert, price float64) bool {
	if a.Type == model.AlertAbove {
		return price >= a.TargetPrice
	}
	return price <= a.TargetPrice
}

package main

import (
	"github.com/lkarlslund/screenwatch/internal/capture"
	"github.com/lkarlslund/screenwatch/internal/common"
	"github.com/lkarlslund/screenwatch/internal/desktop"
	"github.com/lkarlslund/screenwatch/internal/monitor"
	"github.com/spf13/cobra"
)

const appName = "Auto Refresh"

func (o *rootOptions) runMonitor(cmd *cobra.Command, _ []string) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}

	templates, err := loadTemplates(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := templates.Close(); err != nil {
			common.LogDebug("Failed to release templates", common.Fields{"error": err.Error()})
		}
	}()

	notifier := desktop.NewNotifier(appName)
	dialog := desktop.NewDialog()
	player := desktop.NewPlayer()
	defer player.Stop()

	scheduler := monitor.NewScheduler(nil)
	alerts := monitor.NewAlertCoordinator(monitor.AlertConfig{
		SoundPath:       cfg.SoundPath,
		ResumeDelay:     cfg.ResumeDelay,
		SuppressRepeats: cfg.SuppressRepeatAlerts,
	}, dialog, player, notifier, scheduler)
	dispatcher := monitor.NewDispatcher(monitor.DispatchConfig{
		RefreshKey:      cfg.RefreshKey,
		NotifyOnRefresh: cfg.NotifyOnRefresh,
	}, desktop.NewInput(), notifier, templates.locators(cfg.MatchThreshold)...)

	loop := monitor.NewLoop(monitor.Options{
		Mode:          cfg.Mode,
		Interval:      cfg.CheckInterval,
		StartupDelay:  cfg.StartupDelay,
		ErrorCooldown: cfg.ErrorCooldown,
		OnError:       cfg.OnError,
	}, monitor.Deps{
		Capturer:   capture.NewScreen(),
		Detector:   templates.matcher(cfg.MatchThreshold),
		Alerts:     alerts,
		Dispatcher: dispatcher,
		Scheduler:  scheduler,
		Dialog:     dialog,
		Notifier:   notifier,
	})

	return loop.Run(cmd.Context())
}

package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"taskmaster/internal/assistant"
	"taskmaster/internal/config"
	"taskmaster/internal/journal"
	"taskmaster/internal/logging"
	"taskmaster/internal/notify"
	"taskmaster/internal/task"
	"taskmaster/internal/timer"
	"taskmaster/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	// Load .env file (optional - won't error if missing)
	if err := godotenv.Load(); err == nil {
		logging.Info("main", "loaded .env file")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.StatePath, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "state dir: %v\n", err)
		os.Exit(1)
	}

	store := task.NewStore(cfg.StatePath)
	if err := store.Load(); err != nil {
		logging.Warn("main", "failed to load state: %v", err)
	}

	tm := timer.New(
		timer.WithDurations(cfg.Timer.FocusSeconds, cfg.Timer.BreakSeconds),
		timer.WithTaskLabels(func(id string) string {
			if t, ok := store.Get(id); ok {
				return t.Title
			}
			return ""
		}),
	)

	// Notifications: always log, add sound and Discord when configured
	fanout := notify.NewFanout(notify.LogNotifier{})
	if cfg.SoundPath != "" {
		fanout.Add(notify.NewSoundNotifier(cfg.SoundPath))
	}
	if cfg.Discord.Token != "" {
		disc, err := notify.NewDiscordNotifier(cfg.Discord.Token, cfg.Discord.ChannelID)
		if err != nil {
			logging.Warn("main", "discord notifier disabled: %v", err)
		} else {
			defer disc.Close()
			fanout.Add(disc)
		}
	}

	history, err := journal.Open(cfg.StatePath)
	if err != nil {
		logging.Warn("main", "journal disabled: %v", err)
		history = nil
	} else {
		defer history.Close()
	}

	store.OnTaskAdded(func(t task.Task) {
		fanout.TaskAdded(t.Title)
	})
	store.OnTaskCompleted(func(t task.Task) {
		fanout.TaskCompleted(t.Title)
		if history != nil {
			if err := history.Record(journal.KindTaskCompleted, t.Title); err != nil {
				logging.Warn("main", "journal write failed: %v", err)
			}
		}
	})
	tm.OnComplete(func(mode timer.Mode) {
		fanout.TimerFinished(string(mode))
		if mode == timer.ModeFocus && history != nil {
			if err := history.Record(journal.KindFocusSession, tm.SelectedTaskLabel()); err != nil {
				logging.Warn("main", "journal write failed: %v", err)
			}
		}
	})

	var bridge *assistant.Bridge
	if cfg.AI.APIKey != "" {
		client := assistant.NewClient(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model)
		bridge = assistant.NewBridge(client, store)
	} else {
		logging.Info("main", "no AI key configured, assistant disabled")
	}

	model := ui.NewModel(store, tm, bridge, history)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "run: %v\n", err)
		os.Exit(1)
	}
	tm.Pause()
}

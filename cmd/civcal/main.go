package main

import (
	"flag"
	"os"

	"civcal/internal/calendar"
	"civcal/internal/config"
	appLog "civcal/internal/log"
)

// flagConfig holds CLI flag values.
type flagConfig struct {
	configPath string
	verbose    bool
}

func main() {
	flags := parseFlags()
	if flags.verbose {
		appLog.SetLevel(appLog.LevelDebug)
	}

	appLog.Info("civcal starting", "config_path", flags.configPath)

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}

	manager, err := bootstrap(conf)
	if err != nil {
		appLog.Error("failed to bootstrap calendars", err)
		os.Exit(1)
	}

	appLog.Info("calendars ready",
		"calendars", len(manager.CalendarNames()),
		"default", conf.Default,
	)

	if err := runShell(manager, os.Stdin, os.Stdout); err != nil {
		appLog.Error("shell terminated", err)
		os.Exit(1)
	}
	appLog.Info("civcal exiting")
}

// bootstrap creates the configured calendars and selects the default one.
func bootstrap(conf *config.Config) (*calendar.Manager, error) {
	manager := calendar.NewManager()
	for _, cc := range conf.Calendars {
		if err := manager.CreateCalendar(cc.Name, cc.Timezone); err != nil {
			return nil, err
		}
	}
	if conf.Default != "" {
		if err := manager.UseCalendar(conf.Default); err != nil {
			return nil, err
		}
	}
	return manager, nil
}

func parseFlags() flagConfig {
	var cfg flagConfig
	flag.StringVar(&cfg.configPath, "config", "civcal.yaml", "Path to config file")
	flag.BoolVar(&cfg.verbose, "verbose", false, "Enable debug logging")
	flag.Parse()
	return cfg
}

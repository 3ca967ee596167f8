package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type StorageConfig struct {
	LogFile    string `mapstructure:"log_file"`    // default ~/.local/share/moodmate/moodmate_log.json
	BackupFile string `mapstructure:"backup_file"` // default next to the log
	ExportDir  string `mapstructure:"export_dir"`  // default <log dir>/moodmate_exports
	MaxEntries int    `mapstructure:"max_entries"`
}

type TimerConfig struct {
	WorkMinutes  int  `mapstructure:"work_minutes"`
	BreakMinutes int  `mapstructure:"break_minutes"`
	Cycles       int  `mapstructure:"cycles"`
	Notify       bool `mapstructure:"notify"`
}

type MoodConfig struct {
	Catalog     string `mapstructure:"catalog"` // optional YAML file replacing the built-in catalog
	Suggestions int    `mapstructure:"suggestions"`
}

type ReminderConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	Time     string   `mapstructure:"time"`     // "20:00"
	Workdays []string `mapstructure:"workdays"` // ["Mon","Tue",...]
	Holidays []string `mapstructure:"holidays"` // ["2025-12-25"]
	Timezone string   `mapstructure:"timezone"` // e.g. "Europe/Berlin" (optional)
}

type Config struct {
	Theme    string         `mapstructure:"theme"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Timer    TimerConfig    `mapstructure:"timer"`
	Mood     MoodConfig     `mapstructure:"mood"`
	Reminder ReminderConfig `mapstructure:"reminder"`
}

func Default() Config {
	return Config{
		Theme: "default",
		Storage: StorageConfig{
			MaxEntries: 1000,
		},
		Timer: TimerConfig{
			WorkMinutes:  25,
			BreakMinutes: 5,
			Cycles:       4,
			Notify:       true,
		},
		Mood: MoodConfig{
			Suggestions: 5,
		},
		Reminder: ReminderConfig{
			Enabled:  false,
			Time:     "20:00",
			Workdays: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
			Holidays: []string{},
		},
	}
}

// ConfigPath is ~/.config/moodmate/config.yaml.
func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "moodmate", "config.yaml"), nil
}

// DataDir is where the mood log lives unless configured otherwise.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "moodmate"), nil
}

// Load reads the user config file; a missing file yields the defaults.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

// LoadFile reads config from path with MOODMATE_* environment overrides
// (MOODMATE_STORAGE_LOG_FILE, MOODMATE_TIMER_WORK_MINUTES, ...).
func LoadFile(path string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	v.SetEnvPrefix("MOODMATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("storage.log_file", cfg.Storage.LogFile)
	v.SetDefault("storage.backup_file", cfg.Storage.BackupFile)
	v.SetDefault("storage.export_dir", cfg.Storage.ExportDir)
	v.SetDefault("storage.max_entries", cfg.Storage.MaxEntries)
	v.SetDefault("timer.work_minutes", cfg.Timer.WorkMinutes)
	v.SetDefault("timer.break_minutes", cfg.Timer.BreakMinutes)
	v.SetDefault("timer.cycles", cfg.Timer.Cycles)
	v.SetDefault("timer.notify", cfg.Timer.Notify)
	v.SetDefault("mood.catalog", cfg.Mood.Catalog)
	v.SetDefault("mood.suggestions", cfg.Mood.Suggestions)
	v.SetDefault("reminder.enabled", cfg.Reminder.Enabled)
	v.SetDefault("reminder.time", cfg.Reminder.Time)
	v.SetDefault("reminder.workdays", cfg.Reminder.Workdays)
	v.SetDefault("reminder.holidays", cfg.Reminder.Holidays)
	v.SetDefault("reminder.timezone", cfg.Reminder.Timezone)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}

	cfg.Reminder.Workdays = normalizeWorkdays(cfg.Reminder.Workdays)
	if cfg.Storage.MaxEntries <= 0 {
		cfg.Storage.MaxEntries = Default().Storage.MaxEntries
	}
	return cfg, nil
}

func normalizeWorkdays(days []string) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		d = strings.ToLower(strings.TrimSpace(d))
		if len(d) < 3 {
			continue
		}
		out = append(out, strings.ToUpper(d[:1])+d[1:3])
	}
	return out
}

// Resolve fills in storage paths. override, when set, replaces the log file;
// an empty backup file or export dir is placed next to the log.
func (s StorageConfig) Resolve(override string) (StorageConfig, error) {
	if override != "" {
		s.LogFile = override
	}
	if s.LogFile == "" {
		dir, err := DataDir()
		if err != nil {
			return s, err
		}
		s.LogFile = filepath.Join(dir, "moodmate_log.json")
	}
	var err error
	if s.LogFile, err = expandHome(s.LogFile); err != nil {
		return s, err
	}
	dir := filepath.Dir(s.LogFile)
	if s.BackupFile == "" {
		s.BackupFile = filepath.Join(dir, "moodmate_backup.json")
	}
	if s.ExportDir == "" {
		s.ExportDir = filepath.Join(dir, "moodmate_exports")
	}
	if s.BackupFile, err = expandHome(s.BackupFile); err != nil {
		return s, err
	}
	if s.ExportDir, err = expandHome(s.ExportDir); err != nil {
		return s, err
	}
	return s, nil
}

func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}

func (c Config) Location() *time.Location {
	if tz := strings.TrimSpace(c.Reminder.Timezone); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.Local
}

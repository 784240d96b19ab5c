package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tempo-sh/tempo/internal/config"
	"github.com/tempo-sh/tempo/internal/ics"
	"github.com/tempo-sh/tempo/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  tempo config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(cfg)

	// Ask if user wants to edit
	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing. Feeds and calendars are structured tables and
	// stay file-edited.
	reader := bufio.NewReader(os.Stdin)

	cfg.Grid.DayStart = promptValue(reader, "Grid day start", cfg.Grid.DayStart)
	cfg.Grid.DayEnd = promptValue(reader, "Grid day end", cfg.Grid.DayEnd)
	cfg.Storage.DBPath = promptValue(reader, "Database path", cfg.Storage.DBPath)
	cfg.Refresh.Schedule = promptValue(reader, "Feed refresh schedule (cron)", cfg.Refresh.Schedule)
	cfg.UI.Theme = promptTheme(reader, cfg.UI.Theme)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[grid]")
	fmt.Printf("  day_start = %s\n", cfg.Grid.DayStart)
	fmt.Printf("  day_end   = %s\n", cfg.Grid.DayEnd)
	fmt.Println("\n[storage]")
	fmt.Printf("  db_path   = %s\n", cfg.Storage.DBPath)
	fmt.Println("\n[refresh]")
	fmt.Printf("  schedule  = %s\n", cfg.Refresh.Schedule)
	fmt.Println("\n[ui]")
	fmt.Printf("  theme     = %s\n", cfg.UI.Theme)
	if len(cfg.Feeds) > 0 {
		fmt.Println("\n[[feeds]]")
		for _, f := range cfg.Feeds {
			fmt.Printf("  %s/%s  %s\n", f.AccountID, f.CalendarID, ics.RedactURL(f.URL))
		}
	}
	if len(cfg.Calendars) > 0 {
		fmt.Println("\n[[calendars]]")
		for _, c := range cfg.Calendars {
			flags := ""
			if c.Writable {
				flags += " writable"
			}
			if c.Default {
				flags += " default"
			}
			fmt.Printf("  %s/%s  %s%s\n", c.AccountID, c.CalendarID, c.Summary, flags)
		}
	}
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptTheme(reader *bufio.Reader, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Printf("  Invalid theme %q. Available: %s\n", value, options)
	}
}

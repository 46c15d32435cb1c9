package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/xvierd/pomodoro-timer/internal/adapters/storage"
	"github.com/xvierd/pomodoro-timer/internal/domain"
	"github.com/xvierd/pomodoro-timer/internal/ports"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View and change the timer settings",
	Long: `View and change the persisted timer settings: work and break minutes,
the daily goal, auto-start, the notification mode and background noise.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd.Context(), app.store)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printSettingsJSON(cmd.OutOrStdout(), settings)
		}
		printSettings(cmd.OutOrStdout(), settings)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting. Keys may be abbreviated when the abbreviation
matches a single key, for example "goal" for goal_pomodoros.

Keys: ` + strings.Join(domain.SettingKeys, ", "),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setSetting(cmd.Context(), cmd.OutOrStdout(), app.store, args[0], args[1])
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return resetSettings(cmd.Context(), cmd.OutOrStdout(), app.store)
	},
}

var settingsExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the settings as YAML",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd.Context(), app.store)
		if err != nil {
			return err
		}
		data, err := exportSettings(settings)
		if err != nil {
			return err
		}
		if len(args) == 0 {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(args[0], data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Settings exported to %s\n", args[0])
		return nil
	},
}

var settingsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the settings from a YAML file",
	Long: `Replace the settings from a YAML file written by "settings export".
Missing or invalid fields keep their default value.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		settings, substituted, err := importSettings(data)
		if err != nil {
			return err
		}
		if len(substituted) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "Using defaults for: %s\n", strings.Join(substituted, ", "))
		}
		if err := app.store.Save(cmd.Context(), settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		printSettings(cmd.OutOrStdout(), settings)
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	settingsCmd.AddCommand(settingsExportCmd)
	settingsCmd.AddCommand(settingsImportCmd)
}

// loadSettings returns the stored settings or the defaults if none are stored.
func loadSettings(ctx context.Context, store ports.SettingsStore) (domain.Settings, error) {
	stored, err := store.Load(ctx)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	if stored == nil {
		return domain.DefaultSettings(), nil
	}
	return *stored, nil
}

// ErrAmbiguousKey is returned when a key abbreviation matches several keys.
var ErrAmbiguousKey = errors.New("ambiguous setting key")

// resolveSettingKey maps user input to a setting key. Exact keys win,
// otherwise the input must fuzzy-match exactly one key.
func resolveSettingKey(input string) (string, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if slices.Contains(domain.SettingKeys, input) {
		return input, nil
	}

	matches := fuzzy.Find(input, domain.SettingKeys)
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w %q (valid keys: %s)", domain.ErrUnknownSettingKey, input, strings.Join(domain.SettingKeys, ", "))
	case 1:
		return matches[0].Str, nil
	default:
		candidates := make([]string, len(matches))
		for i, m := range matches {
			candidates[i] = m.Str
		}
		return "", fmt.Errorf("%w %q: did you mean %s?", ErrAmbiguousKey, input, strings.Join(candidates, " or "))
	}
}

func resetSettings(ctx context.Context, out io.Writer, store *storage.SettingsStore) error {
	err := store.Clear(ctx)
	switch {
	case errors.Is(err, domain.ErrSettingsNotFound):
		fmt.Fprintln(out, "Settings are already the defaults.")
		return nil
	case err != nil:
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	fmt.Fprintln(out, "Settings reset to defaults.")
	return nil
}

func setSetting(ctx context.Context, out io.Writer, store ports.SettingsStore, input, value string) error {
	key, err := resolveSettingKey(input)
	if err != nil {
		return err
	}

	settings, err := loadSettings(ctx, store)
	if err != nil {
		return err
	}
	if err := settings.Set(key, value); err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := store.Save(ctx, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	current, _ := settings.Get(key)
	fmt.Fprintf(out, "%s = %s\n", key, current)
	return nil
}

func printSettings(out io.Writer, settings domain.Settings) {
	for _, key := range domain.SettingKeys {
		value, _ := settings.Get(key)
		fmt.Fprintf(out, "%-24s %s\n", key, value)
	}
}

func printSettingsJSON(out io.Writer, settings domain.Settings) error {
	data, err := json.MarshalIndent(settings.Record(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}

func exportSettings(settings domain.Settings) ([]byte, error) {
	data, err := yaml.Marshal(settings.Record())
	if err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	return data, nil
}

// importSettings decodes a YAML settings record. Fields that are missing or
// invalid take their default and are reported in substituted.
func importSettings(data []byte) (domain.Settings, []string, error) {
	var record domain.SettingsRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		return domain.Settings{}, nil, fmt.Errorf("%w: %w", domain.ErrInvalidSettings, err)
	}
	settings, substituted := record.Settings()
	return settings, substituted, nil
}

package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/trebuchet-org/minion/internal/domain/config"
	"github.com/trebuchet-org/minion/internal/usecase"
)

// ConfigRenderer renders config-related output
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{
		out: out,
	}
}

// getRelativePath returns the relative path from current directory
func getRelativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}

	relPath, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}

	return relPath
}

// RenderConfig renders the configuration display
func (r *ConfigRenderer) RenderConfig(result *usecase.ShowConfigResult) error {
	if !result.Exists {
		fmt.Fprintln(r.out, FormatWarning("No .minion/config.local.json file found, using flags and environment only"))
	} else {
		fmt.Fprintln(r.out, sectionHeaderStyle.Sprint("Local config"))
	}

	rows := make([][2]string, 0, len(config.ValidConfigKeys()))
	effective := map[config.ConfigKey]string{
		config.ConfigKeyFrom:   result.EffectiveFrom,
		config.ConfigKeyStore:  result.EffectiveStore,
		config.ConfigKeyFormat: result.EffectiveFormat,
	}
	for _, key := range config.ValidConfigKeys() {
		value := result.Config.Get(key)
		if value == "" {
			value = labelStyle.Sprint("(not set)")
		}
		if eff := effective[key]; eff != "" && eff != result.Config.Get(key) {
			value = fmt.Sprintf("%s %s", value, labelStyle.Sprintf("(effective: %s)", eff))
		}
		rows = append(rows, [2]string{string(key), value})
	}
	fmt.Fprintln(r.out, keyValue(rows))

	if result.Exists {
		fmt.Fprintf(r.out, "\nconfig file: %s\n", getRelativePath(result.ConfigPath))
	}
	return nil
}

// RenderSet renders the result of setting a configuration value
func (r *ConfigRenderer) RenderSet(result *usecase.SetConfigResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Set %s to %s", result.Key, result.Value)))
	fmt.Fprintf(r.out, "config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}

// RenderRemove renders the result of removing a configuration value
func (r *ConfigRenderer) RenderRemove(result *usecase.RemoveConfigResult) error {
	if result.RemovedValue == "" {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%s was not set", result.Key)))
	} else {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Removed %s (was %s)", result.Key, result.RemovedValue)))
	}
	fmt.Fprintf(r.out, "config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}

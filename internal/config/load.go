package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FileFlagName is the special flag naming the config file itself,
// excluded from the bind-every-pflag-into-viper pass the same way
// cmd/topolvm-controller/app/root.go excludes its own configName flag.
const FileFlagName = "config"

// Load reads configFile (if present) through viper, binds every other
// flag in fs so CLI flags override the file, and decodes the merged
// view into a Settings, starting from Default(). Absence of the file
// is not an error, matching loadConfigFileIntoFlagSet's behavior.
func Load(configFile string, fs *pflag.FlagSet) (Settings, error) {
	v := viper.New()

	var bindErrs []error
	if fs != nil {
		fs.VisitAll(func(f *pflag.Flag) {
			if f.Name == FileFlagName {
				return
			}
			if err := v.BindPFlag(f.Name, f); err != nil {
				bindErrs = append(bindErrs, err)
			}
		})
	}
	if len(bindErrs) > 0 {
		return Settings{}, errors.Join(bindErrs...)
	}

	v.AddConfigPath("/etc/storagecore")
	v.AddConfigPath(".")

	if configFile != "" {
		parts := strings.Split(configFile, ".")
		name := strings.Join(parts[:len(parts)-1], ".")
		fileType := parts[len(parts)-1]
		v.SetConfigName(name)
		v.SetConfigType(fileType)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("fatal error config file: %w", err)
		}
	}

	settings := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.TextUnmarshallerHookFunc(),
		Result:     &settings,
	})
	if err != nil {
		return Settings{}, err
	}
	if err := decoder.Decode(v.AllSettings()); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

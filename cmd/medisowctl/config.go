package main

import (
	"strings"
	"time"

	"github.com/medisow/medisowadmin/internal/app/bootstrap"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// viperValues adapts viper to bootstrap.Values.
type viperValues struct{ v *viper.Viper }

func (vv viperValues) String(key string) string { return vv.v.GetString(key) }
func (vv viperValues) Int(key string) int       { return vv.v.GetInt(key) }
func (vv viperValues) Bool(key string) bool     { return vv.v.GetBool(key) }

func (vv viperValues) Duration(key string, def time.Duration) time.Duration {
	d, err := cast.ToDurationE(vv.v.Get(key))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// newViper reads the same keys as the server: MEDISOW_* environment
// variables over an optional config file over the defaults.
func newViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	for _, k := range bootstrap.Keys() {
		v.SetDefault(k.Name, k.Default)
	}
	v.SetEnvPrefix(bootstrap.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func loadAppConfig(configFile string) (bootstrap.AppConfig, error) {
	v, err := newViper(configFile)
	if err != nil {
		return bootstrap.AppConfig{}, err
	}
	return bootstrap.AppConfigFrom(viperValues{v}), nil
}

package api

import (
	"regexp"
	"strings"
	"time"

	"github.com/JITENDRA0811/impetus9-backend/logging"
	"github.com/spf13/viper"
)

type Config struct {
	StorageConfig
	ServerConfig
	EventsConfig
	CaptchaConfig
	RateLimitConfig
	UploadsConfig
	CoordinatorConfig
}

type StorageConfig struct {
	TableNameRegistrations string
	TableNameGuards        string
	TableNameExportLocks   string
	DeviceIndexName        string
}

type ServerConfig struct {
	Port           int
	FrontendOrigin string
}

type EventsConfig struct {
	OpenEvents []string
}

type CaptchaConfig struct {
	CaptchaEnabled bool
	CaptchaSecret  string
}

type RateLimitConfig struct {
	MaxRequests int
	Window      time.Duration
}

type UploadsConfig struct {
	UploadDir string
}

// CoordinatorConfig holds the per-event export passkeys, resolved once
// at startup from PASSKEY_<EVENTKEY> environment variables.
type CoordinatorConfig struct {
	Passkeys map[string]string
}

var eventKeyNonAlnum = regexp.MustCompile(`[^A-Z0-9]`)

// EventKey turns an event name into its environment-variable key, e.g.
// "Robo Wars" -> ROBOWARS.
func EventKey(eventName string) string {
	return eventKeyNonAlnum.ReplaceAllString(strings.ToUpper(eventName), "")
}

func ReadConfig() *Config {
	openEvents := viper.GetStringSlice("events.open")

	passkeys := make(map[string]string, len(openEvents))
	for _, event := range openEvents {
		key := "PASSKEY_" + EventKey(event)
		if v := viper.GetString(key); v != "" {
			passkeys[event] = v
		} else {
			logging.Log.Warnf("no coordinator passkey configured for event %q (%s)", event, key)
		}
	}

	conf := &Config{
		StorageConfig: StorageConfig{
			TableNameRegistrations: viper.GetString("storage.TableNameRegistrations"),
			TableNameGuards:        viper.GetString("storage.TableNameGuards"),
			TableNameExportLocks:   viper.GetString("storage.TableNameExportLocks"),
			DeviceIndexName:        viper.GetString("storage.DeviceIndexName"),
		},
		ServerConfig: ServerConfig{
			Port:           viper.GetInt("server.port"),
			FrontendOrigin: getStringOrDefault("server.frontendOrigin", "http://localhost:3000"),
		},
		EventsConfig: EventsConfig{
			OpenEvents: openEvents,
		},
		CaptchaConfig: CaptchaConfig{
			CaptchaEnabled: getBoolOrDefault("captcha.enabled", true),
			CaptchaSecret:  viper.GetString("HCAPTCHA_SECRET"),
		},
		RateLimitConfig: RateLimitConfig{
			MaxRequests: getIntOrDefault("ratelimit.maxRequests", 10),
			Window:      time.Duration(getIntOrDefault("ratelimit.windowMinutes", 15)) * time.Minute,
		},
		UploadsConfig: UploadsConfig{
			UploadDir: getStringOrDefault("uploads.dir", "uploads"),
		},
		CoordinatorConfig: CoordinatorConfig{
			Passkeys: passkeys,
		},
	}

	return conf
}

func getIntOrDefault(name string, def int) int {
	if viper.IsSet(name) {
		return viper.GetInt(name)
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getBoolOrDefault(name string, def bool) bool {
	if viper.IsSet(name) {
		return viper.GetBool(name)
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getStringOrDefault(name string, def string) string {
	if viper.IsSet(name) {
		return viper.GetString(name)
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

package config

import (
	"context"

	"github.com/sethvargo/go-envconfig"
)

type BotConfig struct {
	// ConfigPath points at the persisted JSON config document.
	ConfigPath string `env:"ELYSIUM_CONFIG_PATH, default=config.json"`

	// FFmpegPath is the ffmpeg binary used for audio transcoding.
	FFmpegPath string `env:"FFMPEG_PATH, default=ffmpeg"`

	// TokenRefreshCron is the cadence for checking the Twitch app
	// token expiry. Standard cron syntax.
	TokenRefreshCron string `env:"TWITCH_TOKEN_REFRESH_CRON, default=@hourly"`
}

func NewBotConfigFromEnv() (*BotConfig, error) {
	var cfg BotConfig
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

package datalayer

// Document is the persisted bot configuration. It mirrors the on-disk
// config.json layout: three flat sections, no deeper structure.
type Document struct {
	Bot        BotSection        `json:"bot"`
	Moderation ModerationSection `json:"moderation"`
	Twitch     TwitchSection     `json:"twitch"`
}

type BotSection struct {
	DevID              string `json:"dev_id"`
	StreamManagerID    string `json:"stream_manager_id"`
	PublicLogChannel   string `json:"public_log_channel"`
	PrivateLogChannel  string `json:"private_log_channel"`
	SuggestionsChannel string `json:"suggestions_channel"`
}

type ModerationSection struct {
	ModChannel string   `json:"mod_channel"`
	ModRole    string   `json:"mod_role"`
	BlockWords []string `json:"block_words"`
}

type TwitchSection struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	AccessToken  string `json:"access_token"`
	// ExpireDate is a unix timestamp. The app token is refreshed once
	// the current time passes it.
	ExpireDate int64 `json:"expire_date"`
	// ChannelID is where live notifications are announced.
	ChannelID string   `json:"channel_id"`
	LiveMsg   string   `json:"live_msg"`
	Watchlist []string `json:"watchlist"`
}

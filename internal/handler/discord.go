package handler

import (
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"
)

type ReadyHandler = func(*discordgo.Session, *discordgo.Ready)
type InteractionCreateHandler = func(*discordgo.Session, *discordgo.InteractionCreate)
type MessageCreateHandler = func(*discordgo.Session, *discordgo.MessageCreate)

var ReadyLog = func(s *discordgo.Session, r *discordgo.Ready) {
	username := r.User.Username
	userID := r.User.ID
	slog.Info("Bot is ready", "username", username, "userID", userID)
}

type Handlers struct {
	Ready             ReadyHandler
	InteractionCreate InteractionCreateHandler
	MessageCreate     MessageCreateHandler
}

func NewSession(token string, handlers Handlers) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}

	// Voice state and member tracking need the full intent set; message
	// screening needs message content on top.
	s.Identify.Intents = discordgo.IntentsAll

	s.AddHandler(handlers.Ready)
	s.AddHandler(handlers.InteractionCreate)
	if handlers.MessageCreate != nil {
		s.AddHandler(handlers.MessageCreate)
	}

	return s, nil
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Content: content}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		slog.Error("Failed to respond to interaction", "error", err)
	}
}

func respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		slog.Error("Failed to respond to interaction", "error", err)
	}
}

// respondDeferred acknowledges the interaction so a slow operation can
// reply later with a follow-up message.
func respondDeferred(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
}

func followUp(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
	})
	if err != nil {
		slog.Error("Failed to send follow-up message", "error", err)
	}
}

// ChannelAnnouncer posts live notifications through the bot session. Role
// mentions in the notification message must ping, so they are explicitly
// allowed.
type ChannelAnnouncer struct {
	Session *discordgo.Session
}

func (a *ChannelAnnouncer) Announce(channelID, content string, embed *discordgo.MessageEmbed) error {
	_, err := a.Session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: content,
		Embed:   embed,
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{
				discordgo.AllowedMentionTypeRoles,
				discordgo.AllowedMentionTypeEveryone,
				discordgo.AllowedMentionTypeUsers,
			},
		},
	})
	return err
}

// ChannelNotifier delivers playback updates to whichever text channel the
// guild's last music command came from.
type ChannelNotifier struct {
	mu        sync.Mutex
	session   *discordgo.Session
	channelID string
}

func (n *ChannelNotifier) SetTarget(s *discordgo.Session, channelID string) {
	n.mu.Lock()
	n.session = s
	n.channelID = channelID
	n.mu.Unlock()
}

func (n *ChannelNotifier) Notify(text string) {
	n.mu.Lock()
	s, channelID := n.session, n.channelID
	n.mu.Unlock()
	if s == nil || channelID == "" {
		return
	}
	if _, err := s.ChannelMessageSend(channelID, text); err != nil {
		slog.Error("Failed to send playback update", "channelID", channelID, "error", err)
	}
}

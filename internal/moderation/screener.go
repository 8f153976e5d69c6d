package moderation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/elysium-discord/elysium-bot/internal/datalayer"
	"github.com/elysium-discord/elysium-bot/internal/presenters"
)

// Screener watches guild messages and removes those containing blocked
// words, alerting the configured moderation channel. The word list is read
// from the config document on every message so edits take effect without a
// restart.
type Screener struct {
	store datalayer.Store

	mu     sync.Mutex
	filter *Filter
	key    string
}

func NewScreener(store datalayer.Store) *Screener {
	return &Screener{store: store}
}

// HandleMessage is a discordgo MessageCreate handler.
func (sc *Screener) HandleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID || m.Author.Bot {
		return
	}

	doc, err := sc.store.Load(context.Background())
	if err != nil {
		slog.Error("failed to load moderation config", "error", err)
		return
	}

	mod := doc.Moderation
	if mod.ModChannel == "" || len(mod.BlockWords) == 0 {
		return
	}

	word, ok := sc.filterFor(mod.BlockWords).Match(m.Content)
	if !ok {
		return
	}

	if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
		slog.Warn("failed to delete flagged message",
			"channel_id", m.ChannelID, "message_id", m.ID, "error", err)
	}

	reason := fmt.Sprintf("%s said -> ||%s||", m.Author.Username, word)
	embed := presenters.AlertEmbed(fmt.Sprintf("<#%s>", m.ChannelID), reason, mod.ModRole, time.Now())
	if _, err := s.ChannelMessageSendEmbed(mod.ModChannel, embed); err != nil {
		slog.Error("failed to send moderation alert", "channel_id", mod.ModChannel, "error", err)
	}
}

// filterFor returns a filter for the given word list, recompiling only when
// the list changed since the last message.
func (sc *Screener) filterFor(words []string) *Filter {
	key := strings.Join(words, "\x00")

	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.filter == nil || sc.key != key {
		sc.filter = NewFilter(words)
		sc.key = key
	}
	return sc.filter
}

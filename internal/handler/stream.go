package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/elysium-discord/elysium-bot/internal/util"
)

func (b *Bot) handleWatchlist(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	if !b.authorized(ctx, interactionUserID(i)) {
		respond(s, i, notAuthorizedMessage, true)
		return
	}

	options := i.ApplicationCommandData().Options
	action := optionString(options, "action")
	streamer := optionString(options, "streamer")

	switch action {
	case "add":
		reply, _ := b.repo.FollowStreamer(ctx, streamer)
		respond(s, i, reply, true)
	case "remove":
		reply, _ := b.repo.UnfollowStreamer(ctx, streamer)
		respond(s, i, reply, true)
	case "show":
		watchlist, err := b.repo.Watchlist(ctx)
		if err != nil {
			respond(s, i, "An error occurred while reading the watchlist.", true)
			return
		}
		if len(watchlist) == 0 {
			respond(s, i, "The watchlist is empty.", true)
			return
		}
		respond(s, i, fmt.Sprintf("**Watchlist:**\n%s", strings.Join(watchlist, "\n")), true)
	default:
		respond(s, i, "Unknown watchlist action.", true)
	}
}

func (b *Bot) handleSetLiveChannel(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	if !b.authorized(ctx, interactionUserID(i)) {
		respond(s, i, notAuthorizedMessage, true)
		return
	}

	channelID, err := util.ParseChannelRef(optionString(i.ApplicationCommandData().Options, "channel"))
	if err != nil {
		respond(s, i, "Please provide a valid channel mention or id.", true)
		return
	}

	if err := b.repo.SetLiveChannel(ctx, channelID); err != nil {
		respond(s, i, "An error occurred while changing the channel.", true)
		return
	}
	respond(s, i, fmt.Sprintf("Live notifications will now be sent to <#%s>.", channelID), true)
}

func (b *Bot) handleSetLiveMessage(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	if !b.authorized(ctx, interactionUserID(i)) {
		respond(s, i, notAuthorizedMessage, true)
		return
	}

	options := i.ApplicationCommandData().Options
	reply, _ := b.repo.SetLiveMessage(ctx, optionString(options, "message"), optionString(options, "mention"))
	respond(s, i, reply, true)
}

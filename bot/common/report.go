package common

import (
	"github.com/bwmarrin/discordgo"

	"rolepanel/apperr"
	"rolepanel/notify"
)

// ReportError pushes infrastructure failures to the operator
// notification queue with interaction context. Business-rule errors
// the user already saw are not reported. Never blocks the caller.
func ReportError(notifier *notify.Notifier, i *discordgo.InteractionCreate, source string, err error) {
	if err == nil {
		return
	}

	appErr := apperr.From(err)
	switch appErr.Code {
	case apperr.CodeDatabase, apperr.CodeDiscord, apperr.CodeInternal:
	default:
		return
	}

	notification := notify.NewNotification(notify.SeverityError, "Interaction failed", err.Error()).
		WithField("Source", source).
		WithField("Kind", interactionKind(i))
	if guildID, perr := ParseSnowflake(i.GuildID); perr == nil {
		notification.WithGuild(guildID)
	}
	if i.Member != nil && i.Member.User != nil {
		if userID, perr := ParseSnowflake(i.Member.User.ID); perr == nil {
			notification.WithUser(userID)
		}
	}
	notifier.Notify(notification)
}

func interactionKind(i *discordgo.InteractionCreate) string {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		return "command"
	case discordgo.InteractionApplicationCommandAutocomplete:
		return "autocomplete"
	case discordgo.InteractionMessageComponent:
		return "component"
	case discordgo.InteractionModalSubmit:
		return "modal"
	default:
		return "unknown"
	}
}

package bot

import (
	"strconv"

	"github.com/bwmarrin/discordgo"

	"rolepanel/service"
)

// sessionAdapter exposes the gateway session through the narrow
// interface the services consume, converting between int64 IDs and
// Discord's string snowflakes at the edge.
type sessionAdapter struct {
	session *discordgo.Session
}

// NewSessionAdapter wraps an opened session as a service.Discord
func NewSessionAdapter(session *discordgo.Session) service.Discord {
	return &sessionAdapter{session: session}
}

func snowflake(id int64) string {
	return strconv.FormatInt(id, 10)
}

func (a *sessionAdapter) BotUserID() int64 {
	id, err := strconv.ParseInt(a.session.State.User.ID, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func (a *sessionAdapter) GuildRoles(guildID int64) ([]*discordgo.Role, error) {
	return a.session.GuildRoles(snowflake(guildID))
}

func (a *sessionAdapter) GuildMember(guildID, userID int64) (*discordgo.Member, error) {
	return a.session.GuildMember(snowflake(guildID), snowflake(userID))
}

func (a *sessionAdapter) GuildMemberRoleAdd(guildID, userID, roleID int64) error {
	return a.session.GuildMemberRoleAdd(snowflake(guildID), snowflake(userID), snowflake(roleID))
}

func (a *sessionAdapter) GuildMemberRoleRemove(guildID, userID, roleID int64) error {
	return a.session.GuildMemberRoleRemove(snowflake(guildID), snowflake(userID), snowflake(roleID))
}

func (a *sessionAdapter) GuildChannels(guildID int64) ([]*discordgo.Channel, error) {
	return a.session.GuildChannels(snowflake(guildID))
}

func (a *sessionAdapter) ChannelMessageSendComplex(channelID int64, data *discordgo.MessageSend) (*discordgo.Message, error) {
	return a.session.ChannelMessageSendComplex(snowflake(channelID), data)
}

func (a *sessionAdapter) ChannelMessageEditComplex(channelID, messageID int64, embeds []*discordgo.MessageEmbed, components []discordgo.MessageComponent) (*discordgo.Message, error) {
	return a.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    snowflake(channelID),
		ID:         snowflake(messageID),
		Embeds:     &embeds,
		Components: &components,
	})
}

func (a *sessionAdapter) ChannelMessageDelete(channelID, messageID int64) error {
	return a.session.ChannelMessageDelete(snowflake(channelID), snowflake(messageID))
}

package common

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// ParseSnowflake converts a Discord snowflake string to int64
func ParseSnowflake(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// FormatSnowflake converts an int64 ID back to Discord's string form
func FormatSnowflake(id int64) string {
	return strconv.FormatInt(id, 10)
}

// customEmojiPattern matches custom emoji tokens like <:name:id> and
// animated ones like <a:name:id>.
var customEmojiPattern = regexp.MustCompile(`^<(a?):([A-Za-z0-9_~]+):(\d+)>$`)

// ParseEmoji turns an emoji token into a component emoji. Custom emoji
// tokens carry a name and ID; anything else is treated as a unicode
// emoji.
func ParseEmoji(token string) *discordgo.ComponentEmoji {
	if token == "" {
		return nil
	}
	if m := customEmojiPattern.FindStringSubmatch(token); m != nil {
		return &discordgo.ComponentEmoji{
			Animated: m[1] == "a",
			Name:     m[2],
			ID:       m[3],
		}
	}
	return &discordgo.ComponentEmoji{Name: token}
}

// RoleMention renders a role mention for embed text
func RoleMention(roleID int64) string {
	return fmt.Sprintf("<@&%d>", roleID)
}

// UserMention renders a user mention for embed text
func UserMention(userID int64) string {
	return fmt.Sprintf("<@%d>", userID)
}

// ChannelMention renders a channel mention for embed text
func ChannelMention(channelID int64) string {
	return fmt.Sprintf("<#%d>", channelID)
}

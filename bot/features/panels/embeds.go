package panels

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"rolepanel/bot/common"
	"rolepanel/models"
	"rolepanel/service"
)

const embedBlurple = 0x5865F2

// maxFieldValueLength is Discord's embed field value limit.
const maxFieldValueLength = 1024

// BuildEditEmbed renders the wizard's home view for one panel.
func BuildEditEmbed(panel *models.Panel, roles []*models.PanelRole) *discordgo.MessageEmbed {
	var info []string

	if panel.Description != nil && *panel.Description != "" {
		info = append(info, "**Description**\n"+*panel.Description)
	} else {
		info = append(info, "**Description**\n*not set*")
	}
	info = append(info, "**Style**\n"+panel.Style.DisplayName())
	info = append(info, fmt.Sprintf("**Color**\n`#%06X`", panel.Color))

	status := "Draft"
	if panel.IsPosted() {
		status = "Posted in " + common.ChannelMention(*panel.ChannelID)
	}
	info = append(info, "**Status**\n"+status)

	var roleLines []string
	if len(roles) == 0 {
		roleLines = append(roleLines, "*No roles yet*\nUse the Add Role button to add some.")
	} else {
		for i, role := range roles {
			emoji := ""
			if role.Emoji != nil {
				emoji = " " + *role.Emoji
			}
			roleLines = append(roleLines, fmt.Sprintf("%d. **%s**%s\n   %s",
				i+1, role.Label, emoji, common.RoleMention(role.RoleID)))
		}
	}

	return &discordgo.MessageEmbed{
		Title:       panel.Name,
		Description: strings.Join(info, "\n\n"),
		Color:       int(panel.Color),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  fmt.Sprintf("Roles (%d/%d)", len(roles), service.MaxRolesPerPanel),
				Value: joinRoleLines(roleLines),
			},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Use the buttons below to edit and post"},
	}
}

// joinRoleLines joins the role list for the editor's field value.
// Long labels can push 25 entries past the field limit, in which case
// the tail collapses into a count so the render still goes through.
func joinRoleLines(lines []string) string {
	joined := strings.Join(lines, "\n")
	if len(joined) <= maxFieldValueLength {
		return joined
	}

	var sb strings.Builder
	for i, line := range lines {
		overflow := fmt.Sprintf("\n*...and %d more*", len(lines)-i)
		if sb.Len()+len(line)+1+len(overflow) > maxFieldValueLength {
			sb.WriteString(overflow)
			break
		}
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(line)
	}
	return sb.String()
}

// BuildPanelEmbed renders the public panel message members interact
// with.
func BuildPanelEmbed(panel *models.Panel, roles []*models.PanelRole) *discordgo.MessageEmbed {
	var description string
	if panel.Description != nil {
		description = *panel.Description
	}

	if len(roles) > 0 {
		if description != "" {
			description += "\n\n"
		}
		description += "**Available Roles:**\n"
		for _, role := range roles {
			if role.Emoji != nil && *role.Emoji != "" {
				description += fmt.Sprintf("- %s %s\n", *role.Emoji, role.Label)
			} else {
				description += fmt.Sprintf("- %s\n", role.Label)
			}
		}
	}

	return &discordgo.MessageEmbed{
		Title:       panel.Name,
		Description: description,
		Color:       int(panel.Color),
	}
}

// BuildListEmbed renders the /panel list overview.
func BuildListEmbed(panels []*models.Panel, roleCounts []int64) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:  "Role Panels",
		Color:  embedBlurple,
		Footer: &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("%d panels total", len(panels))},
	}

	if len(panels) == 0 {
		embed.Description = "No panels yet.\n\nCreate one with `/panel create`."
		return embed
	}

	var sb strings.Builder
	for i, panel := range panels {
		status := "Draft"
		if panel.IsPosted() {
			status = common.ChannelMention(*panel.ChannelID)
		}
		var count int64
		if i < len(roleCounts) {
			count = roleCounts[i]
		}
		fmt.Fprintf(&sb, "**%d. %s**\nStatus: %s / Roles: %d\n\n", i+1, panel.Name, status, count)
	}
	embed.Description = sb.String()
	return embed
}

// BuildConfigEmbed renders the /config show view.
func BuildConfigEmbed(config *models.GuildConfig) *discordgo.MessageEmbed {
	auditValue := "Not set\nConfigure with `/config audit-channel`."
	if config != nil && config.AuditChannelID != nil {
		auditValue = common.ChannelMention(*config.AuditChannelID) + "\nRole changes are recorded there."
	}

	return &discordgo.MessageEmbed{
		Title: "Server Settings",
		Color: embedBlurple,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Audit log channel", Value: auditValue},
		},
	}
}

package service

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"rolepanel/apperr"
	"rolepanel/models"
)

// roleService implements the RoleService interface
type roleService struct {
	panelRepo     PanelRepository
	panelRoleRepo PanelRoleRepository
	discord       Discord
	audit         AuditLogger
}

// NewRoleService creates a new role service
func NewRoleService(panelRepo PanelRepository, panelRoleRepo PanelRoleRepository, discord Discord, audit AuditLogger) RoleService {
	return &roleService{
		panelRepo:     panelRepo,
		panelRoleRepo: panelRoleRepo,
		discord:       discord,
		audit:         audit,
	}
}

// guildRoleIndex fetches the guild's roles and indexes them by ID.
func (s *roleService) guildRoleIndex(guildID int64) (map[int64]*discordgo.Role, error) {
	roles, err := s.discord.GuildRoles(guildID)
	if err != nil {
		return nil, apperr.Discord(err)
	}

	index := make(map[int64]*discordgo.Role, len(roles))
	for _, role := range roles {
		id, err := snowflakeToInt64(role.ID)
		if err != nil {
			continue
		}
		index[id] = role
	}
	return index, nil
}

// botTopPosition returns the highest position among the bot's own
// roles. The bot can only manage roles strictly below it.
func (s *roleService) botTopPosition(guildID int64, index map[int64]*discordgo.Role) (int, error) {
	bot, err := s.discord.GuildMember(guildID, s.discord.BotUserID())
	if err != nil {
		return 0, apperr.Discord(err)
	}

	top := 0
	for _, raw := range bot.Roles {
		id, err := snowflakeToInt64(raw)
		if err != nil {
			continue
		}
		if role, ok := index[id]; ok && role.Position > top {
			top = role.Position
		}
	}
	return top, nil
}

// validateManageable checks that a role can be granted or revoked by
// the bot. Conditions are re-checked on every call because the guild's
// role layout can change at any time.
func validateManageable(guildID, roleID int64, index map[int64]*discordgo.Role, botTop int) error {
	role, ok := index[roleID]
	if !ok {
		return apperr.NotFound("Role")
	}
	if roleID == guildID {
		return apperr.Permission("The @everyone role cannot be assigned.")
	}
	if role.Managed {
		return apperr.Permission(fmt.Sprintf("The role %q is managed by an integration and cannot be assigned.", role.Name))
	}
	if role.Position >= botTop {
		return apperr.Permission(fmt.Sprintf("The role %q is above my highest role. Move my role up in the server settings.", role.Name))
	}
	return nil
}

// memberRoleSet parses a member's role list into a lookup set.
func memberRoleSet(member *discordgo.Member) map[int64]bool {
	set := make(map[int64]bool, len(member.Roles))
	for _, raw := range member.Roles {
		id, err := snowflakeToInt64(raw)
		if err != nil {
			continue
		}
		set[id] = true
	}
	return set
}

// Toggle grants the role if the member lacks it, revokes it otherwise
func (s *roleService) Toggle(ctx context.Context, panelID uuid.UUID, guildID, userID, roleID int64) (bool, string, error) {
	panel, err := s.panelRepo.FindByID(ctx, panelID)
	if err != nil {
		return false, "", apperr.Database(err)
	}
	if panel == nil || panel.GuildID != guildID {
		return false, "", apperr.NotFound("Panel")
	}

	entry, err := s.panelRoleRepo.FindByPanelAndRole(ctx, panelID, roleID)
	if err != nil {
		return false, "", apperr.Database(err)
	}
	if entry == nil {
		return false, "", apperr.NotFound("Role")
	}

	index, err := s.guildRoleIndex(guildID)
	if err != nil {
		return false, "", err
	}
	botTop, err := s.botTopPosition(guildID, index)
	if err != nil {
		return false, "", err
	}
	if err := validateManageable(guildID, roleID, index, botTop); err != nil {
		return false, "", err
	}

	member, err := s.discord.GuildMember(guildID, userID)
	if err != nil {
		return false, "", apperr.Discord(err)
	}

	change := models.RoleChange{RoleID: roleID, Label: entry.Label}

	if memberRoleSet(member)[roleID] {
		if err := s.discord.GuildMemberRoleRemove(guildID, userID, roleID); err != nil {
			return false, "", apperr.Discord(err)
		}
		s.audit.LogRoleRemoved(ctx, guildID, userID, panel, change)
		return false, entry.Label, nil
	}

	if err := s.discord.GuildMemberRoleAdd(guildID, userID, roleID); err != nil {
		return false, "", apperr.Discord(err)
	}
	s.audit.LogRoleAdded(ctx, guildID, userID, panel, change)
	return true, entry.Label, nil
}

// Sync reconciles the member's roles with the selected set. Additions
// run before removals so a member never drops to zero panel roles mid
// way through a reshuffle. A role that fails validation or the Discord
// call is skipped and the rest of the batch continues.
func (s *roleService) Sync(ctx context.Context, panelID uuid.UUID, guildID, userID int64, selected []int64) (*SyncResult, error) {
	panel, err := s.panelRepo.FindByID(ctx, panelID)
	if err != nil {
		return nil, apperr.Database(err)
	}
	if panel == nil || panel.GuildID != guildID {
		return nil, apperr.NotFound("Panel")
	}

	panelRoles, err := s.panelRoleRepo.ListByPanel(ctx, panelID)
	if err != nil {
		return nil, apperr.Database(err)
	}

	labels := make(map[int64]string, len(panelRoles))
	for _, pr := range panelRoles {
		labels[pr.RoleID] = pr.Label
	}

	// Selections outside the panel are ignored. They can appear when a
	// role is removed from the panel between render and submit.
	selectedSet := make(map[int64]bool, len(selected))
	for _, id := range selected {
		if _, ok := labels[id]; ok {
			selectedSet[id] = true
		}
	}

	index, err := s.guildRoleIndex(guildID)
	if err != nil {
		return nil, err
	}
	botTop, err := s.botTopPosition(guildID, index)
	if err != nil {
		return nil, err
	}

	member, err := s.discord.GuildMember(guildID, userID)
	if err != nil {
		return nil, apperr.Discord(err)
	}
	memberSet := memberRoleSet(member)

	result := &SyncResult{}

	apply := func(roleID int64, grant bool) bool {
		if err := validateManageable(guildID, roleID, index, botTop); err != nil {
			log.WithFields(log.Fields{
				"panel_id": panelID,
				"role_id":  roleID,
				"user_id":  userID,
				"error":    err,
			}).Warn("Skipping unmanageable role during sync")
			return false
		}
		var err error
		if grant {
			err = s.discord.GuildMemberRoleAdd(guildID, userID, roleID)
		} else {
			err = s.discord.GuildMemberRoleRemove(guildID, userID, roleID)
		}
		if err != nil {
			log.WithFields(log.Fields{
				"panel_id": panelID,
				"role_id":  roleID,
				"user_id":  userID,
				"grant":    grant,
				"error":    err,
			}).Warn("Role change failed during sync")
			return false
		}
		return true
	}

	for _, pr := range panelRoles {
		if !selectedSet[pr.RoleID] || memberSet[pr.RoleID] {
			continue
		}
		change := models.RoleChange{RoleID: pr.RoleID, Label: pr.Label}
		if apply(pr.RoleID, true) {
			result.Added = append(result.Added, change)
		} else {
			result.Skipped = append(result.Skipped, change)
		}
	}

	for _, pr := range panelRoles {
		if selectedSet[pr.RoleID] || !memberSet[pr.RoleID] {
			continue
		}
		change := models.RoleChange{RoleID: pr.RoleID, Label: pr.Label}
		if apply(pr.RoleID, false) {
			result.Removed = append(result.Removed, change)
		} else {
			result.Skipped = append(result.Skipped, change)
		}
	}

	s.audit.LogSync(ctx, guildID, userID, panel, result)
	return result, nil
}

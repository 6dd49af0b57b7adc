package roles

import (
	"context"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"rolepanel/apperr"
	"rolepanel/bot/common"
	"rolepanel/notify"
	"rolepanel/service"
)

// Feature handles end-user role self-assignment on posted panels
type Feature struct {
	roleService service.RoleService
	notifier    *notify.Notifier
	selections  *selectionStore
}

// NewFeature creates a new roles feature instance
func NewFeature(roleService service.RoleService, notifier *notify.Notifier) *Feature {
	return &Feature{
		roleService: roleService,
		notifier:    notifier,
		selections:  newSelectionStore(),
	}
}

// StartCleanup runs periodic eviction of stale pending selections
// until the stop channel closes.
func (f *Feature) StartCleanup(stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				f.selections.cleanup()
			case <-stop:
				return
			}
		}
	}()
}

func (f *Feature) fail(s *discordgo.Session, i *discordgo.InteractionCreate, source string, err error) {
	log.WithFields(log.Fields{
		"source": source,
		"error":  err,
	}).Error("Role interaction failed")
	common.RespondWithAppError(s, i, err)
	common.ReportError(f.notifier, i, source, err)
}

// HandleComponent processes `role:` component interactions from
// posted panels.
func (f *Feature) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	parsed, err := ParseRoleCustomID(i.MessageComponentData().CustomID)
	if err != nil {
		f.fail(s, i, "role component", err)
		return
	}

	switch parsed.Action {
	case ActionToggle:
		f.handleToggle(s, i, parsed)
	case ActionSelect:
		f.handleSelect(s, i)
	case ActionConfirm:
		f.handleConfirm(s, i, parsed)
	}
}

func (f *Feature) handleToggle(s *discordgo.Session, i *discordgo.InteractionCreate, parsed *RoleCustomID) {
	ctx := context.Background()

	guildID, userID, err := interactionIDs(i)
	if err != nil {
		f.fail(s, i, "role toggle", err)
		return
	}

	added, label, err := f.roleService.Toggle(ctx, parsed.PanelID, guildID, userID, parsed.RoleID)
	if err != nil {
		f.fail(s, i, "role toggle", err)
		return
	}

	var message string
	if added {
		message = "Added the **" + label + "** role."
	} else {
		message = "Removed the **" + label + "** role."
	}
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Error responding to role toggle: %v", err)
	}
}

// handleSelect stores the submitted selection until the member clicks
// Confirm. The confirm click arrives as a separate interaction that
// cannot see the menu state.
func (f *Feature) handleSelect(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Member == nil || i.Member.User == nil {
		f.fail(s, i, "role select", apperr.InvalidInput("This action only works in a server."))
		return
	}

	values := i.MessageComponentData().Values
	roleIDs := make([]int64, 0, len(values))
	for _, value := range values {
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			continue
		}
		roleIDs = append(roleIDs, id)
	}

	f.selections.put(i.Message.ID, i.Member.User.ID, roleIDs)

	if err := common.DeferUpdate(s, i); err != nil {
		log.Errorf("Error acknowledging role selection: %v", err)
	}
}

func (f *Feature) handleConfirm(s *discordgo.Session, i *discordgo.InteractionCreate, parsed *RoleCustomID) {
	ctx := context.Background()

	guildID, userID, err := interactionIDs(i)
	if err != nil {
		f.fail(s, i, "role confirm", err)
		return
	}

	selected, ok := f.selections.take(i.Message.ID, i.Member.User.ID)
	if !ok {
		common.RespondWithError(s, i, "Your selection expired. Please pick your roles again and confirm.")
		return
	}

	result, err := f.roleService.Sync(ctx, parsed.PanelID, guildID, userID, selected)
	if err != nil {
		f.fail(s, i, "role confirm", err)
		return
	}

	if err := common.RespondWithSuccess(s, i, formatSyncResult(result), true); err != nil {
		log.Errorf("Error responding to role confirm: %v", err)
	}
}

func formatSyncResult(result *service.SyncResult) string {
	if !result.Changed() {
		return "Your roles are already up to date."
	}

	message := "Roles updated."
	if len(result.Added) > 0 {
		message += " Added:"
		for _, change := range result.Added {
			message += " **" + change.Label + "**"
		}
		message += "."
	}
	if len(result.Removed) > 0 {
		message += " Removed:"
		for _, change := range result.Removed {
			message += " **" + change.Label + "**"
		}
		message += "."
	}
	if len(result.Skipped) > 0 {
		message += " Some roles could not be changed."
	}
	return message
}

func interactionIDs(i *discordgo.InteractionCreate) (guildID, userID int64, err error) {
	if i.Member == nil || i.Member.User == nil {
		return 0, 0, apperr.InvalidInput("This action only works in a server.")
	}
	guildID, err = common.ParseSnowflake(i.GuildID)
	if err != nil {
		return 0, 0, apperr.InvalidInput("This action only works in a server.")
	}
	userID, err = common.ParseSnowflake(i.Member.User.ID)
	if err != nil {
		return 0, 0, apperr.Internal("malformed user ID: " + i.Member.User.ID)
	}
	return guildID, userID, nil
}

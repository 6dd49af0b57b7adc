package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rolepanel/models"
)

func TestAuditService_NoChannelConfigured(t *testing.T) {
	ctx := context.Background()

	mockConfigRepo := new(MockGuildConfigRepository)
	mockDiscord := new(MockDiscord)
	audit := NewAuditService(mockConfigRepo, mockDiscord)

	mockConfigRepo.On("FindByGuild", ctx, int64(100)).Return(nil, nil)

	audit.LogRoleAdded(ctx, 100, 200, &models.Panel{Name: "Colors"}, models.RoleChange{RoleID: 42, Label: "Blue"})

	mockDiscord.AssertNotCalled(t, "ChannelMessageSendComplex")
}

func TestAuditService_LogRoleAdded(t *testing.T) {
	ctx := context.Background()

	mockConfigRepo := new(MockGuildConfigRepository)
	mockDiscord := new(MockDiscord)
	audit := NewAuditService(mockConfigRepo, mockDiscord)

	channelID := int64(555)
	mockConfigRepo.On("FindByGuild", ctx, int64(100)).Return(&models.GuildConfig{
		GuildID: 100, AuditChannelID: &channelID,
	}, nil)

	mockDiscord.On("ChannelMessageSendComplex", int64(555), mock.MatchedBy(func(m *discordgo.MessageSend) bool {
		if len(m.Embeds) != 1 {
			return false
		}
		embed := m.Embeds[0]
		return embed.Title == "Role Added" && embed.Color == colorRoleAdded
	})).Return(&discordgo.Message{}, nil)

	audit.LogRoleAdded(ctx, 100, 200, &models.Panel{Name: "Colors"}, models.RoleChange{RoleID: 42, Label: "Blue"})

	mockDiscord.AssertExpectations(t)
}

func TestAuditService_LogSync_FieldsPerOutcome(t *testing.T) {
	ctx := context.Background()

	mockConfigRepo := new(MockGuildConfigRepository)
	mockDiscord := new(MockDiscord)
	audit := NewAuditService(mockConfigRepo, mockDiscord)

	channelID := int64(555)
	mockConfigRepo.On("FindByGuild", ctx, int64(100)).Return(&models.GuildConfig{
		GuildID: 100, AuditChannelID: &channelID,
	}, nil)

	mockDiscord.On("ChannelMessageSendComplex", int64(555), mock.MatchedBy(func(m *discordgo.MessageSend) bool {
		embed := m.Embeds[0]
		if embed.Title != "Roles Synced" || embed.Color != colorRoleSync {
			return false
		}
		// Member, Panel, Added, Removed. No Skipped field when nothing
		// was skipped.
		return len(embed.Fields) == 4
	})).Return(&discordgo.Message{}, nil)

	audit.LogSync(ctx, 100, 200, &models.Panel{ID: uuid.New(), Name: "Colors"}, &SyncResult{
		Added:   []models.RoleChange{{RoleID: 42, Label: "Blue"}},
		Removed: []models.RoleChange{{RoleID: 41, Label: "Red"}},
	})

	mockDiscord.AssertExpectations(t)
}

func TestAuditService_LogSync_EmptyResultIsNoOp(t *testing.T) {
	ctx := context.Background()

	mockConfigRepo := new(MockGuildConfigRepository)
	mockDiscord := new(MockDiscord)
	audit := NewAuditService(mockConfigRepo, mockDiscord)

	audit.LogSync(ctx, 100, 200, &models.Panel{Name: "Colors"}, &SyncResult{})

	mockConfigRepo.AssertNotCalled(t, "FindByGuild")
	mockDiscord.AssertNotCalled(t, "ChannelMessageSendComplex")
}

func TestAuditService_DeliveryFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()

	mockConfigRepo := new(MockGuildConfigRepository)
	mockDiscord := new(MockDiscord)
	audit := NewAuditService(mockConfigRepo, mockDiscord)

	channelID := int64(555)
	mockConfigRepo.On("FindByGuild", ctx, int64(100)).Return(&models.GuildConfig{
		GuildID: 100, AuditChannelID: &channelID,
	}, nil)
	mockDiscord.On("ChannelMessageSendComplex", int64(555), mock.Anything).Return(nil, errors.New("channel deleted"))

	assert.NotPanics(t, func() {
		audit.LogRoleRemoved(ctx, 100, 200, &models.Panel{Name: "Colors"}, models.RoleChange{RoleID: 42, Label: "Blue"})
	})
}

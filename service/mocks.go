package service

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rolepanel/models"
)

// MockPanelRepository is a mock implementation of PanelRepository
type MockPanelRepository struct {
	mock.Mock
}

func (m *MockPanelRepository) Create(ctx context.Context, guildID int64, name string, description *string) (*models.Panel, error) {
	args := m.Called(ctx, guildID, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Panel), args.Error(1)
}

func (m *MockPanelRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Panel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Panel), args.Error(1)
}

func (m *MockPanelRepository) FindByGuildAndName(ctx context.Context, guildID int64, name string) (*models.Panel, error) {
	args := m.Called(ctx, guildID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Panel), args.Error(1)
}

func (m *MockPanelRepository) FindByMessageID(ctx context.Context, messageID int64) (*models.Panel, error) {
	args := m.Called(ctx, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Panel), args.Error(1)
}

func (m *MockPanelRepository) ListByGuild(ctx context.Context, guildID int64) ([]*models.Panel, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Panel), args.Error(1)
}

func (m *MockPanelRepository) Update(ctx context.Context, id uuid.UUID, update *models.PanelUpdate) (*models.Panel, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Panel), args.Error(1)
}

func (m *MockPanelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPanelRepository) ExistsByGuildAndName(ctx context.Context, guildID int64, name string) (bool, error) {
	args := m.Called(ctx, guildID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockPanelRepository) SearchByNamePrefix(ctx context.Context, guildID int64, prefix string, limit int) ([]string, error) {
	args := m.Called(ctx, guildID, prefix, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockPanelRoleRepository is a mock implementation of PanelRoleRepository
type MockPanelRoleRepository struct {
	mock.Mock
}

func (m *MockPanelRoleRepository) Create(ctx context.Context, panelID uuid.UUID, roleID int64, label string, emoji, description *string, position int32) (*models.PanelRole, error) {
	args := m.Called(ctx, panelID, roleID, label, emoji, description, position)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PanelRole), args.Error(1)
}

func (m *MockPanelRoleRepository) FindByPanelAndRole(ctx context.Context, panelID uuid.UUID, roleID int64) (*models.PanelRole, error) {
	args := m.Called(ctx, panelID, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PanelRole), args.Error(1)
}

func (m *MockPanelRoleRepository) ListByPanel(ctx context.Context, panelID uuid.UUID) ([]*models.PanelRole, error) {
	args := m.Called(ctx, panelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PanelRole), args.Error(1)
}

func (m *MockPanelRoleRepository) CountByPanel(ctx context.Context, panelID uuid.UUID) (int64, error) {
	args := m.Called(ctx, panelID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPanelRoleRepository) GetMaxPosition(ctx context.Context, panelID uuid.UUID) (int32, error) {
	args := m.Called(ctx, panelID)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockPanelRoleRepository) DeleteByPanelAndRole(ctx context.Context, panelID uuid.UUID, roleID int64) error {
	args := m.Called(ctx, panelID, roleID)
	return args.Error(0)
}

// MockGuildConfigRepository is a mock implementation of GuildConfigRepository
type MockGuildConfigRepository struct {
	mock.Mock
}

func (m *MockGuildConfigRepository) FindByGuild(ctx context.Context, guildID int64) (*models.GuildConfig, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GuildConfig), args.Error(1)
}

func (m *MockGuildConfigRepository) SetAuditChannel(ctx context.Context, guildID int64, channelID *int64) (*models.GuildConfig, error) {
	args := m.Called(ctx, guildID, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GuildConfig), args.Error(1)
}

// MockDiscord is a mock implementation of Discord
type MockDiscord struct {
	mock.Mock
}

func (m *MockDiscord) BotUserID() int64 {
	args := m.Called()
	return args.Get(0).(int64)
}

func (m *MockDiscord) GuildRoles(guildID int64) ([]*discordgo.Role, error) {
	args := m.Called(guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*discordgo.Role), args.Error(1)
}

func (m *MockDiscord) GuildMember(guildID, userID int64) (*discordgo.Member, error) {
	args := m.Called(guildID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Member), args.Error(1)
}

func (m *MockDiscord) GuildMemberRoleAdd(guildID, userID, roleID int64) error {
	args := m.Called(guildID, userID, roleID)
	return args.Error(0)
}

func (m *MockDiscord) GuildMemberRoleRemove(guildID, userID, roleID int64) error {
	args := m.Called(guildID, userID, roleID)
	return args.Error(0)
}

func (m *MockDiscord) GuildChannels(guildID int64) ([]*discordgo.Channel, error) {
	args := m.Called(guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*discordgo.Channel), args.Error(1)
}

func (m *MockDiscord) ChannelMessageSendComplex(channelID int64, data *discordgo.MessageSend) (*discordgo.Message, error) {
	args := m.Called(channelID, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Message), args.Error(1)
}

func (m *MockDiscord) ChannelMessageEditComplex(channelID, messageID int64, embeds []*discordgo.MessageEmbed, components []discordgo.MessageComponent) (*discordgo.Message, error) {
	args := m.Called(channelID, messageID, embeds, components)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Message), args.Error(1)
}

func (m *MockDiscord) ChannelMessageDelete(channelID, messageID int64) error {
	args := m.Called(channelID, messageID)
	return args.Error(0)
}

// MockAuditLogger is a mock implementation of AuditLogger
type MockAuditLogger struct {
	mock.Mock
}

func (m *MockAuditLogger) LogRoleAdded(ctx context.Context, guildID, userID int64, panel *models.Panel, change models.RoleChange) {
	m.Called(ctx, guildID, userID, panel, change)
}

func (m *MockAuditLogger) LogRoleRemoved(ctx context.Context, guildID, userID int64, panel *models.Panel, change models.RoleChange) {
	m.Called(ctx, guildID, userID, panel, change)
}

func (m *MockAuditLogger) LogSync(ctx context.Context, guildID, userID int64, panel *models.Panel, result *SyncResult) {
	m.Called(ctx, guildID, userID, panel, result)
}

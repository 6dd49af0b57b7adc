package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rolepanel/apperr"
	"rolepanel/models"
)

const (
	testGuildID = int64(100)
	testUserID  = int64(200)
	testBotID   = int64(300)
)

// setupGuild configures a mock Discord with a guild whose role layout
// puts the bot's role at position 10.
func setupGuild(mockDiscord *MockDiscord, memberRoles ...string) {
	mockDiscord.On("BotUserID").Return(testBotID)
	mockDiscord.On("GuildRoles", testGuildID).Return([]*discordgo.Role{
		{ID: "100", Position: 0},                 // @everyone
		{ID: "900", Position: 10},                // bot role
		{ID: "41", Name: "Red", Position: 3},
		{ID: "42", Name: "Blue", Position: 4},
		{ID: "43", Name: "Bots", Position: 5, Managed: true},
		{ID: "44", Name: "Admin", Position: 20},
	}, nil)
	mockDiscord.On("GuildMember", testGuildID, testBotID).Return(&discordgo.Member{
		Roles: []string{"900"},
	}, nil)
	mockDiscord.On("GuildMember", testGuildID, testUserID).Return(&discordgo.Member{
		Roles: memberRoles,
	}, nil)
}

func TestRoleService_Toggle_Grants(t *testing.T) {
	ctx := context.Background()

	mockPanelRepo := new(MockPanelRepository)
	mockRoleRepo := new(MockPanelRoleRepository)
	mockDiscord := new(MockDiscord)
	mockAudit := new(MockAuditLogger)

	service := NewRoleService(mockPanelRepo, mockRoleRepo, mockDiscord, mockAudit)

	panelID := uuid.New()
	panel := &models.Panel{ID: panelID, GuildID: testGuildID, Name: "Colors"}

	mockPanelRepo.On("FindByID", ctx, panelID).Return(panel, nil)
	mockRoleRepo.On("FindByPanelAndRole", ctx, panelID, int64(42)).Return(&models.PanelRole{RoleID: 42, Label: "Blue"}, nil)
	setupGuild(mockDiscord)
	mockDiscord.On("GuildMemberRoleAdd", testGuildID, testUserID, int64(42)).Return(nil)
	mockAudit.On("LogRoleAdded", ctx, testGuildID, testUserID, panel, models.RoleChange{RoleID: 42, Label: "Blue"}).Return()

	added, label, err := service.Toggle(ctx, panelID, testGuildID, testUserID, 42)

	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, "Blue", label)
	mockDiscord.AssertExpectations(t)
	mockAudit.AssertExpectations(t)
}

func TestRoleService_Toggle_Revokes(t *testing.T) {
	ctx := context.Background()

	mockPanelRepo := new(MockPanelRepository)
	mockRoleRepo := new(MockPanelRoleRepository)
	mockDiscord := new(MockDiscord)
	mockAudit := new(MockAuditLogger)

	service := NewRoleService(mockPanelRepo, mockRoleRepo, mockDiscord, mockAudit)

	panelID := uuid.New()
	panel := &models.Panel{ID: panelID, GuildID: testGuildID, Name: "Colors"}

	mockPanelRepo.On("FindByID", ctx, panelID).Return(panel, nil)
	mockRoleRepo.On("FindByPanelAndRole", ctx, panelID, int64(42)).Return(&models.PanelRole{RoleID: 42, Label: "Blue"}, nil)
	setupGuild(mockDiscord, "42")
	mockDiscord.On("GuildMemberRoleRemove", testGuildID, testUserID, int64(42)).Return(nil)
	mockAudit.On("LogRoleRemoved", ctx, testGuildID, testUserID, panel, models.RoleChange{RoleID: 42, Label: "Blue"}).Return()

	added, label, err := service.Toggle(ctx, panelID, testGuildID, testUserID, 42)

	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, "Blue", label)
	mockAudit.AssertExpectations(t)
}

func TestRoleService_Toggle_RoleNotOnPanel(t *testing.T) {
	ctx := context.Background()

	mockPanelRepo := new(MockPanelRepository)
	mockRoleRepo := new(MockPanelRoleRepository)
	service := NewRoleService(mockPanelRepo, mockRoleRepo, new(MockDiscord), new(MockAuditLogger))

	panelID := uuid.New()
	mockPanelRepo.On("FindByID", ctx, panelID).Return(&models.Panel{ID: panelID, GuildID: testGuildID}, nil)
	mockRoleRepo.On("FindByPanelAndRole", ctx, panelID, int64(42)).Return(nil, nil)

	_, _, err := service.Toggle(ctx, panelID, testGuildID, testUserID, 42)

	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestRoleService_Toggle_ManagedRoleRejected(t *testing.T) {
	ctx := context.Background()

	mockPanelRepo := new(MockPanelRepository)
	mockRoleRepo := new(MockPanelRoleRepository)
	mockDiscord := new(MockDiscord)
	service := NewRoleService(mockPanelRepo, mockRoleRepo, mockDiscord, new(MockAuditLogger))

	panelID := uuid.New()
	mockPanelRepo.On("FindByID", ctx, panelID).Return(&models.Panel{ID: panelID, GuildID: testGuildID}, nil)
	mockRoleRepo.On("FindByPanelAndRole", ctx, panelID, int64(43)).Return(&models.PanelRole{RoleID: 43, Label: "Bots"}, nil)
	setupGuild(mockDiscord)

	_, _, err := service.Toggle(ctx, panelID, testGuildID, testUserID, 43)

	assert.True(t, apperr.IsCode(err, apperr.CodePermission))
	mockDiscord.AssertNotCalled(t, "GuildMemberRoleAdd")
}

func TestRoleService_Toggle_RoleAboveBotRejected(t *testing.T) {
	ctx := context.Background()

	mockPanelRepo := new(MockPanelRepository)
	mockRoleRepo := new(MockPanelRoleRepository)
	mockDiscord := new(MockDiscord)
	service := NewRoleService(mockPanelRepo, mockRoleRepo, mockDiscord, new(MockAuditLogger))

	panelID := uuid.New()
	mockPanelRepo.On("FindByID", ctx, panelID).Return(&models.Panel{ID: panelID, GuildID: testGuildID}, nil)
	mockRoleRepo.On("FindByPanelAndRole", ctx, panelID, int64(44)).Return(&models.PanelRole{RoleID: 44, Label: "Admin"}, nil)
	setupGuild(mockDiscord)

	_, _, err := service.Toggle(ctx, panelID, testGuildID, testUserID, 44)

	assert.True(t, apperr.IsCode(err, apperr.CodePermission))
}

func TestRoleService_Toggle_EveryoneRejected(t *testing.T) {
	ctx := context.Background()

	mockPanelRepo := new(MockPanelRepository)
	mockRoleRepo := new(MockPanelRoleRepository)
	mockDiscord := new(MockDiscord)
	service := NewRoleService(mockPanelRepo, mockRoleRepo, mockDiscord, new(MockAuditLogger))

	panelID := uuid.New()
	mockPanelRepo.On("FindByID", ctx, panelID).Return(&models.Panel{ID: panelID, GuildID: testGuildID}, nil)
	mockRoleRepo.On("FindByPanelAndRole", ctx, panelID, testGuildID).Return(&models.PanelRole{RoleID: testGuildID, Label: "everyone"}, nil)
	setupGuild(mockDiscord)

	_, _, err := service.Toggle(ctx, panelID, testGuildID, testUserID, testGuildID)

	assert.True(t, apperr.IsCode(err, apperr.CodePermission))
}

func TestRoleService_Sync_AddsBeforeRemoving(t *testing.T) {
	ctx := context.Background()

	mockPanelRepo := new(MockPanelRepository)
	mockRoleRepo := new(MockPanelRoleRepository)
	mockDiscord := new(MockDiscord)
	mockAudit := new(MockAuditLogger)

	service := NewRoleService(mockPanelRepo, mockRoleRepo, mockDiscord, mockAudit)

	panelID := uuid.New()
	panel := &models.Panel{ID: panelID, GuildID: testGuildID, Name: "Colors"}

	mockPanelRepo.On("FindByID", ctx, panelID).Return(panel, nil)
	mockRoleRepo.On("ListByPanel", ctx, panelID).Return([]*models.PanelRole{
		{RoleID: 41, Label: "Red"},
		{RoleID: 42, Label: "Blue"},
	}, nil)
	// Member holds Red, selects only Blue.
	setupGuild(mockDiscord, "41")

	var order []string
	mockDiscord.On("GuildMemberRoleAdd", testGuildID, testUserID, int64(42)).
		Run(func(args mock.Arguments) { order = append(order, "add") }).Return(nil)
	mockDiscord.On("GuildMemberRoleRemove", testGuildID, testUserID, int64(41)).
		Run(func(args mock.Arguments) { order = append(order, "remove") }).Return(nil)
	mockAudit.On("LogSync", ctx, testGuildID, testUserID, panel, mock.Anything).Return()

	result, err := service.Sync(ctx, panelID, testGuildID, testUserID, []int64{42})

	require.NoError(t, err)
	assert.Equal(t, []string{"add", "remove"}, order)
	assert.Equal(t, []models.RoleChange{{RoleID: 42, Label: "Blue"}}, result.Added)
	assert.Equal(t, []models.RoleChange{{RoleID: 41, Label: "Red"}}, result.Removed)
	assert.Empty(t, result.Skipped)
	mockAudit.AssertExpectations(t)
}

func TestRoleService_Sync_Idempotent(t *testing.T) {
	ctx := context.Background()

	mockPanelRepo := new(MockPanelRepository)
	mockRoleRepo := new(MockPanelRoleRepository)
	mockDiscord := new(MockDiscord)
	mockAudit := new(MockAuditLogger)

	service := NewRoleService(mockPanelRepo, mockRoleRepo, mockDiscord, mockAudit)

	panelID := uuid.New()
	panel := &models.Panel{ID: panelID, GuildID: testGuildID, Name: "Colors"}

	mockPanelRepo.On("FindByID", ctx, panelID).Return(panel, nil)
	mockRoleRepo.On("ListByPanel", ctx, panelID).Return([]*models.PanelRole{
		{RoleID: 42, Label: "Blue"},
	}, nil)
	// Member already holds the only selection.
	setupGuild(mockDiscord, "42")
	mockAudit.On("LogSync", ctx, testGuildID, testUserID, panel, mock.Anything).Return()

	result, err := service.Sync(ctx, panelID, testGuildID, testUserID, []int64{42})

	require.NoError(t, err)
	assert.False(t, result.Changed())
	mockDiscord.AssertNotCalled(t, "GuildMemberRoleAdd")
	mockDiscord.AssertNotCalled(t, "GuildMemberRoleRemove")
	mockAudit.AssertExpectations(t)
}

func TestRoleService_Sync_SkipsFailedRole(t *testing.T) {
	ctx := context.Background()

	mockPanelRepo := new(MockPanelRepository)
	mockRoleRepo := new(MockPanelRoleRepository)
	mockDiscord := new(MockDiscord)
	mockAudit := new(MockAuditLogger)

	service := NewRoleService(mockPanelRepo, mockRoleRepo, mockDiscord, mockAudit)

	panelID := uuid.New()
	panel := &models.Panel{ID: panelID, GuildID: testGuildID, Name: "Colors"}

	mockPanelRepo.On("FindByID", ctx, panelID).Return(panel, nil)
	mockRoleRepo.On("ListByPanel", ctx, panelID).Return([]*models.PanelRole{
		{RoleID: 41, Label: "Red"},
		{RoleID: 42, Label: "Blue"},
		{RoleID: 44, Label: "Admin"},
	}, nil)
	setupGuild(mockDiscord)

	mockDiscord.On("GuildMemberRoleAdd", testGuildID, testUserID, int64(41)).Return(errors.New("missing permissions"))
	mockDiscord.On("GuildMemberRoleAdd", testGuildID, testUserID, int64(42)).Return(nil)
	mockAudit.On("LogSync", ctx, testGuildID, testUserID, panel, mock.Anything).Return()

	// Admin sits above the bot's role, Red fails at the API. Blue still
	// lands.
	result, err := service.Sync(ctx, panelID, testGuildID, testUserID, []int64{41, 42, 44})

	require.NoError(t, err)
	assert.Equal(t, []models.RoleChange{{RoleID: 42, Label: "Blue"}}, result.Added)
	assert.Len(t, result.Skipped, 2)
}

func TestRoleService_Sync_EmptySelectionRemovesAll(t *testing.T) {
	ctx := context.Background()

	mockPanelRepo := new(MockPanelRepository)
	mockRoleRepo := new(MockPanelRoleRepository)
	mockDiscord := new(MockDiscord)
	mockAudit := new(MockAuditLogger)

	service := NewRoleService(mockPanelRepo, mockRoleRepo, mockDiscord, mockAudit)

	panelID := uuid.New()
	panel := &models.Panel{ID: panelID, GuildID: testGuildID, Name: "Colors"}

	mockPanelRepo.On("FindByID", ctx, panelID).Return(panel, nil)
	mockRoleRepo.On("ListByPanel", ctx, panelID).Return([]*models.PanelRole{
		{RoleID: 41, Label: "Red"},
		{RoleID: 42, Label: "Blue"},
	}, nil)
	// Member holds both panel roles and deselects everything.
	setupGuild(mockDiscord, "41", "42")

	mockDiscord.On("GuildMemberRoleRemove", testGuildID, testUserID, int64(41)).Return(nil)
	mockDiscord.On("GuildMemberRoleRemove", testGuildID, testUserID, int64(42)).Return(nil)
	mockAudit.On("LogSync", ctx, testGuildID, testUserID, panel, mock.Anything).Return()

	result, err := service.Sync(ctx, panelID, testGuildID, testUserID, []int64{})

	require.NoError(t, err)
	assert.Empty(t, result.Added)
	assert.Equal(t, []models.RoleChange{{RoleID: 41, Label: "Red"}, {RoleID: 42, Label: "Blue"}}, result.Removed)
	mockDiscord.AssertNotCalled(t, "GuildMemberRoleAdd")
	mockAudit.AssertNumberOfCalls(t, "LogSync", 1)
}

func TestRoleService_Sync_IgnoresSelectionOutsidePanel(t *testing.T) {
	ctx := context.Background()

	mockPanelRepo := new(MockPanelRepository)
	mockRoleRepo := new(MockPanelRoleRepository)
	mockDiscord := new(MockDiscord)
	mockAudit := new(MockAuditLogger)

	service := NewRoleService(mockPanelRepo, mockRoleRepo, mockDiscord, mockAudit)

	panelID := uuid.New()
	panel := &models.Panel{ID: panelID, GuildID: testGuildID, Name: "Colors"}

	mockPanelRepo.On("FindByID", ctx, panelID).Return(panel, nil)
	mockRoleRepo.On("ListByPanel", ctx, panelID).Return([]*models.PanelRole{
		{RoleID: 42, Label: "Blue"},
	}, nil)
	setupGuild(mockDiscord)
	mockDiscord.On("GuildMemberRoleAdd", testGuildID, testUserID, int64(42)).Return(nil)
	mockAudit.On("LogSync", ctx, testGuildID, testUserID, panel, mock.Anything).Return()

	result, err := service.Sync(ctx, panelID, testGuildID, testUserID, []int64{42, 999})

	require.NoError(t, err)
	assert.Equal(t, []models.RoleChange{{RoleID: 42, Label: "Blue"}}, result.Added)
	mockDiscord.AssertNotCalled(t, "GuildMemberRoleAdd", testGuildID, testUserID, int64(999))
}

package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rolepanel/models"
	"rolepanel/repository/testutil"
)

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func TestPanelRepository_CreateAndFind(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPanelRepository(testDB.DB)
	ctx := context.Background()

	t.Run("create sets defaults", func(t *testing.T) {
		panel, err := repo.Create(ctx, 100, "Colors", strPtr("Pick a color"))
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, panel.ID)
		assert.Equal(t, int64(100), panel.GuildID)
		assert.Equal(t, "Colors", panel.Name)
		assert.Equal(t, models.PanelStyleButton, panel.Style)
		assert.Nil(t, panel.ChannelID)
		assert.Nil(t, panel.MessageID)

		found, err := repo.FindByID(ctx, panel.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, panel.ID, found.ID)
	})

	t.Run("find missing panel returns nil", func(t *testing.T) {
		found, err := repo.FindByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("duplicate name in guild fails", func(t *testing.T) {
		_, err := repo.Create(ctx, 100, "Colors", nil)
		assert.Error(t, err)
	})

	t.Run("same name in another guild succeeds", func(t *testing.T) {
		_, err := repo.Create(ctx, 200, "Colors", nil)
		assert.NoError(t, err)
	})

	t.Run("exists by guild and name", func(t *testing.T) {
		exists, err := repo.ExistsByGuildAndName(ctx, 100, "Colors")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByGuildAndName(ctx, 100, "Nope")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestPanelRepository_Update(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPanelRepository(testDB.DB)
	ctx := context.Background()

	panel, err := repo.Create(ctx, 100, "Games", nil)
	require.NoError(t, err)

	t.Run("partial update leaves other fields", func(t *testing.T) {
		style := models.PanelStyleSelectMenu
		updated, err := repo.Update(ctx, panel.ID, &models.PanelUpdate{Style: &style})
		require.NoError(t, err)
		require.NotNil(t, updated)

		assert.Equal(t, models.PanelStyleSelectMenu, updated.Style)
		assert.Equal(t, "Games", updated.Name)
	})

	t.Run("posting sets channel and message together", func(t *testing.T) {
		channelID := int64Ptr(555)
		messageID := int64Ptr(777)
		updated, err := repo.Update(ctx, panel.ID, &models.PanelUpdate{
			ChannelID: &channelID,
			MessageID: &messageID,
		})
		require.NoError(t, err)

		require.NotNil(t, updated.ChannelID)
		require.NotNil(t, updated.MessageID)
		assert.Equal(t, int64(555), *updated.ChannelID)
		assert.Equal(t, int64(777), *updated.MessageID)

		found, err := repo.FindByMessageID(ctx, 777)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, panel.ID, found.ID)
	})

	t.Run("clearing description via double pointer", func(t *testing.T) {
		desc := strPtr("temp")
		_, err := repo.Update(ctx, panel.ID, &models.PanelUpdate{Description: &desc})
		require.NoError(t, err)

		var cleared *string
		updated, err := repo.Update(ctx, panel.ID, &models.PanelUpdate{Description: &cleared})
		require.NoError(t, err)
		assert.Nil(t, updated.Description)
	})

	t.Run("update of missing panel returns nil", func(t *testing.T) {
		name := "x"
		updated, err := repo.Update(ctx, uuid.New(), &models.PanelUpdate{Name: &name})
		require.NoError(t, err)
		assert.Nil(t, updated)
	})
}

func TestPanelRepository_ListAndSearch(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPanelRepository(testDB.DB)
	ctx := context.Background()

	for _, name := range []string{"Colors", "Games", "Game Night"} {
		_, err := repo.Create(ctx, 300, name, nil)
		require.NoError(t, err)
	}

	t.Run("list by guild", func(t *testing.T) {
		panels, err := repo.ListByGuild(ctx, 300)
		require.NoError(t, err)
		assert.Len(t, panels, 3)
	})

	t.Run("search by name prefix", func(t *testing.T) {
		names, err := repo.SearchByNamePrefix(ctx, 300, "Game", 25)
		require.NoError(t, err)
		assert.Equal(t, []string{"Game Night", "Games"}, names)
	})

	t.Run("empty prefix matches all", func(t *testing.T) {
		names, err := repo.SearchByNamePrefix(ctx, 300, "", 2)
		require.NoError(t, err)
		assert.Len(t, names, 2)
	})
}

func TestPanelRepository_DeleteCascades(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPanelRepository(testDB.DB)
	roleRepo := NewPanelRoleRepository(testDB.DB)
	ctx := context.Background()

	panel, err := repo.Create(ctx, 400, "Colors", nil)
	require.NoError(t, err)

	_, err = roleRepo.Create(ctx, panel.ID, 11, "Red", nil, nil, 1)
	require.NoError(t, err)
	_, err = roleRepo.Create(ctx, panel.ID, 12, "Blue", nil, nil, 2)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, panel.ID))

	roles, err := roleRepo.ListByPanel(ctx, panel.ID)
	require.NoError(t, err)
	assert.Empty(t, roles)

	assert.Error(t, repo.Delete(ctx, panel.ID))
}

package panels

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rolepanel/apperr"
)

func TestParsePanelCustomID_SimpleAction(t *testing.T) {
	panelID := uuid.New()

	parsed, err := ParsePanelCustomID(CustomID(panelID, ActionAddRole))

	require.NoError(t, err)
	assert.Equal(t, panelID, parsed.PanelID)
	assert.Equal(t, ActionAddRole, parsed.Action)
}

func TestParsePanelCustomID_ChannelPage(t *testing.T) {
	panelID := uuid.New()

	parsed, err := ParsePanelCustomID(ChannelPageCustomID(panelID, 3))

	require.NoError(t, err)
	assert.Equal(t, ActionChannelPage, parsed.Action)
	assert.Equal(t, 3, parsed.Page)
}

func TestParsePanelCustomID_RoleLabel(t *testing.T) {
	panelID := uuid.New()

	parsed, err := ParsePanelCustomID(RoleLabelCustomID(panelID, 42))

	require.NoError(t, err)
	assert.Equal(t, ActionRoleLabel, parsed.Action)
	assert.Equal(t, int64(42), parsed.RoleID)
}

func TestParsePanelCustomID_Malformed(t *testing.T) {
	panelID := uuid.New()

	cases := []string{
		"",
		"panel",
		"panel:" + panelID.String(),
		"panel:not-a-uuid:add_role",
		"panel:" + panelID.String() + ":launch_missiles",
		"role:" + panelID.String() + ":add_role",
		fmt.Sprintf("panel:%s:channel_page", panelID),
		fmt.Sprintf("panel:%s:channel_page:abc", panelID),
		fmt.Sprintf("panel:%s:channel_page:-1", panelID),
		fmt.Sprintf("panel:%s:role_label:notanumber", panelID),
	}

	for _, customID := range cases {
		_, err := ParsePanelCustomID(customID)
		assert.True(t, apperr.IsCode(err, apperr.CodeInvalidInput), "expected InvalidInput for %q", customID)
	}
}

func TestParsePanelCustomID_AllActionsRoundTrip(t *testing.T) {
	panelID := uuid.New()

	for action := range knownActions {
		if action == ActionChannelPage || action == ActionRoleLabel {
			continue
		}
		parsed, err := ParsePanelCustomID(CustomID(panelID, action))
		require.NoError(t, err, "action %s", action)
		assert.Equal(t, action, parsed.Action)
	}
}

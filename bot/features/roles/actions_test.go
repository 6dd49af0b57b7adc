package roles

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rolepanel/apperr"
)

func TestParseRoleCustomID_Toggle(t *testing.T) {
	panelID := uuid.New()

	parsed, err := ParseRoleCustomID(ToggleCustomID(panelID, 123))

	require.NoError(t, err)
	assert.Equal(t, panelID, parsed.PanelID)
	assert.Equal(t, ActionToggle, parsed.Action)
	assert.Equal(t, int64(123), parsed.RoleID)
}

func TestParseRoleCustomID_MenuPath(t *testing.T) {
	panelID := uuid.New()

	parsed, err := ParseRoleCustomID(fmt.Sprintf("role:%s:select", panelID))
	require.NoError(t, err)
	assert.Equal(t, ActionSelect, parsed.Action)

	parsed, err = ParseRoleCustomID(fmt.Sprintf("role:%s:confirm", panelID))
	require.NoError(t, err)
	assert.Equal(t, ActionConfirm, parsed.Action)
}

func TestParseRoleCustomID_Malformed(t *testing.T) {
	panelID := uuid.New()

	cases := []string{
		"",
		"role",
		"role:" + panelID.String(),
		"role:not-a-uuid:select",
		fmt.Sprintf("role:%s:destroy", panelID),
		fmt.Sprintf("role:%s:notanumber:toggle", panelID),
		fmt.Sprintf("panel:%s:select", panelID),
	}

	for _, customID := range cases {
		_, err := ParseRoleCustomID(customID)
		assert.True(t, apperr.IsCode(err, apperr.CodeInvalidInput), "expected InvalidInput for %q", customID)
	}
}

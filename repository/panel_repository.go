package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"rolepanel/database"
	"rolepanel/models"
)

// PanelRepository provides data access for panels
type PanelRepository struct {
	q queryable
}

// NewPanelRepository creates a new panel repository
func NewPanelRepository(db *database.DB) *PanelRepository {
	return &PanelRepository{q: db.Pool}
}

const panelColumns = "id, guild_id, name, description, style, color, channel_id, message_id, created_at, updated_at"

func scanPanel(row pgx.Row) (*models.Panel, error) {
	var panel models.Panel
	err := row.Scan(
		&panel.ID,
		&panel.GuildID,
		&panel.Name,
		&panel.Description,
		&panel.Style,
		&panel.Color,
		&panel.ChannelID,
		&panel.MessageID,
		&panel.CreatedAt,
		&panel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &panel, nil
}

// Create creates a new panel with defaults for style and color
func (r *PanelRepository) Create(ctx context.Context, guildID int64, name string, description *string) (*models.Panel, error) {
	query := `
		INSERT INTO panels (id, guild_id, name, description)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + panelColumns

	panel, err := scanPanel(r.q.QueryRow(ctx, query, uuid.New(), guildID, name, description))
	if err != nil {
		return nil, fmt.Errorf("failed to create panel for guild %d: %w", guildID, err)
	}
	return panel, nil
}

// FindByID retrieves a panel by its ID, or nil if it does not exist
func (r *PanelRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Panel, error) {
	query := `SELECT ` + panelColumns + ` FROM panels WHERE id = $1`

	panel, err := scanPanel(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get panel %s: %w", id, err)
	}
	return panel, nil
}

// FindByGuildAndName retrieves a panel by its unique per-guild name
func (r *PanelRepository) FindByGuildAndName(ctx context.Context, guildID int64, name string) (*models.Panel, error) {
	query := `SELECT ` + panelColumns + ` FROM panels WHERE guild_id = $1 AND name = $2`

	panel, err := scanPanel(r.q.QueryRow(ctx, query, guildID, name))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get panel %q in guild %d: %w", name, guildID, err)
	}
	return panel, nil
}

// FindByMessageID retrieves the panel posted as the given message
func (r *PanelRepository) FindByMessageID(ctx context.Context, messageID int64) (*models.Panel, error) {
	query := `SELECT ` + panelColumns + ` FROM panels WHERE message_id = $1`

	panel, err := scanPanel(r.q.QueryRow(ctx, query, messageID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get panel by message %d: %w", messageID, err)
	}
	return panel, nil
}

// ListByGuild returns all panels for a guild ordered by creation time
func (r *PanelRepository) ListByGuild(ctx context.Context, guildID int64) ([]*models.Panel, error) {
	query := `SELECT ` + panelColumns + ` FROM panels WHERE guild_id = $1 ORDER BY created_at`

	rows, err := r.q.Query(ctx, query, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list panels for guild %d: %w", guildID, err)
	}
	defer rows.Close()

	var panels []*models.Panel
	for rows.Next() {
		panel, err := scanPanel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan panel: %w", err)
		}
		panels = append(panels, panel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate panels: %w", err)
	}
	return panels, nil
}

// Update applies the non-nil fields of update and returns the new row
func (r *PanelRepository) Update(ctx context.Context, id uuid.UUID, update *models.PanelUpdate) (*models.Panel, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{id}

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Name != nil {
		addSet("name", *update.Name)
	}
	if update.Description != nil {
		addSet("description", *update.Description)
	}
	if update.Style != nil {
		addSet("style", *update.Style)
	}
	if update.Color != nil {
		addSet("color", *update.Color)
	}
	if update.ChannelID != nil {
		addSet("channel_id", *update.ChannelID)
	}
	if update.MessageID != nil {
		addSet("message_id", *update.MessageID)
	}

	query := fmt.Sprintf(
		`UPDATE panels SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(sets, ", "), panelColumns,
	)

	panel, err := scanPanel(r.q.QueryRow(ctx, query, args...))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update panel %s: %w", id, err)
	}
	return panel, nil
}

// Delete removes a panel; panel_roles cascade via foreign key
func (r *PanelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.q.Exec(ctx, `DELETE FROM panels WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete panel %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("panel %s not found", id)
	}
	return nil
}

// ExistsByGuildAndName reports whether a guild already has a panel with
// the given name
func (r *PanelRepository) ExistsByGuildAndName(ctx context.Context, guildID int64, name string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM panels WHERE guild_id = $1 AND name = $2)`,
		guildID, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check panel name %q in guild %d: %w", name, guildID, err)
	}
	return exists, nil
}

// SearchByNamePrefix returns up to limit panel names starting with
// prefix, for autocomplete
func (r *PanelRepository) SearchByNamePrefix(ctx context.Context, guildID int64, prefix string, limit int) ([]string, error) {
	query := `
		SELECT name FROM panels
		WHERE guild_id = $1 AND name ILIKE $2 || '%'
		ORDER BY name
		LIMIT $3
	`

	rows, err := r.q.Query(ctx, query, guildID, prefix, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search panels in guild %d: %w", guildID, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan panel name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate panel names: %w", err)
	}
	return names, nil
}

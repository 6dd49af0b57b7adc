package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"rolepanel/database"
	"rolepanel/models"
)

// PanelRoleRepository provides data access for panel role entries
type PanelRoleRepository struct {
	q queryable
}

// NewPanelRoleRepository creates a new panel role repository
func NewPanelRoleRepository(db *database.DB) *PanelRoleRepository {
	return &PanelRoleRepository{q: db.Pool}
}

const panelRoleColumns = "id, panel_id, role_id, label, emoji, description, position, created_at"

func scanPanelRole(row pgx.Row) (*models.PanelRole, error) {
	var role models.PanelRole
	err := row.Scan(
		&role.ID,
		&role.PanelID,
		&role.RoleID,
		&role.Label,
		&role.Emoji,
		&role.Description,
		&role.Position,
		&role.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// Create adds a role entry to a panel. The (panel_id, role_id) unique
// constraint rejects duplicates; concurrent adds of the same role
// surface here as a constraint violation.
func (r *PanelRoleRepository) Create(ctx context.Context, panelID uuid.UUID, roleID int64, label string, emoji, description *string, position int32) (*models.PanelRole, error) {
	query := `
		INSERT INTO panel_roles (id, panel_id, role_id, label, emoji, description, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + panelRoleColumns

	role, err := scanPanelRole(r.q.QueryRow(ctx, query, uuid.New(), panelID, roleID, label, emoji, description, position))
	if err != nil {
		return nil, fmt.Errorf("failed to add role %d to panel %s: %w", roleID, panelID, err)
	}
	return role, nil
}

// FindByID retrieves a panel role entry by its ID
func (r *PanelRoleRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.PanelRole, error) {
	query := `SELECT ` + panelRoleColumns + ` FROM panel_roles WHERE id = $1`

	role, err := scanPanelRole(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get panel role %s: %w", id, err)
	}
	return role, nil
}

// FindByPanelAndRole retrieves the entry for a specific Discord role
// within a panel
func (r *PanelRoleRepository) FindByPanelAndRole(ctx context.Context, panelID uuid.UUID, roleID int64) (*models.PanelRole, error) {
	query := `SELECT ` + panelRoleColumns + ` FROM panel_roles WHERE panel_id = $1 AND role_id = $2`

	role, err := scanPanelRole(r.q.QueryRow(ctx, query, panelID, roleID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get role %d in panel %s: %w", roleID, panelID, err)
	}
	return role, nil
}

// ListByPanel returns a panel's role entries in display order
func (r *PanelRoleRepository) ListByPanel(ctx context.Context, panelID uuid.UUID) ([]*models.PanelRole, error) {
	query := `SELECT ` + panelRoleColumns + ` FROM panel_roles WHERE panel_id = $1 ORDER BY position`

	rows, err := r.q.Query(ctx, query, panelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles for panel %s: %w", panelID, err)
	}
	defer rows.Close()

	var roles []*models.PanelRole
	for rows.Next() {
		role, err := scanPanelRole(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan panel role: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate panel roles: %w", err)
	}
	return roles, nil
}

// CountByPanel returns the number of role entries in a panel
func (r *PanelRoleRepository) CountByPanel(ctx context.Context, panelID uuid.UUID) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM panel_roles WHERE panel_id = $1`, panelID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count roles for panel %s: %w", panelID, err)
	}
	return count, nil
}

// GetMaxPosition returns the highest position in a panel, or 0 when the
// panel has no roles
func (r *PanelRoleRepository) GetMaxPosition(ctx context.Context, panelID uuid.UUID) (int32, error) {
	var max *int32
	err := r.q.QueryRow(ctx, `SELECT MAX(position) FROM panel_roles WHERE panel_id = $1`, panelID).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("failed to get max position for panel %s: %w", panelID, err)
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// Delete removes a panel role entry by its ID
func (r *PanelRoleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.q.Exec(ctx, `DELETE FROM panel_roles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete panel role %s: %w", id, err)
	}
	return nil
}

// DeleteByPanelAndRole removes the entry for a Discord role from a panel
func (r *PanelRoleRepository) DeleteByPanelAndRole(ctx context.Context, panelID uuid.UUID, roleID int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM panel_roles WHERE panel_id = $1 AND role_id = $2`, panelID, roleID)
	if err != nil {
		return fmt.Errorf("failed to delete role %d from panel %s: %w", roleID, panelID, err)
	}
	return nil
}

// DeleteByPanel removes all role entries from a panel
func (r *PanelRoleRepository) DeleteByPanel(ctx context.Context, panelID uuid.UUID) error {
	_, err := r.q.Exec(ctx, `DELETE FROM panel_roles WHERE panel_id = $1`, panelID)
	if err != nil {
		return fmt.Errorf("failed to delete roles for panel %s: %w", panelID, err)
	}
	return nil
}

package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mindgraphix/platform/internal/auth"
	"github.com/mindgraphix/platform/internal/core/datamodel/identity"
)

// Repository is the gorm-backed credential store. Finder methods return
// (nil, nil) on a miss so callers can distinguish absence from query failure.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) FindUserByEmail(email string) (*auth.User, error) {
	var row identity.User
	if err := r.db.Where("email = ?", email).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return userFromRow(&row), nil
}

func (r *Repository) FindUserByID(id int64) (*auth.User, error) {
	var row identity.User
	if err := r.db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return userFromRow(&row), nil
}

func (r *Repository) CreateUser(email, fullName, passwordHash string) (*auth.User, error) {
	row := identity.User{
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		IsActive:     true,
	}
	if err := r.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return userFromRow(&row), nil
}

func (r *Repository) FindRoleByName(name string) (*auth.Role, error) {
	var row identity.Role
	if err := r.db.Where("name = ?", name).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	role := roleFromRow(&row)
	perms, err := r.permissionsOfRole(row.ID)
	if err != nil {
		return nil, err
	}
	role.Permissions = perms
	return role, nil
}

func (r *Repository) FindRoleByID(id int64) (*auth.Role, error) {
	var row identity.Role
	if err := r.db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return roleFromRow(&row), nil
}

func (r *Repository) CreateRole(name, description string, isDefault bool) (*auth.Role, error) {
	row := identity.Role{
		Name:        name,
		Description: description,
		IsDefault:   isDefault,
	}
	if err := r.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return roleFromRow(&row), nil
}

func (r *Repository) ListRoles(skip, limit int) ([]auth.Role, error) {
	var rows []identity.Role
	if err := r.db.Order("id").Offset(skip).Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	roles := make([]auth.Role, 0, len(rows))
	for i := range rows {
		role := roleFromRow(&rows[i])
		perms, err := r.permissionsOfRole(rows[i].ID)
		if err != nil {
			return nil, err
		}
		role.Permissions = perms
		roles = append(roles, *role)
	}
	return roles, nil
}

func (r *Repository) FindPermissionByName(name string) (*auth.Permission, error) {
	var row identity.Permission
	if err := r.db.Where("name = ?", name).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return permissionFromRow(&row), nil
}

func (r *Repository) FindPermissionByID(id int64) (*auth.Permission, error) {
	var row identity.Permission
	if err := r.db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return permissionFromRow(&row), nil
}

func (r *Repository) CreatePermission(name, description string) (*auth.Permission, error) {
	row := identity.Permission{
		Name:        name,
		Description: description,
	}
	if err := r.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return permissionFromRow(&row), nil
}

func (r *Repository) ListPermissions(skip, limit int) ([]auth.Permission, error) {
	var rows []identity.Permission
	if err := r.db.Order("id").Offset(skip).Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	perms := make([]auth.Permission, 0, len(rows))
	for i := range rows {
		perms = append(perms, *permissionFromRow(&rows[i]))
	}
	return perms, nil
}

// AddPermissionToRole grants a permission to a role; granting an existing
// pair is a no-op.
func (r *Repository) AddPermissionToRole(roleID, permissionID int64) error {
	return r.db.Exec(
		`INSERT INTO role_permissions (role_id, permission_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
		roleID, permissionID,
	).Error
}

// AddRoleToUser assigns a role to a user; assigning an existing pair is a no-op.
func (r *Repository) AddRoleToUser(userID, roleID int64) error {
	return r.db.Exec(
		`INSERT INTO user_roles (user_id, role_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
		userID, roleID,
	).Error
}

// RolesOf returns the user's roles, each materialized with its permission
// set. The permission join happens here; domain code never walks the
// association tables itself.
func (r *Repository) RolesOf(userID int64) ([]auth.Role, error) {
	var roleRows []identity.Role
	err := r.db.Raw(
		`SELECT r.id, r.name, r.description, r.is_default, r.created_at
		 FROM roles r
		 JOIN user_roles ur ON ur.role_id = r.id
		 WHERE ur.user_id = ?
		 ORDER BY r.id`, userID,
	).Scan(&roleRows).Error
	if err != nil {
		return nil, err
	}
	if len(roleRows) == 0 {
		return nil, nil
	}

	roleIDs := make([]int64, 0, len(roleRows))
	for _, row := range roleRows {
		roleIDs = append(roleIDs, row.ID)
	}

	type permRow struct {
		identity.Permission
		RoleID int64
	}
	var permRows []permRow
	err = r.db.Raw(
		`SELECT p.id, p.name, p.description, p.created_at, rp.role_id
		 FROM permissions p
		 JOIN role_permissions rp ON rp.permission_id = p.id
		 WHERE rp.role_id IN ?
		 ORDER BY p.id`, roleIDs,
	).Scan(&permRows).Error
	if err != nil {
		return nil, err
	}

	permsByRole := make(map[int64][]auth.Permission, len(roleRows))
	for _, row := range permRows {
		permsByRole[row.RoleID] = append(permsByRole[row.RoleID], *permissionFromRow(&row.Permission))
	}

	roles := make([]auth.Role, 0, len(roleRows))
	for i := range roleRows {
		role := roleFromRow(&roleRows[i])
		role.Permissions = permsByRole[roleRows[i].ID]
		roles = append(roles, *role)
	}
	return roles, nil
}

func (r *Repository) permissionsOfRole(roleID int64) ([]auth.Permission, error) {
	var rows []identity.Permission
	err := r.db.Raw(
		`SELECT p.id, p.name, p.description, p.created_at
		 FROM permissions p
		 JOIN role_permissions rp ON rp.permission_id = p.id
		 WHERE rp.role_id = ?
		 ORDER BY p.id`, roleID,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	perms := make([]auth.Permission, 0, len(rows))
	for i := range rows {
		perms = append(perms, *permissionFromRow(&rows[i]))
	}
	return perms, nil
}

func userFromRow(row *identity.User) *auth.User {
	return &auth.User{
		ID:           row.ID,
		Email:        row.Email,
		FullName:     row.FullName,
		PasswordHash: row.PasswordHash,
		IsActive:     row.IsActive,
		IsSuperuser:  row.IsSuperuser,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func roleFromRow(row *identity.Role) *auth.Role {
	return &auth.Role{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		IsDefault:   row.IsDefault,
		CreatedAt:   row.CreatedAt,
	}
}

func permissionFromRow(row *identity.Permission) *auth.Permission {
	return &auth.Permission{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
	}
}

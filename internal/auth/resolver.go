package auth

import "sort"

// ResolvePermissions computes the union of permissions granted to the user
// through every assigned role, deduplicated by name. The result does not
// depend on the order roles were assigned. Superusers get no special
// treatment here; the bypass lives in the authorization gate, so a superuser
// with no roles resolves to an empty set.
func (s *Service) ResolvePermissions(userID int64) ([]Permission, error) {
	roles, err := s.repo.RolesOf(userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]Permission)
	for _, role := range roles {
		for _, perm := range role.Permissions {
			if _, ok := seen[perm.Name]; !ok {
				seen[perm.Name] = perm
			}
		}
	}

	resolved := make([]Permission, 0, len(seen))
	for _, perm := range seen {
		resolved = append(resolved, perm)
	}
	sort.Slice(resolved, func(i, j int) bool { return resolved[i].Name < resolved[j].Name })
	return resolved, nil
}

// HasPermission reports whether the user holds the named permission through
// any assigned role.
func (s *Service) HasPermission(userID int64, name string) (bool, error) {
	perms, err := s.ResolvePermissions(userID)
	if err != nil {
		return false, err
	}
	for _, p := range perms {
		if p.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// HasRole reports whether the role is directly assigned to the user.
func (s *Service) HasRole(userID int64, name string) (bool, error) {
	roles, err := s.repo.RolesOf(userID)
	if err != nil {
		return false, err
	}
	for _, r := range roles {
		if r.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func permissionNames(perms []Permission) map[string]bool {
	names := make(map[string]bool, len(perms))
	for _, p := range perms {
		names[p.Name] = true
	}
	return names
}

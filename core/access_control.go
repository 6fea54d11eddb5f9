package core

import (
	"encoding/json"
	"fmt"
	"sync"
)

// AccessController gates which public keys may invoke an AssetExchange
// gateway's procedures. Adapted from this codebase's ledger-backed role
// registry: the universe has no general key/value store of its own, so
// roles live in memory and are persisted as a single JSON blob through
// the same Persistence interface the universe uses for snapshots,
// rather than through per-key ledger state entries addressed by a
// "access:<addr>:<role>" key scheme.
type AccessController struct {
	mu    sync.Mutex
	roles map[PublicKey]map[string]struct{}
}

// NewAccessController returns an empty AccessController.
func NewAccessController() *AccessController {
	return &AccessController{roles: make(map[PublicKey]map[string]struct{})}
}

// GrantRole assigns role to pk. It returns an error if pk already holds
// role.
func (ac *AccessController) GrantRole(pk PublicKey, role string) error {
	ac.mu.Lock()
	defer ac.mu.Unlock()

	if roles, ok := ac.roles[pk]; ok {
		if _, ok := roles[role]; ok {
			return fmt.Errorf("access control: role %q already granted", role)
		}
	} else {
		ac.roles[pk] = make(map[string]struct{})
	}
	ac.roles[pk][role] = struct{}{}
	return nil
}

// RevokeRole removes role from pk. It returns an error if pk does not
// hold role.
func (ac *AccessController) RevokeRole(pk PublicKey, role string) error {
	ac.mu.Lock()
	defer ac.mu.Unlock()

	roles, ok := ac.roles[pk]
	if !ok {
		return fmt.Errorf("access control: role %q not found", role)
	}
	if _, ok := roles[role]; !ok {
		return fmt.Errorf("access control: role %q not found", role)
	}
	delete(roles, role)
	if len(roles) == 0 {
		delete(ac.roles, pk)
	}
	return nil
}

// HasRole reports whether pk holds role.
func (ac *AccessController) HasRole(pk PublicKey, role string) bool {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	roles, ok := ac.roles[pk]
	if !ok {
		return false
	}
	_, ok = roles[role]
	return ok
}

// ListRoles returns the roles held by pk.
func (ac *AccessController) ListRoles(pk PublicKey) []string {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	roles, ok := ac.roles[pk]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(roles))
	for r := range roles {
		out = append(out, r)
	}
	return out
}

// accessControlSnapshotName is the Persistence entry the controller
// saves its state under.
const accessControlSnapshotName = "access_control.json"

// Save persists the controller's roles through p.
func (ac *AccessController) Save(p Persistence) error {
	ac.mu.Lock()
	flat := make(map[string][]string, len(ac.roles))
	for pk, roles := range ac.roles {
		list := make([]string, 0, len(roles))
		for r := range roles {
			list = append(list, r)
		}
		flat[fmt.Sprintf("%x", pk)] = list
	}
	ac.mu.Unlock()

	data, err := json.Marshal(flat)
	if err != nil {
		return fmt.Errorf("access control: marshal: %w", err)
	}
	if err := p.Save(accessControlSnapshotName, data); err != nil {
		return fmt.Errorf("access control: save: %w", err)
	}
	return nil
}

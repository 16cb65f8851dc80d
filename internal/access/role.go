// Package access resolves the roles a caller holds and answers the role
// checks the services dispatch on.
package access

import "strings"

type Role uint8

const (
	Customer Role = 1 << iota
	DeliveryCrew
	Manager
)

// Group names as stored in user_groups.
const (
	GroupCustomer     = "Customer"
	GroupDeliveryCrew = "Delivery Crew"
	GroupManager      = "Manager"
)

func (r Role) String() string {
	switch r {
	case Customer:
		return GroupCustomer
	case DeliveryCrew:
		return GroupDeliveryCrew
	case Manager:
		return GroupManager
	default:
		return "unknown"
	}
}

// RoleFromGroup maps a group name to its role. Matching ignores case.
func RoleFromGroup(name string) (Role, bool) {
	switch {
	case strings.EqualFold(name, GroupCustomer):
		return Customer, true
	case strings.EqualFold(name, GroupDeliveryCrew):
		return DeliveryCrew, true
	case strings.EqualFold(name, GroupManager):
		return Manager, true
	}
	return 0, false
}

// RoleSet is the set of roles a caller holds. A superuser satisfies
// every Manager check without being in the group.
type RoleSet struct {
	roles     Role
	superuser bool
}

func NewRoleSet(superuser bool, roles ...Role) RoleSet {
	rs := RoleSet{superuser: superuser}
	for _, r := range roles {
		rs.roles |= r
	}
	return rs
}

// RoleSetFromGroups builds a RoleSet from group names, skipping unknown ones.
func RoleSetFromGroups(superuser bool, groups []string) RoleSet {
	rs := RoleSet{superuser: superuser}
	for _, g := range groups {
		if r, ok := RoleFromGroup(g); ok {
			rs.roles |= r
		}
	}
	return rs
}

func (rs RoleSet) Has(r Role) bool {
	if r == Manager && rs.superuser {
		return true
	}
	return rs.roles&r != 0
}

func (rs RoleSet) Superuser() bool {
	return rs.superuser
}

func (rs RoleSet) Empty() bool {
	return rs.roles == 0 && !rs.superuser
}

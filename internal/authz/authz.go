// Package authz is the pure authorization policy. It never touches the
// store: everything is decided from the principal's role set and, for
// order updates, the order's current assignment.
package authz

import "slices"

const (
	RoleManager      = "manager"
	RoleDeliveryCrew = "delivery_crew"
)

// Groups lists every role a user can be a member of.
var Groups = []string{RoleManager, RoleDeliveryCrew}

// Principal is an authenticated caller. A principal with no roles is a
// plain customer.
type Principal struct {
	UserID   uint
	Username string
	Roles    []string
}

func (p Principal) HasRole(role string) bool {
	return slices.Contains(p.Roles, role)
}

// IsStaff reports whether the principal holds any elevated role. Staff may
// not place orders.
func (p Principal) IsStaff() bool {
	return p.HasRole(RoleManager) || p.HasRole(RoleDeliveryCrew)
}

type Action string

const (
	ActionCatalogRead  Action = "catalog.read"
	ActionCatalogWrite Action = "catalog.write"
	ActionGroupManage  Action = "groups.manage"
	ActionCartUse      Action = "cart.use"
	ActionOrderCreate  Action = "order.create"
	ActionOrderDelete  Action = "order.delete"
)

// Allowed evaluates the central policy table. Anonymous callers never reach
// this point: the transport rejects requests without a principal.
func Allowed(p Principal, action Action) bool {
	switch action {
	case ActionCatalogRead, ActionCartUse:
		return true
	case ActionCatalogWrite, ActionGroupManage, ActionOrderDelete:
		return p.HasRole(RoleManager)
	case ActionOrderCreate:
		return !p.IsStaff()
	}
	return false
}

// CanReadOrder gates the single-order read path: only the owning user or a
// manager. Deliberately narrower than list visibility, where an assigned
// delivery-crew member does see the order.
func CanReadOrder(p Principal, ownerID uint) bool {
	return p.UserID == ownerID || p.HasRole(RoleManager)
}

// OrderAccess is the caller's update capability for one order.
type OrderAccess int

const (
	// OrderAccessNone rejects the whole update.
	OrderAccessNone OrderAccess = iota
	// OrderAccessStatusOnly allows the status field and nothing else.
	OrderAccessStatusOnly
	// OrderAccessFull allows status and delivery crew reassignment.
	OrderAccessFull
)

// UpdateAccess classifies what the principal may change on an order
// currently assigned to deliveryCrewID (nil when unassigned).
func UpdateAccess(p Principal, deliveryCrewID *uint) OrderAccess {
	if p.HasRole(RoleManager) {
		return OrderAccessFull
	}
	if p.HasRole(RoleDeliveryCrew) && deliveryCrewID != nil && *deliveryCrewID == p.UserID {
		return OrderAccessStatusOnly
	}
	return OrderAccessNone
}

func ValidGroup(name string) bool {
	return slices.Contains(Groups, name)
}

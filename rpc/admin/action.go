package admin

import "fmt"

// ActionKind is the operation a RegionRequest asks for.
// The values are written to the wire and must never change.
type ActionKind int32

const (
	ActionGetRegion        ActionKind = 10 // Get a region by its full path
	ActionCreateRootRegion ActionKind = 11 // Create a new top level region
	ActionCreateSubregion  ActionKind = 12 // Create a new region below a parent region
)

// String returns the string representation of an ActionKind.
func (a ActionKind) String() string {
	switch a {
	case ActionGetRegion:
		return "get-region"
	case ActionCreateRootRegion:
		return "create-root-region"
	case ActionCreateSubregion:
		return "create-subregion"
	default:
		return fmt.Sprintf("unknown(%d)", int32(a))
	}
}

// IsKnown returns whether the action is one of the defined kinds
func (a ActionKind) IsKnown() bool {
	return a == ActionGetRegion || a == ActionCreateRootRegion || a == ActionCreateSubregion
}

// Describe returns the human readable label of an action. Unknown values never
// fail, they produce a label containing the raw value, so messages sent by newer
// members can still be decoded and displayed.
func Describe(action ActionKind) string {
	switch action {
	case ActionGetRegion:
		return "get a specific region from the root"
	case ActionCreateRootRegion:
		return "create a new root region"
	case ActionCreateSubregion:
		return "create a new region"
	default:
		return fmt.Sprintf("unknown operation %d", int32(action))
	}
}

package region

// --------------------------------------------------------------------------
// Scope
// --------------------------------------------------------------------------

// Scope defines how a region distributes its operations to other members
type Scope int8

const (
	ScopeLocal            Scope = iota // operations stay in the local cache
	ScopeDistributedNoAck              // operations are distributed without waiting for acknowledgement
	ScopeDistributedAck                // operations are distributed and acknowledged
	ScopeGlobal                        // operations are distributed under a global lock
)

// String returns the string representation of a Scope.
func (s Scope) String() string {
	switch s {
	case ScopeLocal:
		return "local"
	case ScopeDistributedNoAck:
		return "distributed-no-ack"
	case ScopeDistributedAck:
		return "distributed-ack"
	case ScopeGlobal:
		return "global"
	default:
		return "unknown"
	}
}

// ParseScope converts the string representation back to a Scope
func ParseScope(s string) (Scope, bool) {
	for scope := ScopeLocal; scope <= ScopeGlobal; scope++ {
		if scope.String() == s {
			return scope, true
		}
	}
	return 0, false
}

// --------------------------------------------------------------------------
// Data Policy
// --------------------------------------------------------------------------

// DataPolicy defines how a region stores its entries
type DataPolicy int8

const (
	DataPolicyNormal    DataPolicy = iota // entries are stored locally
	DataPolicyEmpty                       // no entries are stored locally
	DataPolicyPreloaded                   // entries are preloaded from other members
	DataPolicyReplicate                   // all entries are replicated
	DataPolicyPartition                   // entries are partitioned across members
)

// String returns the string representation of a DataPolicy.
func (p DataPolicy) String() string {
	switch p {
	case DataPolicyNormal:
		return "normal"
	case DataPolicyEmpty:
		return "empty"
	case DataPolicyPreloaded:
		return "preloaded"
	case DataPolicyReplicate:
		return "replicate"
	case DataPolicyPartition:
		return "partition"
	default:
		return "unknown"
	}
}

// ParseDataPolicy converts the string representation back to a DataPolicy
func ParseDataPolicy(s string) (DataPolicy, bool) {
	for policy := DataPolicyNormal; policy <= DataPolicyPartition; policy++ {
		if policy.String() == s {
			return policy, true
		}
	}
	return 0, false
}

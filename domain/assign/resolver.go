package assign

import (
	"filingflow/domain/stage"

	"github.com/fundwit/go-commons/types"
)

// Snapshot is a point-in-time view of active operators partitioned by role,
// each group in canonical listing order. Resolution is deterministic for a
// given snapshot; the snapshot provider decides what "active" means.
type Snapshot struct {
	Bookkeepers []types.ID
	Managers    []types.ID
	Partners    []types.ID
}

// Resolve picks the assignee for a filing entering toStage.
//
// Picking the first member of a role group is a coarse heuristic to keep
// resolution deterministic. It is not load balancing.
func Resolve(toStage string, snapshot *Snapshot, currentAssignee types.ID) types.ID {
	switch {
	case stage.IsChaseStage(toStage):
		if len(snapshot.Partners) > 0 {
			return snapshot.Partners[0]
		}
		if len(snapshot.Managers) > 0 {
			return snapshot.Managers[0]
		}
		return firstOf(snapshot.Bookkeepers, currentAssignee)
	case stage.IsInProgressStage(toStage):
		return firstOf(snapshot.Bookkeepers, currentAssignee)
	case stage.IsManagerReviewStage(toStage):
		return firstOf(snapshot.Managers, currentAssignee)
	case stage.IsPartnerReviewStage(toStage):
		return firstOf(snapshot.Partners, currentAssignee)
	case stage.IsClientFacingStage(toStage):
		if currentAssignee != 0 {
			return currentAssignee
		}
		return firstOf(snapshot.Bookkeepers, currentAssignee)
	}
	return currentAssignee
}

func firstOf(group []types.ID, fallback types.ID) types.ID {
	if len(group) > 0 {
		return group[0]
	}
	return fallback
}

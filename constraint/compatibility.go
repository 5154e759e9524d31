package constraint

import "github.com/vrplab/engine/model"

// compatibilityStateKey stores the compatibility tag a route has committed
// to, once its first tagged job is placed.
const compatibilityStateKey model.StateKey = "constraint.compatibility"

// CompatibilityModule enforces that jobs carrying a model.Dimensions
// compatibility tag never share a route with jobs carrying a different tag,
// while untagged jobs are compatible with everything.
//
// A route's compatibility is undecided until its first tagged job is
// placed, after which every subsequent job must match (or be untagged).
// The route's cached tag is recomputed from scratch whenever its state is
// accepted - a full rescan rather than incremental patching, since a ruin
// operator may remove the very job that set the tag.
type CompatibilityModule struct {
	NoopState
}

// NewCompatibilityModule returns a ready-to-use CompatibilityModule.
func NewCompatibilityModule() *CompatibilityModule {
	return &CompatibilityModule{}
}

// Name implements Module.
func (m *CompatibilityModule) Name() string { return "compatibility" }

func compatibilityTag(job *model.Job) (string, bool) {
	raw, ok := job.Dimensions[model.DimCompatibility]
	if !ok {
		return "", false
	}
	tag, ok := raw.(string)
	return tag, ok
}

// EvaluateJob implements HardRouteConstraint.
func (m *CompatibilityModule) EvaluateJob(_ *model.SolutionContext, route *model.RouteContext, job *model.Job) (string, bool) {
	tag, tagged := compatibilityTag(job)
	if !tagged {
		return "", false
	}
	existing, ok := route.StateValue(compatibilityStateKey)
	committed, isTag := existing.(string)
	if !ok || !isTag {
		return "", false
	}
	if committed != tag {
		return "compatibility", true
	}
	return "", false
}

// AllowMerge implements MergeGate: two jobs may be clustered only if neither
// is tagged, or both carry the same tag.
func (m *CompatibilityModule) AllowMerge(src, cand *model.Job) (string, bool) {
	srcTag, srcTagged := compatibilityTag(src)
	candTag, candTagged := compatibilityTag(cand)
	if !srcTagged || !candTagged {
		return "", true
	}
	if srcTag != candTag {
		return "compatibility", false
	}
	return "", true
}

// AcceptRouteState rescans every job currently in route and recomputes its
// committed compatibility tag, clearing it if no tagged job remains.
func (m *CompatibilityModule) AcceptRouteState(route *model.RouteContext) {
	for _, job := range route.Route.Jobs() {
		if tag, ok := compatibilityTag(job); ok {
			route.SetState(compatibilityStateKey, tag)
			return
		}
	}
	route.SetState(compatibilityStateKey, nil)
}

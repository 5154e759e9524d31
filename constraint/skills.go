package constraint

import "github.com/vrplab/engine/model"

// SkillsModule rejects any job whose Dimensions skill requirement is not a
// subset of the route's actor's skill set. Pure hard-route check, no
// derived state.
type SkillsModule struct {
	NoopState
}

// NewSkillsModule returns a ready-to-use SkillsModule.
func NewSkillsModule() *SkillsModule { return &SkillsModule{} }

// Name implements Module.
func (m *SkillsModule) Name() string { return "skills" }

// EvaluateJob implements HardRouteConstraint.
func (m *SkillsModule) EvaluateJob(_ *model.SolutionContext, route *model.RouteContext, job *model.Job) (string, bool) {
	required := job.Dimensions.Skills()
	if len(required) == 0 {
		return "", false
	}
	if !route.Route.Actor.HasSkills(required) {
		return "skills", true
	}
	return "", false
}

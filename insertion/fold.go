package insertion

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vrplab/engine/model"
)

// BestJobRoute pairs a job with the route and JobRouteResult that scored
// lowest for it.
type BestJobRoute struct {
	Job      *model.Job
	RouteIdx int
	Result   JobRouteResult
}

// FoldBestInsertions searches, for every job in jobs, the best (route,
// position) pair across every route in ic.Solution.Routes, running the
// search concurrently.
//
// Which axis is parallelized - one goroutine per job scanning every route
// ("fold-over-jobs"), or one goroutine per route scanning every job
// ("fold-over-routes") - is decided once per call by an unbiased coin flip
// on ic.Random. Biasing the flip by axis size would only affect wall-clock,
// not results (either axis produces identical reductions), and a fair coin
// already balances over the many recreate calls in one generation. Work is
// bounded to GOMAXPROCS via errgroup.
func FoldBestInsertions(ctx context.Context, problem *model.Problem, ic *model.InsertionContext, jobs []*model.Job) ([]BestJobRoute, error) {
	if len(jobs) == 0 || len(ic.Solution.Routes) == 0 {
		return nil, nil
	}
	if ic.Random.Bool() {
		return foldOverJobs(ctx, problem, ic, jobs)
	}
	return foldOverRoutes(ctx, problem, ic, jobs)
}

func worstResult() JobRouteResult { return infeasibleResult }

func foldOverJobs(ctx context.Context, problem *model.Problem, ic *model.InsertionContext, jobs []*model.Job) ([]BestJobRoute, error) {
	results := make([]BestJobRoute, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			best := BestJobRoute{Job: job, RouteIdx: -1, Result: worstResult()}
			for routeIdx, rc := range ic.Solution.Routes {
				res := EvaluateJobRoute(problem, ic.Solution, rc, job)
				if res.Feasible && res.Cost < best.Result.Cost {
					best.Result = res
					best.RouteIdx = routeIdx
				}
			}
			results[i] = best
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func foldOverRoutes(ctx context.Context, problem *model.Problem, ic *model.InsertionContext, jobs []*model.Job) ([]BestJobRoute, error) {
	type routeBest struct {
		byJob map[*model.Job]BestJobRoute
	}
	partials := make([]routeBest, len(ic.Solution.Routes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for routeIdx, rc := range ic.Solution.Routes {
		routeIdx, rc := routeIdx, rc
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			byJob := make(map[*model.Job]BestJobRoute, len(jobs))
			for _, job := range jobs {
				res := EvaluateJobRoute(problem, ic.Solution, rc, job)
				byJob[job] = BestJobRoute{Job: job, RouteIdx: routeIdx, Result: res}
			}
			partials[routeIdx] = routeBest{byJob: byJob}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]BestJobRoute, len(jobs))
	for i, job := range jobs {
		best := BestJobRoute{Job: job, RouteIdx: -1, Result: worstResult()}
		for _, p := range partials {
			if cand, ok := p.byJob[job]; ok && cand.Result.Feasible && cand.Result.Cost < best.Result.Cost {
				best = cand
			}
		}
		results[i] = best
	}
	return results, nil
}

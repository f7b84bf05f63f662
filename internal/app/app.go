// Package app implements the application layer for mason.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/mason/internal/engine/execution"
	"go.trai.ch/mason/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// stepName is the single step every rule's action reports under.
const stepName = "build"

// App drives one build: load declarations, fingerprint each selected rule,
// skip rules whose key hits the store, and execute the rest. Rules run in
// declaration order; consecutive rules sharing a pipeline reuse one warm
// toolchain process.
type App struct {
	loader   ports.RuleLoader
	factory  ports.RuleKeyFactory
	files    ports.FileHashCache
	store    ports.RuleKeyStore
	executor ports.ProcessExecutor
	bus      ports.EventBus
	logger   ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.RuleLoader,
	factory ports.RuleKeyFactory,
	files ports.FileHashCache,
	store ports.RuleKeyStore,
	executor ports.ProcessExecutor,
	bus ports.EventBus,
	logger ports.Logger,
) *App {
	return &App{
		loader:   loader,
		factory:  factory,
		files:    files,
		store:    store,
		executor: executor,
		bus:      bus,
		logger:   logger,
	}
}

// Run builds the named targets and their transitive dependencies. force
// bypasses the rule key store.
func (a *App) Run(ctx context.Context, targetNames []string, force bool) error {
	rules, err := a.loader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load build declarations")
	}

	selected, err := selectRules(rules, targetNames)
	if err != nil {
		return err
	}

	if err := a.files.Prime(ctx, sourcePaths(selected)); err != nil {
		return zerr.Wrap(err, "failed to prime file hashes")
	}

	root := execution.NewContext(execution.Params{
		Bus:          a.bus,
		Executor:     a.executor,
		RuleCellRoot: ".",
		ActionID:     "build",
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Verbosity:    1,
	})
	defer root.Close() //nolint:errcheck // Best effort close in defer

	root.PostConsole(domain.LogLevelInfo, fmt.Sprintf("building %d rules", len(selected)))

	for _, group := range groupByPipeline(selected) {
		if group[0].Pipeline == "" {
			for _, rule := range group {
				if err := a.executeRule(ctx, root, rule, force); err != nil {
					return err
				}
			}
			continue
		}
		if err := a.executePipeline(ctx, root, group, force); err != nil {
			return err
		}
	}
	return nil
}

// executeRule fingerprints and, on a cache miss, runs one standalone rule.
func (a *App) executeRule(ctx context.Context, root *execution.Context, rule *domain.Rule, force bool) error {
	actx := root.ForAction(rule.Target.String())
	defer actx.Close() //nolint:errcheck // Best effort close in defer

	key, cached, err := a.fingerprint(rule, force)
	if err != nil {
		return err
	}
	if cached {
		actx.PostStep(stepName, domain.StepCached)
		return nil
	}

	actx.PostStep(stepName, domain.StepStarted)
	cmd := ports.Command{
		Argv: rule.Command,
		Dir:  actx.RuleCellRoot(),
		Env:  envSlice(rule.Env),
	}
	if err := actx.Executor().Run(ctx, cmd); err != nil {
		actx.PostStep(stepName, domain.StepFailed)
		actx.LogError(err, "rule action failed")
		return zerr.With(zerr.Wrap(domain.ErrBuildFailed, err.Error()), "target", rule.Target.String())
	}
	actx.PostStep(stepName, domain.StepFinished)

	return a.record(rule, key)
}

// executePipeline runs one contiguous group of rules sharing a pipeline. The
// group's toolchain process is started once, fed each stage's command, and
// released exactly once when the group finishes. A group is skipped only when
// every stage hits the cache; a single miss runs the whole pipeline, since
// later stages depend on the tool state earlier stages build up.
func (a *App) executePipeline(ctx context.Context, root *execution.Context, group []*domain.Rule, force bool) error {
	keys := make([]domain.RuleKey, len(group))
	allCached := true
	for i, rule := range group {
		key, cached, err := a.fingerprint(rule, force)
		if err != nil {
			return err
		}
		keys[i] = key
		allCached = allCached && cached
	}

	if allCached {
		for _, rule := range group {
			actx := root.ForAction(rule.Target.String())
			actx.PostStep(stepName, domain.StepCached)
			_ = actx.Close()
		}
		return nil
	}

	first := group[0]
	proc, err := root.Executor().Start(ctx, ports.Command{
		Argv: first.Tool,
		Dir:  root.RuleCellRoot(),
		Env:  envSlice(first.Env),
	})
	if err != nil {
		return zerr.With(err, "pipeline", first.Pipeline)
	}
	holder := pipeline.NewStateHolder(&toolState{proc: proc})

	stages := make([]pipeline.Stage[*toolState], len(group))
	for i, rule := range group {
		stages[i] = a.pipelineStage(root, rule, keys[i])
	}

	if err := pipeline.Run(ctx, holder, stages...); err != nil {
		return zerr.With(err, "pipeline", first.Pipeline)
	}
	return nil
}

func (a *App) pipelineStage(root *execution.Context, rule *domain.Rule, key domain.RuleKey) pipeline.Stage[*toolState] {
	return func(ctx context.Context, state *toolState) error {
		actx := root.ForAction(rule.Target.String())
		defer actx.Close() //nolint:errcheck // Best effort close in defer

		actx.PostStep(stepName, domain.StepStarted)
		for _, line := range rule.Command {
			if err := state.proc.Send(line); err != nil {
				actx.PostStep(stepName, domain.StepFailed)
				actx.LogError(err, "pipeline stage failed")
				return zerr.With(zerr.Wrap(domain.ErrBuildFailed, err.Error()), "target", rule.Target.String())
			}
		}
		actx.PostStep(stepName, domain.StepFinished)
		return a.record(rule, key)
	}
}

// fingerprint computes the rule's key and checks the store. cached is always
// false under force, but the key is still computed so dependents can resolve
// it.
func (a *App) fingerprint(rule *domain.Rule, force bool) (domain.RuleKey, bool, error) {
	key, err := a.factory.BuildKey(rule)
	if err != nil {
		return domain.RuleKey{}, false, zerr.Wrap(err, "failed to fingerprint rule")
	}
	if force {
		return key, false, nil
	}
	entry, err := a.store.Get(key)
	if err != nil {
		return domain.RuleKey{}, false, zerr.Wrap(err, "failed to query rule key store")
	}
	return key, entry != nil, nil
}

func (a *App) record(rule *domain.Rule, key domain.RuleKey) error {
	err := a.store.Put(domain.CacheEntry{
		Target:    rule.Target.String(),
		RuleKey:   key,
		Timestamp: time.Now(),
	})
	if err != nil {
		return zerr.Wrap(err, "failed to record build result")
	}
	return nil
}

// toolState wraps the pipeline's warm tool process as releasable state.
type toolState struct {
	proc ports.ToolProcess
}

func (s *toolState) Close() error {
	return s.proc.Close()
}

// selectRules resolves the requested targets plus their transitive
// dependencies, in declaration order.
func selectRules(rules *domain.RuleSet, targetNames []string) ([]*domain.Rule, error) {
	if len(targetNames) == 0 {
		return nil, domain.ErrNoTargetsSpecified
	}

	wanted := make(map[domain.BuildTarget]bool)
	var mark func(t domain.BuildTarget) error
	mark = func(t domain.BuildTarget) error {
		if wanted[t] {
			return nil
		}
		rule, err := rules.Get(t)
		if err != nil {
			return err
		}
		wanted[t] = true
		for _, dep := range rule.Deps {
			if err := mark(dep); err != nil {
				return err
			}
		}
		return nil
	}

	for _, name := range targetNames {
		target, err := domain.ParseTarget(name)
		if err != nil {
			return nil, err
		}
		if err := mark(target); err != nil {
			return nil, err
		}
	}

	var selected []*domain.Rule
	for _, rule := range rules.Ordered() {
		if wanted[rule.Target] {
			selected = append(selected, rule)
		}
	}
	return selected, nil
}

// groupByPipeline splits the ordered rules into maximal runs: consecutive
// rules sharing a non-empty pipeline name form one group, everything else
// runs standalone.
func groupByPipeline(rules []*domain.Rule) [][]*domain.Rule {
	var groups [][]*domain.Rule
	for _, rule := range rules {
		n := len(groups)
		if rule.Pipeline != "" && n > 0 {
			last := groups[n-1]
			if last[0].Pipeline == rule.Pipeline {
				groups[n-1] = append(last, rule)
				continue
			}
		}
		groups = append(groups, []*domain.Rule{rule})
	}
	return groups
}

func sourcePaths(rules []*domain.Rule) []string {
	var paths []string
	seen := make(map[string]bool)
	for _, rule := range rules {
		for _, src := range rule.Srcs {
			if !seen[src.String()] {
				seen[src.String()] = true
				paths = append(paths, src.String())
			}
		}
	}
	return paths
}

func envSlice(env map[string]string) []string {
	if len(env) == 0 {
		return nil
	}
	entries := make([]string, 0, len(env))
	for k, v := range env {
		entries = append(entries, k+"="+v)
	}
	return entries
}

package app_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/mason/internal/app"
	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/mason/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// recordingBus collects posted events for assertions.
type recordingBus struct {
	mu     sync.Mutex
	events []domain.Event
}

func (b *recordingBus) Post(e domain.Event) {
	b.mu.Lock()
	b.events = append(b.events, e)
	b.mu.Unlock()
}

func (b *recordingBus) Subscribe(func(domain.Event)) func() { return func() {} }

func (b *recordingBus) statuses(action string) []domain.StepStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []domain.StepStatus
	for _, e := range b.events {
		if step, ok := e.(domain.StepEvent); ok && step.ActionID == action {
			out = append(out, step.Status)
		}
	}
	return out
}

type fixture struct {
	loader   *mocks.MockRuleLoader
	factory  *mocks.MockRuleKeyFactory
	files    *mocks.MockFileHashCache
	store    *mocks.MockRuleKeyStore
	executor *mocks.MockProcessExecutor
	bus      *recordingBus
	app      *app.App
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		loader:   mocks.NewMockRuleLoader(ctrl),
		factory:  mocks.NewMockRuleKeyFactory(ctrl),
		files:    mocks.NewMockFileHashCache(ctrl),
		store:    mocks.NewMockRuleKeyStore(ctrl),
		executor: mocks.NewMockProcessExecutor(ctrl),
		bus:      &recordingBus{},
	}

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	f.executor.EXPECT().WithStreams(gomock.Any(), gomock.Any()).Return(f.executor).AnyTimes()
	f.files.EXPECT().Prime(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.app = app.New(f.loader, f.factory, f.files, f.store, f.executor, f.bus, log)
	return f
}

func key(t *testing.T, hex string) domain.RuleKey {
	t.Helper()
	k, err := domain.NewRuleKey(hex)
	if err != nil {
		t.Fatalf("NewRuleKey failed: %v", err)
	}
	return k
}

func ruleSet(t *testing.T, rules ...*domain.Rule) *domain.RuleSet {
	t.Helper()
	rs := domain.NewRuleSet()
	for _, r := range rules {
		require.NoError(t, rs.Add(r))
	}
	return rs
}

func libRule(name string, deps ...string) *domain.Rule {
	targets := make([]domain.BuildTarget, len(deps))
	for i, d := range deps {
		targets[i] = domain.MustParseTarget(d)
	}
	return &domain.Rule{
		Target:  domain.MustParseTarget(name),
		Type:    "genrule",
		Deps:    targets,
		Command: []string{"build", name},
	}
}

func TestApp_Run_NoTargets(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(ruleSet(t), nil)

	err := f.app.Run(context.Background(), nil, false)
	require.ErrorIs(t, err, domain.ErrNoTargetsSpecified)
}

func TestApp_Run_UnknownTarget(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(ruleSet(t, libRule("//lib:a")), nil)

	err := f.app.Run(context.Background(), []string{"//lib:missing"}, false)
	require.ErrorIs(t, err, domain.ErrUnknownTarget)
}

func TestApp_Run_BuildsDependencyClosureInOrder(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(ruleSet(t,
		libRule("//lib:a"),
		libRule("//lib:unrelated"),
		libRule("//lib:b", "//lib:a"),
	), nil)

	keyA := key(t, "aa00000000000000")
	keyB := key(t, "bb00000000000000")
	gomock.InOrder(
		f.factory.EXPECT().BuildKey(gomock.Any()).Return(keyA, nil),
		f.factory.EXPECT().BuildKey(gomock.Any()).Return(keyB, nil),
	)
	f.store.EXPECT().Get(keyA).Return(nil, nil)
	f.store.EXPECT().Get(keyB).Return(nil, nil)

	var ran []string
	f.executor.EXPECT().Run(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd ports.Command) error {
			ran = append(ran, cmd.Argv[1])
			return nil
		}).Times(2)
	f.store.EXPECT().Put(gomock.Any()).Return(nil).Times(2)

	// Requesting only b pulls in a, skips the unrelated rule, and builds
	// the dependency first.
	require.NoError(t, f.app.Run(context.Background(), []string{"//lib:b"}, false))
	require.Equal(t, []string{"//lib:a", "//lib:b"}, ran)

	require.Equal(t,
		[]domain.StepStatus{domain.StepStarted, domain.StepFinished},
		f.bus.statuses("//lib:b"))
}

func TestApp_Run_CacheHitSkipsExecution(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(ruleSet(t, libRule("//lib:a")), nil)

	keyA := key(t, "aa00000000000000")
	f.factory.EXPECT().BuildKey(gomock.Any()).Return(keyA, nil)
	f.store.EXPECT().Get(keyA).Return(&domain.CacheEntry{
		Target:    "//lib:a",
		RuleKey:   keyA,
		Timestamp: time.Now(),
	}, nil)

	require.NoError(t, f.app.Run(context.Background(), []string{"//lib:a"}, false))
	require.Equal(t, []domain.StepStatus{domain.StepCached}, f.bus.statuses("//lib:a"))
}

func TestApp_Run_ForceBypassesCache(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(ruleSet(t, libRule("//lib:a")), nil)

	keyA := key(t, "aa00000000000000")
	f.factory.EXPECT().BuildKey(gomock.Any()).Return(keyA, nil)
	f.executor.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil)
	f.store.EXPECT().Put(gomock.Any()).Return(nil)

	require.NoError(t, f.app.Run(context.Background(), []string{"//lib:a"}, true))
}

func TestApp_Run_FailedActionStopsBuild(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(ruleSet(t,
		libRule("//lib:a"),
		libRule("//lib:b", "//lib:a"),
	), nil)

	keyA := key(t, "aa00000000000000")
	f.factory.EXPECT().BuildKey(gomock.Any()).Return(keyA, nil)
	f.store.EXPECT().Get(keyA).Return(nil, nil)
	f.executor.EXPECT().Run(gomock.Any(), gomock.Any()).
		Return(domain.ErrBuildFailed)

	err := f.app.Run(context.Background(), []string{"//lib:b"}, false)
	require.ErrorIs(t, err, domain.ErrBuildFailed)
	require.Equal(t,
		[]domain.StepStatus{domain.StepStarted, domain.StepFailed},
		f.bus.statuses("//lib:a"))
	require.Empty(t, f.bus.statuses("//lib:b"))
}

func pipelineRule(name, pipeline string, cmds ...string) *domain.Rule {
	return &domain.Rule{
		Target:   domain.MustParseTarget(name),
		Type:     "cxx_pipeline",
		Command:  cmds,
		Pipeline: pipeline,
		Tool:     []string{"cc-server"},
	}
}

func TestApp_Run_PipelineSharesOneTool(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(ruleSet(t,
		pipelineRule("//lib:c1", "cxx", "compile c1"),
		pipelineRule("//lib:c2", "cxx", "compile c2"),
	), nil)

	key1 := key(t, "c100000000000000")
	key2 := key(t, "c200000000000000")
	gomock.InOrder(
		f.factory.EXPECT().BuildKey(gomock.Any()).Return(key1, nil),
		f.factory.EXPECT().BuildKey(gomock.Any()).Return(key2, nil),
	)
	f.store.EXPECT().Get(key1).Return(nil, nil)
	f.store.EXPECT().Get(key2).Return(nil, nil)

	ctrl := gomock.NewController(t)
	proc := mocks.NewMockToolProcess(ctrl)
	gomock.InOrder(
		proc.EXPECT().Send("compile c1").Return(nil),
		proc.EXPECT().Send("compile c2").Return(nil),
		proc.EXPECT().Close().Return(nil),
	)

	f.executor.EXPECT().Start(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd ports.Command) (ports.ToolProcess, error) {
			require.Equal(t, []string{"cc-server"}, cmd.Argv)
			return proc, nil
		}).Times(1)
	f.store.EXPECT().Put(gomock.Any()).Return(nil).Times(2)

	require.NoError(t, f.app.Run(context.Background(), []string{"//lib:c1", "//lib:c2"}, false))
	require.Equal(t,
		[]domain.StepStatus{domain.StepStarted, domain.StepFinished},
		f.bus.statuses("//lib:c2"))
}

func TestApp_Run_FullyCachedPipelineNeverStartsTool(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(ruleSet(t,
		pipelineRule("//lib:c1", "cxx", "compile c1"),
		pipelineRule("//lib:c2", "cxx", "compile c2"),
	), nil)

	key1 := key(t, "c100000000000000")
	key2 := key(t, "c200000000000000")
	f.factory.EXPECT().BuildKey(gomock.Any()).Return(key1, nil)
	f.factory.EXPECT().BuildKey(gomock.Any()).Return(key2, nil)
	f.store.EXPECT().Get(key1).Return(&domain.CacheEntry{RuleKey: key1}, nil)
	f.store.EXPECT().Get(key2).Return(&domain.CacheEntry{RuleKey: key2}, nil)

	require.NoError(t, f.app.Run(context.Background(), []string{"//lib:c1", "//lib:c2"}, false))
	require.Equal(t, []domain.StepStatus{domain.StepCached}, f.bus.statuses("//lib:c1"))
	require.Equal(t, []domain.StepStatus{domain.StepCached}, f.bus.statuses("//lib:c2"))
}

func TestApp_Run_PartiallyCachedPipelineRunsWholeGroup(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(ruleSet(t,
		pipelineRule("//lib:c1", "cxx", "compile c1"),
		pipelineRule("//lib:c2", "cxx", "compile c2"),
	), nil)

	key1 := key(t, "c100000000000000")
	key2 := key(t, "c200000000000000")
	f.factory.EXPECT().BuildKey(gomock.Any()).Return(key1, nil)
	f.factory.EXPECT().BuildKey(gomock.Any()).Return(key2, nil)
	f.store.EXPECT().Get(key1).Return(&domain.CacheEntry{RuleKey: key1}, nil)
	f.store.EXPECT().Get(key2).Return(nil, nil)

	ctrl := gomock.NewController(t)
	proc := mocks.NewMockToolProcess(ctrl)
	proc.EXPECT().Send(gomock.Any()).Return(nil).Times(2)
	proc.EXPECT().Close().Return(nil)

	f.executor.EXPECT().Start(gomock.Any(), gomock.Any()).Return(proc, nil)
	f.store.EXPECT().Put(gomock.Any()).Return(nil).Times(2)

	require.NoError(t, f.app.Run(context.Background(), []string{"//lib:c1", "//lib:c2"}, false))
}

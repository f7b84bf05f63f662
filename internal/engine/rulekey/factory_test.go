package rulekey_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/engine/rulekey"
)

func ruleA() *domain.Rule {
	return &domain.Rule{
		Target:  domain.MustParseTarget("//lib:a"),
		Type:    "genrule",
		Srcs:    []domain.InternedString{domain.NewInternedString("path1")},
		Command: []string{"cp", "path1", "out"},
	}
}

func ruleB() *domain.Rule {
	return &domain.Rule{
		Target:  domain.MustParseTarget("//lib:b"),
		Type:    "genrule",
		Srcs:    []domain.InternedString{domain.NewInternedString("path2")},
		Deps:    []domain.BuildTarget{domain.MustParseTarget("//lib:a")},
		Command: []string{"cat", "path2"},
	}
}

func TestFactory_DependencyOpacity(t *testing.T) {
	// B depends on A. B's key must follow A's finalized key and B's own
	// inputs, and nothing else: as long as A's key is pinned, A's internals
	// are invisible to B.
	files := testFiles()

	factory := rulekey.NewFactory(rulekey.NewSHA256, files, rulekey.NewKeyChain())
	keyA, err := factory.BuildKey(ruleA())
	require.NoError(t, err)
	keyB, err := factory.BuildKey(ruleB())
	require.NoError(t, err)

	// A's source changes while A's finalized key is pinned in the chain:
	// B must not notice.
	pinned := rulekey.NewKeyChain()
	pinned.Put(domain.MustParseTarget("//lib:a"), keyA)
	changed := testFiles()
	changed.files["path1"] = "ffffffffffffffff"
	repinned := rulekey.NewFactory(rulekey.NewSHA256, changed, pinned)
	keyB2, err := repinned.BuildKey(ruleB())
	require.NoError(t, err)
	require.Equal(t, keyB, keyB2)

	// A's source change propagated through A's key: B changes.
	refreshed := rulekey.NewFactory(rulekey.NewSHA256, changed, rulekey.NewKeyChain())
	keyA2, err := refreshed.BuildKey(ruleA())
	require.NoError(t, err)
	require.NotEqual(t, keyA, keyA2)
	keyB3, err := refreshed.BuildKey(ruleB())
	require.NoError(t, err)
	require.NotEqual(t, keyB, keyB3)

	// B's own source changes: B changes, A does not.
	changedB := testFiles()
	changedB.files["path2"] = "ffffffffffffffff"
	again := rulekey.NewFactory(rulekey.NewSHA256, changedB, rulekey.NewKeyChain())
	keyA3, err := again.BuildKey(ruleA())
	require.NoError(t, err)
	require.Equal(t, keyA, keyA3)
	keyB4, err := again.BuildKey(ruleB())
	require.NoError(t, err)
	require.NotEqual(t, keyB, keyB4)
}

func TestFactory_DeterministicAcrossInstances(t *testing.T) {
	compute := func() domain.RuleKey {
		factory := rulekey.NewFactory(rulekey.NewSHA256, testFiles(), rulekey.NewKeyChain())
		_, err := factory.BuildKey(ruleA())
		require.NoError(t, err)
		key, err := factory.BuildKey(ruleB())
		require.NoError(t, err)
		return key
	}
	require.Equal(t, compute(), compute())
}

func TestFactory_DependencyOrderIrrelevant(t *testing.T) {
	depA := domain.MustParseTarget("//lib:a")
	depC := domain.MustParseTarget("//lib:c")

	chain := rulekey.NewKeyChain()
	chain.Put(depA, ruleKey1)
	chain.Put(depC, ruleKey2)

	buildWith := func(deps []domain.BuildTarget) domain.RuleKey {
		factory := rulekey.NewFactory(rulekey.NewSHA256, testFiles(), chain)
		key, err := factory.BuildKey(&domain.Rule{
			Target:  domain.MustParseTarget("//lib:b"),
			Type:    "genrule",
			Deps:    deps,
			Command: []string{"true"},
		})
		require.NoError(t, err)
		return key
	}

	require.Equal(t,
		buildWith([]domain.BuildTarget{depA, depC}),
		buildWith([]domain.BuildTarget{depC, depA}))
}

func TestFactory_RejectsIncompleteRules(t *testing.T) {
	factory := rulekey.NewFactory(rulekey.NewSHA256, testFiles(), rulekey.NewKeyChain())

	_, err := factory.BuildKey(&domain.Rule{Type: "genrule"})
	require.ErrorIs(t, err, domain.ErrMissingField)

	_, err = factory.BuildKey(&domain.Rule{Target: domain.MustParseTarget("//lib:x")})
	require.ErrorIs(t, err, domain.ErrMissingField)
}

func TestFactory_ExplainKeyMatchesBuildKey(t *testing.T) {
	factory := rulekey.NewFactory(rulekey.NewSHA256, testFiles(), rulekey.NewKeyChain())

	built, err := factory.BuildKey(ruleA())
	require.NoError(t, err)

	explained, capture, err := factory.ExplainKey(ruleA())
	require.NoError(t, err)
	require.Equal(t, built, explained)
	require.NotEmpty(t, capture.Entries())
}

func TestFactory_PipelineStageAffectsKey(t *testing.T) {
	factory := rulekey.NewFactory(rulekey.NewSHA256, testFiles(), rulekey.NewKeyChain())

	plain, err := factory.BuildKey(ruleA())
	require.NoError(t, err)

	piped := ruleA()
	piped.Pipeline = "cxx-compile"
	piped.Tool = []string{"compiler", "--serve"}
	pipedKey, err := factory.BuildKey(piped)
	require.NoError(t, err)
	require.NotEqual(t, plain, pipedKey)
}

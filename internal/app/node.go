package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mason/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/mason/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/mason/internal/adapters/eventbus"  //nolint:depguard // Wired in app layer
	"go.trai.ch/mason/internal/adapters/hashcache" //nolint:depguard // Wired in app layer
	"go.trai.ch/mason/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/mason/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/mason/internal/engine/rulekey"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			rulekey.NodeID,
			hashcache.NodeID,
			cas.NodeID,
			shell.NodeID,
			eventbus.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
			rulekey.NodeID,
			hashcache.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.RuleLoader](ctx)
	if err != nil {
		return nil, err
	}

	factory, err := graft.Dep[*rulekey.Factory](ctx)
	if err != nil {
		return nil, err
	}

	files, err := graft.Dep[ports.FileHashCache](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.RuleKeyStore](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.ProcessExecutor](ctx)
	if err != nil {
		return nil, err
	}

	bus, err := graft.Dep[ports.EventBus](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, factory, files, store, executor, bus, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[ports.RuleLoader](ctx)
	if err != nil {
		return nil, err
	}

	keys, err := graft.Dep[*rulekey.Factory](ctx)
	if err != nil {
		return nil, err
	}

	files, err := graft.Dep[ports.FileHashCache](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
		Loader: loader,
		Keys:   keys,
		Files:  files,
	}, nil
}

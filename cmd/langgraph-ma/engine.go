package main

import (
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/google/uuid"

	"github.com/denisogg/langgraph-ma/internal/config"
	"github.com/denisogg/langgraph-ma/internal/decompose"
	"github.com/denisogg/langgraph-ma/internal/extract"
	"github.com/denisogg/langgraph-ma/internal/knowledge"
	"github.com/denisogg/langgraph-ma/internal/llm"
	"github.com/denisogg/langgraph-ma/internal/orchestrator"
	"github.com/denisogg/langgraph-ma/internal/plan"
	"github.com/denisogg/langgraph-ma/internal/registry"
	"github.com/denisogg/langgraph-ma/internal/tools"
	"github.com/denisogg/langgraph-ma/internal/usage"
	"github.com/denisogg/langgraph-ma/pkg/models"
)

// engine wires the analysis pipeline and its supporting stores together
// from loaded configuration.
type engine struct {
	cfg        *config.Config
	registry   *registry.Registry
	catalog    *knowledge.Catalog
	store      *usage.Store
	tracker    *usage.Tracker
	extractor  *extract.Extractor
	decomposer *decompose.Decomposer
	planner    *plan.Builder
	logger     *orchestrator.DebugLogger
}

// newEngine builds an engine from loaded config. An explicit sessionID
// overrides the configured one; empty with no config generates a fresh ID.
func newEngine(sessionID string) (*engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	var reg *registry.Registry
	if cfg.Paths.Agents != "" {
		reg, err = registry.Load(cfg.Paths.Agents)
		if err != nil {
			return nil, fmt.Errorf("load agent catalog: %w", err)
		}
	} else {
		reg = registry.New()
	}

	catalog := knowledge.Empty()
	if cfg.Paths.Knowledge != "" {
		catalog, err = knowledge.Load(cfg.Paths.Knowledge)
		if err != nil {
			return nil, fmt.Errorf("load knowledge catalog: %w", err)
		}
	}

	dbPath := cfg.Paths.UsageDB
	if dbPath == "" {
		dbPath = usage.DefaultDBPath()
	}
	store, err := usage.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open usage store: %w", err)
	}
	if err := store.Migrate(); err != nil {
		store.Close()
		return nil, fmt.Errorf("migrate usage store: %w", err)
	}

	if sessionID == "" {
		sessionID = cfg.Session.ID
	}
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	tracker, err := usage.NewTracker(store, sessionID)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("create usage tracker: %w", err)
	}

	logger, err := orchestrator.NewDebugLogger(cfg.Paths.DebugLog)
	if err != nil {
		// Debug logging is optional
		fmt.Fprintf(os.Stderr, "Warning: debug log unavailable: %v\n", err)
		logger = nil
	}

	return &engine{
		cfg:        cfg,
		registry:   reg,
		catalog:    catalog,
		store:      store,
		tracker:    tracker,
		extractor:  extract.New(reg, extract.WithKnowledge(catalog)),
		decomposer: decompose.New(reg, catalog),
		planner:    plan.New(reg),
		logger:     logger,
	}, nil
}

// analyze runs the request through extraction, decomposition, and planning.
func (e *engine) analyze(text string) (models.Entities, []models.Intent, []models.QueryComponent, *models.ExecutionPlan) {
	entities, intents := e.extractor.Extract(text)
	components := e.decomposer.Decompose(text, entities, intents)
	return entities, intents, components, e.planner.Build(components)
}

// newOrchestrator builds an orchestrator with the API client and the tool
// set the configuration allows. The executor is returned alongside so
// callers can check tool availability against a plan.
func (e *engine) newOrchestrator() (*orchestrator.Orchestrator, *tools.Executor, error) {
	apiKey, _ := e.cfg.GetAPIKey()
	client, err := llm.NewClient(llm.ClientConfig{
		Model:         anthropic.Model(e.cfg.Anthropic.Model),
		APIKey:        apiKey,
		UseAWSBedrock: e.cfg.Anthropic.UseAWSBedrock,
		AWSRegion:     e.cfg.Anthropic.AWSRegion,
		AWSProfile:    e.cfg.Anthropic.AWSProfile,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create API client: %w", err)
	}

	var toolSet []tools.Tool
	if tavilyKey, err := e.cfg.GetTavilyKey(); err == nil {
		toolSet = append(toolSet, tools.NewWebSearch(tavilyKey, nil))
	} else {
		fmt.Fprintln(os.Stderr, "Warning: TAVILY_API_KEY not set, web search disabled")
	}
	if len(e.catalog.SourceNames()) > 0 {
		toolSet = append(toolSet, tools.NewKnowledgebase(e.catalog))
	}

	exec := tools.NewExecutor(e.tracker, toolSet...)
	if e.cfg.Timeouts.Tool > 0 {
		exec.SetTimeout(e.cfg.Timeouts.Tool)
	}

	opts := []orchestrator.Option{orchestrator.WithKnowledge(e.catalog)}
	if e.logger != nil {
		opts = append(opts, orchestrator.WithLogger(e.logger))
	}
	if e.cfg.Timeouts.Agent > 0 {
		opts = append(opts, orchestrator.WithAgentTimeout(e.cfg.Timeouts.Agent))
	}

	return orchestrator.New(e.registry, client, exec, opts...), exec, nil
}

// warnUnavailableTools reports planned tools no registered tool serves.
// The run proceeds; the executor records them as error outputs.
func warnUnavailableTools(exec *tools.Executor, p *models.ExecutionPlan) {
	for _, name := range p.ToolsNeeded {
		if !exec.Has(name) {
			fmt.Fprintf(os.Stderr, "Warning: tool %q is not available for this request\n", name)
		}
	}
}

// Close releases the engine's resources.
func (e *engine) Close() {
	e.registry.Close()
	if e.logger != nil {
		e.logger.Close()
	}
	e.store.Close()
}

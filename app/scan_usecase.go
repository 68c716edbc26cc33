package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ludo-technologies/brainscan/domain"
	"github.com/ludo-technologies/brainscan/internal/checks"
	"github.com/ludo-technologies/brainscan/internal/config"
	"github.com/ludo-technologies/brainscan/internal/version"
	"github.com/ludo-technologies/brainscan/service"
)

// LayerExecutor runs layer tasks and returns their results in task order
type LayerExecutor interface {
	Execute(ctx context.Context, tasks []domain.ExecutableTask) ([]*domain.LayerResult, error)
}

// ScanConfig holds the settings the orchestrator itself reads
type ScanConfig struct {
	TopFixes       int
	HistoryEnabled bool
	DisabledLayers []string
}

// ScanConfigFrom extracts orchestrator settings from the loaded config
func ScanConfigFrom(cfg *config.Config) ScanConfig {
	return ScanConfig{
		TopFixes:       cfg.Scan.TopFixes,
		HistoryEnabled: cfg.History.Enabled,
		DisabledLayers: cfg.Scan.DisabledLayers,
	}
}

// ScanUseCase orchestrates one scan of a workspace
type ScanUseCase struct {
	layers     []domain.LayerCheck
	detector   *service.BrainStateDetector
	executor   LayerExecutor
	mapper     *service.PatternMapper
	ranker     *service.FixRanker
	history    *service.HistoryStore
	fileHelper *FileHelper
	logger     *zap.Logger
	config     ScanConfig
	now        func() time.Time
}

// Execute validates root, detects the brain state and, in full mode, runs
// every enabled layer, aggregates dimensions, maps patterns, ranks fixes and
// appends the run to history. Layer failures lower the score but never fail
// the run; an invalid root or an expired scan budget does.
func (uc *ScanUseCase) Execute(ctx context.Context, root string, mode domain.ScanMode) (*domain.Report, error) {
	start := uc.now()

	absRoot, err := uc.fileHelper.ResolveRoot(root)
	if err != nil {
		return nil, err
	}

	if mode == "" {
		mode = domain.ScanModeFull
	}
	if _, ok := domain.ParseScanMode(string(mode)); !ok {
		return nil, fmt.Errorf("unknown scan mode %q", mode)
	}

	state := uc.detector.Detect(absRoot)
	uc.logger.Debug("brain state detected",
		zap.String("path", absRoot),
		zap.String("maturity", string(state.Maturity)))

	report := &domain.Report{
		RunID:      uuid.NewString(),
		Path:       absRoot,
		Timestamp:  start,
		Mode:       mode,
		Version:    version.GetVersion(),
		BrainState: state,
		CEPatterns: []domain.Pattern{},
		TopFixes:   []domain.Fix{},
	}

	if mode == domain.ScanModeQuick {
		report.Setup = domain.EmptyDimension(domain.DimensionSetup)
		report.Usage = domain.EmptyDimension(domain.DimensionUsage)
		report.Fluency = domain.EmptyDimension(domain.DimensionFluency)
		report.DurationMs = uc.now().Sub(start).Milliseconds()
		return report, nil
	}

	layers, err := uc.runLayers(ctx, absRoot)
	if err != nil {
		return nil, err
	}

	byDim := make(map[domain.DimensionID][]domain.LayerResult, 3)
	for _, l := range layers {
		byDim[l.Dimension] = append(byDim[l.Dimension], *l)
	}
	report.Setup = domain.NewDimension(domain.DimensionSetup, byDim[domain.DimensionSetup])
	report.Usage = domain.NewDimension(domain.DimensionUsage, byDim[domain.DimensionUsage])
	report.Fluency = domain.NewDimension(domain.DimensionFluency, byDim[domain.DimensionFluency])

	dims := report.Dimensions()
	report.CEPatterns = uc.mapper.Map(dims...)
	report.TopFixes = uc.ranker.Rank(uc.config.TopFixes, dims...)
	report.DurationMs = uc.now().Sub(start).Milliseconds()

	uc.logger.Debug("scan complete",
		zap.String("run_id", report.RunID),
		zap.Int("overall", report.OverallScore()),
		zap.Int64("duration_ms", report.DurationMs))

	if uc.config.HistoryEnabled {
		if path, err := uc.history.Append(report); err != nil {
			uc.logger.Warn("failed to record run history", zap.Error(err))
		} else {
			uc.logger.Debug("run recorded", zap.String("history", path))
		}
	}

	return report, nil
}

// runLayers executes every enabled layer. Layer failures arrive as fallback
// results and are only logged.
func (uc *ScanUseCase) runLayers(ctx context.Context, root string) ([]*domain.LayerResult, error) {
	tasks := make([]domain.ExecutableTask, 0, len(uc.layers))
	for _, l := range uc.layers {
		tasks = append(tasks, service.NewLayerTask(l, root, !uc.isDisabled(l.ID())))
	}

	results, err := uc.executor.Execute(ctx, tasks)

	var aggregated *service.AggregatedError
	switch {
	case err == nil:
	case errors.As(err, &aggregated):
		for _, te := range aggregated.Errors {
			uc.logger.Warn("layer failed", zap.String("layer", te.TaskName), zap.Error(te.Err))
		}
	default:
		return nil, fmt.Errorf("scan of %s failed: %w", root, err)
	}
	return results, nil
}

func (uc *ScanUseCase) isDisabled(id string) bool {
	for _, d := range uc.config.DisabledLayers {
		if d == id {
			return true
		}
	}
	return false
}

// ScanUseCaseBuilder builds a ScanUseCase
type ScanUseCaseBuilder struct {
	layers     []domain.LayerCheck
	detector   *service.BrainStateDetector
	executor   LayerExecutor
	mapper     *service.PatternMapper
	ranker     *service.FixRanker
	history    *service.HistoryStore
	fileHelper *FileHelper
	logger     *zap.Logger
	config     *ScanConfig
	now        func() time.Time
}

// NewScanUseCaseBuilder creates a new builder
func NewScanUseCaseBuilder() *ScanUseCaseBuilder {
	return &ScanUseCaseBuilder{}
}

// WithLayers sets the layer checks to run
func (b *ScanUseCaseBuilder) WithLayers(layers []domain.LayerCheck) *ScanUseCaseBuilder {
	b.layers = layers
	return b
}

// WithDetector sets the brain state detector
func (b *ScanUseCaseBuilder) WithDetector(d *service.BrainStateDetector) *ScanUseCaseBuilder {
	b.detector = d
	return b
}

// WithExecutor sets the layer executor
func (b *ScanUseCaseBuilder) WithExecutor(e LayerExecutor) *ScanUseCaseBuilder {
	b.executor = e
	return b
}

// WithPatternMapper sets the pattern mapper
func (b *ScanUseCaseBuilder) WithPatternMapper(m *service.PatternMapper) *ScanUseCaseBuilder {
	b.mapper = m
	return b
}

// WithFixRanker sets the fix ranker
func (b *ScanUseCaseBuilder) WithFixRanker(r *service.FixRanker) *ScanUseCaseBuilder {
	b.ranker = r
	return b
}

// WithHistoryStore sets the history store
func (b *ScanUseCaseBuilder) WithHistoryStore(h *service.HistoryStore) *ScanUseCaseBuilder {
	b.history = h
	return b
}

// WithLogger sets the logger
func (b *ScanUseCaseBuilder) WithLogger(l *zap.Logger) *ScanUseCaseBuilder {
	b.logger = l
	return b
}

// WithConfig sets the orchestrator settings
func (b *ScanUseCaseBuilder) WithConfig(cfg ScanConfig) *ScanUseCaseBuilder {
	b.config = &cfg
	return b
}

// WithClock overrides the time source
func (b *ScanUseCaseBuilder) WithClock(now func() time.Time) *ScanUseCaseBuilder {
	b.now = now
	return b
}

// Build creates the ScanUseCase, filling unset collaborators with defaults
func (b *ScanUseCaseBuilder) Build() (*ScanUseCase, error) {
	uc := &ScanUseCase{
		layers:     b.layers,
		detector:   b.detector,
		executor:   b.executor,
		mapper:     b.mapper,
		ranker:     b.ranker,
		history:    b.history,
		fileHelper: b.fileHelper,
		logger:     b.logger,
		now:        b.now,
	}

	if uc.logger == nil {
		uc.logger = zap.NewNop()
	}
	if b.config != nil {
		uc.config = *b.config
	} else {
		uc.config = ScanConfig{TopFixes: config.DefaultTopFixes, HistoryEnabled: true}
	}
	if uc.layers == nil {
		uc.layers = checks.LayerChecks(checks.Options{})
	}
	if err := validateLayerIDs(uc.layers); err != nil {
		return nil, err
	}
	if uc.history == nil {
		uc.history = service.NewHistoryStore(uc.logger)
	}
	if uc.detector == nil {
		uc.detector = service.NewBrainStateDetector(service.DetectorConfigFrom(nil), uc.history)
	}
	if uc.executor == nil {
		uc.executor = service.NewParallelExecutor()
	}
	if uc.mapper == nil {
		uc.mapper = service.NewPatternMapper()
	}
	if uc.ranker == nil {
		uc.ranker = service.NewFixRanker(nil)
	}
	if uc.fileHelper == nil {
		uc.fileHelper = NewFileHelper()
	}
	if uc.now == nil {
		uc.now = time.Now
	}

	return uc, nil
}

// validateLayerIDs rejects catalogs where two layers share an ID, since
// patterns and history both key on it
func validateLayerIDs(layers []domain.LayerCheck) error {
	seen := make(map[string]bool, len(layers))
	for _, l := range layers {
		if l.ID() == "" {
			return fmt.Errorf("layer %q has an empty ID", l.Name())
		}
		if seen[l.ID()] {
			return fmt.Errorf("duplicate layer ID %q", l.ID())
		}
		seen[l.ID()] = true
	}
	return nil
}

// NewScanUseCaseFromConfig wires the reference catalog and every service
// from a loaded configuration
func NewScanUseCaseFromConfig(cfg *config.Config, logger *zap.Logger, progress domain.ProgressManager) (*ScanUseCase, error) {
	history := service.NewHistoryStore(logger)

	executor := service.NewParallelExecutorFromConfig(&cfg.Performance)
	if progress != nil {
		executor = service.NewParallelExecutorWithProgress(&cfg.Performance, progress)
	}

	return NewScanUseCaseBuilder().
		WithLayers(checks.LayerChecks(checks.Options{ExcludePatterns: cfg.Scan.ExcludePatterns})).
		WithDetector(service.NewBrainStateDetector(service.DetectorConfigFrom(cfg), history)).
		WithExecutor(executor).
		WithHistoryStore(history).
		WithLogger(logger).
		WithConfig(ScanConfigFrom(cfg)).
		Build()
}

var _ domain.ScanService = (*ScanUseCase)(nil)

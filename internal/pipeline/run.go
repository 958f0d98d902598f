// Package pipeline provides the high-level orchestration for one outreach
// run: structure the resume, enumerate every configured source, then
// resolve, summarize, and synthesize each discovered faculty stub. The
// orchestrator is the only component with cross-record state.
package pipeline

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/config"
	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/fetch"
	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/llm"
	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/logger"
	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/outreach"
	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/profile"
	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/ratelimit"
	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/resume"
	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/sources"
	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/summarize"
	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/types"
)

// Phase is the run state. Transitions are strictly forward; only a fatal
// resume parse failure ends a run before Done.
type Phase string

// Run phases.
const (
	PhaseIdle              Phase = "idle"
	PhaseResumeStructured  Phase = "resume_structured"
	PhaseSourcesEnumerated Phase = "sources_enumerated"
	PhaseSynthesizing      Phase = "synthesizing"
	PhaseDone              Phase = "done"
)

// Runner drives one pipeline run. All external dependencies are injected
// at construction; nothing performs hidden global lookups.
type Runner struct {
	cfg         config.Config
	client      llm.Client
	fetcher     *profile.Fetcher
	summarizer  *summarize.Summarizer
	synthesizer *outreach.Synthesizer
	fetchClient *fetch.Client
	log         *zap.Logger

	mu    sync.Mutex
	phase Phase
}

// New wires a Runner from config and a text-generation client. The shared
// limiter built here gates both the HTTP fetcher and every generation
// call, process-wide.
func New(cfg config.Config, client llm.Client, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}

	limiter := ratelimit.New(cfg.MaxConcurrentCalls, cfg.CallsPerSecond)
	limited := llm.WithLimiter(client, limiter)

	fetchOpts := fetch.DefaultOptions()
	fetchOpts.MaxAttempts = cfg.FetchMaxAttempts
	fetchOpts.Backoff = cfg.FetchBackoff()
	fetchClient := fetch.NewClient(fetchOpts, limiter)

	return &Runner{
		cfg:         cfg,
		client:      limited,
		fetcher:     profile.NewFetcher(fetchClient, log),
		summarizer:  summarize.NewSummarizer(limited, cfg.SummaryMinInputLen, cfg.SummaryMaxLen, log),
		synthesizer: outreach.NewSynthesizer(limited, log),
		fetchClient: fetchClient,
		log:         log,
		phase:       PhaseIdle,
	}
}

// Phase returns the runner's current phase.
func (r *Runner) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

func (r *Runner) setPhase(p Phase) {
	r.mu.Lock()
	r.phase = p
	r.mu.Unlock()
	r.log.Info("phase transition", zap.String("phase", string(p)))
}

// Run executes the pipeline against the given resume text. The returned
// report always contains exactly one record per discovered stub; the only
// error a run can return besides context setup problems is the fatal
// resume.ParseError, in which case zero records exist.
func (r *Runner) Run(ctx context.Context, resumeText string) (*types.RunReport, error) {
	runID := uuid.New()
	log := r.log.With(zap.String("run_id", runID.String()))

	if timeout := r.cfg.RunTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	// Idle -> ResumeStructured. Fatal on parse failure; there is no
	// per-faculty personalization without the applicant profile.
	applicant, err := resume.Structure(ctx, r.client, resumeText)
	if err != nil {
		return nil, err
	}
	r.setPhase(PhaseResumeStructured)
	log.Info("resume structured",
		zap.String("applicant", applicant.Name),
		zap.Int("skills", len(applicant.Skills)),
	)

	// ResumeStructured -> SourcesEnumerated. A failing source records its
	// error and contributes zero stubs; siblings are unaffected.
	results := r.enumerateSources(ctx, log)
	r.setPhase(PhaseSourcesEnumerated)

	// SourcesEnumerated -> Synthesizing -> Done.
	r.setPhase(PhaseSynthesizing)
	records := r.processStubs(ctx, results, applicant, log)
	r.setPhase(PhaseDone)

	report := &types.RunReport{
		RunID:        runID.String(),
		Applicant:    applicant,
		Records:      records,
		Sources:      results,
		SourceErrors: make(map[string]error),
	}
	for _, res := range results {
		if res.Err != nil {
			report.SourceErrors[res.Spec.InstitutionName] = res.Err
		}
	}

	counts := report.CountByStatus()
	log.Info("run finished",
		zap.Int("records", len(report.Records)),
		zap.Int("complete", counts[types.StatusComplete]),
		zap.Int("partial", counts[types.StatusPartial]),
		zap.Int("failed", counts[types.StatusFailed]),
		zap.Int("failed_sources", len(report.SourceErrors)),
	)

	return report, nil
}

// enumerateSources runs every configured source concurrently, preserving
// configuration order in the returned slice.
func (r *Runner) enumerateSources(ctx context.Context, log *zap.Logger) []types.SourceResult {
	results := make([]types.SourceResult, len(r.cfg.Sources))

	g := &errgroup.Group{}
	if r.cfg.SourceWorkers > 0 {
		g.SetLimit(r.cfg.SourceWorkers)
	}

	for i, spec := range r.cfg.Sources {
		g.Go(func() error {
			stubs, err := sources.Enumerate(ctx, r.fetchClient, spec, sources.EnumerateOptions{
				UseBrowser: r.cfg.UseBrowser,
			})
			results[i] = types.SourceResult{Spec: spec, Stubs: stubs, Err: err}
			if err != nil {
				log.Warn("source enumeration failed",
					zap.String("institution", spec.InstitutionName),
					zap.Error(err),
				)
				return nil
			}
			log.Info("source enumerated",
				zap.String("institution", spec.InstitutionName),
				zap.Int("stubs", len(stubs)),
			)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// processStubs fans out per-faculty work and assembles exactly one record
// per stub, in discovery order. Workers write to disjoint slice indexes,
// so record assembly needs no lock.
func (r *Runner) processStubs(ctx context.Context, results []types.SourceResult, applicant *types.ApplicantProfile, log *zap.Logger) []types.OutreachRecord {
	var stubs []types.FacultyStub
	for _, res := range results {
		stubs = append(stubs, res.Stubs...)
	}

	records := make([]types.OutreachRecord, len(stubs))

	g := &errgroup.Group{}
	if r.cfg.RecordWorkers > 0 {
		g.SetLimit(r.cfg.RecordWorkers)
	}

	for i, stub := range stubs {
		g.Go(func() error {
			records[i] = r.processStub(ctx, stub, applicant, log)
			return nil
		})
	}
	_ = g.Wait()

	return records
}

// processStub runs the causal chain fetch -> summarize -> synthesize for
// one stub. Every outcome is a well-formed record; a stub abandoned
// before its profile resolved is emitted as failed with placeholder
// fields so the output count invariant holds.
func (r *Runner) processStub(ctx context.Context, stub types.FacultyStub, applicant *types.ApplicantProfile, log *zap.Logger) types.OutreachRecord {
	record := types.OutreachRecord{
		InstitutionName: stub.InstitutionName,
		FacultyName:     stub.Name,
		ProfileRef:      stub.ProfileRef,
		Status:          types.StatusFailed,
	}

	if ctx.Err() != nil {
		// Run deadline hit before this stub started.
		return record
	}

	prof := r.fetcher.Fetch(ctx, stub)
	if ctx.Err() != nil && prof.RawText == "" {
		return record
	}

	focus := r.summarizer.Summarize(ctx, prof)
	record.ResearchSummary = focus.Summary

	result := r.synthesizer.Synthesize(ctx, focus, applicant)
	record.EmailBody = result.Body

	if result.Kind == outreach.KindPersonalized {
		record.Status = types.StatusComplete
	} else {
		record.Status = types.StatusPartial
	}

	log.Debug("record synthesized",
		zap.String("institution", record.InstitutionName),
		zap.String("faculty", record.FacultyName),
		zap.String("status", string(record.Status)),
		zap.String("confidence", string(focus.Confidence)),
		zap.String("body", logger.TruncateForLog(record.EmailBody, 120)),
	)

	return record
}

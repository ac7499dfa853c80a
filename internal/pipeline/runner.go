package pipeline

import (
	"context"
	"errors"

	"github.com/backmassage/pbrexpress/internal/config"
	"github.com/backmassage/pbrexpress/internal/display"
	"github.com/backmassage/pbrexpress/internal/rules"
)

// Logger is the logging surface the runner needs; *logging.Logger
// satisfies it.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Stat(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Runner classifies batches one after another with a fixed rule table.
type Runner struct {
	Config *config.Config
	Table  *rules.Table
	Log    Logger
	// Confirm is consulted under the "ask" duplicate policy. Returning true
	// proceeds without the conflicting textures; nil or false aborts.
	Confirm func(*DuplicateRoleError) bool
}

// BatchResult is the outcome of one batch.
type BatchResult struct {
	Name      string
	Groups    []Group
	Conflicts []Conflict
	Outcome   Outcome
	Stats     RunStats
}

// Result is the outcome of a whole run. Stats and Outcome are cumulative.
type Result struct {
	Batches []BatchResult
	Stats   RunStats
	Outcome Outcome
}

// Groups returns every group of every batch in batch order.
func (r *Result) Groups() []Group {
	var out []Group
	for _, b := range r.Batches {
		out = append(out, b.Groups...)
	}
	return out
}

// Run processes inputs sequentially. Per-file problems are counted, never
// fatal. The run aborts on context cancellation, on a duplicate role that
// the policy does not resolve, and with ErrEmptyInput when no batch held a
// single file.
func (r *Runner) Run(ctx context.Context, inputs []Input) (*Result, error) {
	res := &Result{}
	for i, in := range inputs {
		if err := ctx.Err(); err != nil {
			r.Log.Warn("Interrupted")
			return res, err
		}
		r.Log.Info("[%d/%d] %s: %s", i+1, len(inputs), in.Name, display.Count(len(in.Paths), "file"))

		br, err := r.runBatch(in)
		if errors.Is(err, ErrEmptyInput) {
			r.Log.Warn("Nothing to classify in %s, skipping", in.Name)
			continue
		}
		if err != nil {
			return res, err
		}
		res.Batches = append(res.Batches, *br)
		res.Stats.Add(br.Stats)
		res.Outcome.Append(br.Outcome)
	}

	if res.Stats.FilesProcessed == 0 {
		return res, ErrEmptyInput
	}
	logSummary(r.Log, &res.Stats)
	return res, nil
}

func (r *Runner) runBatch(in Input) (*BatchResult, error) {
	cfg := r.Config
	c, err := Classify(in.Paths, r.Table)
	if err != nil {
		return nil, err
	}
	for _, p := range c.Outcome.InvalidExtension {
		r.Log.Debug(cfg.Verbose, "Invalid extension: %s", p)
	}
	for _, p := range c.Outcome.Redirected {
		r.Log.Debug(cfg.Verbose, "Redirected: %s", p)
	}
	for _, p := range c.Outcome.Hopeless {
		r.Log.Warn("Could not classify: %s", p)
	}

	opts := AssembleOptions{Policy: PolicyFail, SkipUnknown: cfg.SkipUnknown}
	if cfg.OnDuplicate == config.DuplicateDrop {
		opts.Policy = PolicyDrop
	}
	groups, conflicts, err := Assemble(c.Records, opts)

	var dupErr *DuplicateRoleError
	if errors.As(err, &dupErr) {
		for _, cf := range dupErr.Conflicts {
			r.Log.Error("Duplicate role %s", cf)
		}
		if cfg.OnDuplicate != config.DuplicateAsk || r.Confirm == nil || !r.Confirm(dupErr) {
			return nil, err
		}
		opts.Policy = PolicyDrop
		groups, conflicts, err = Assemble(c.Records, opts)
	}
	if err != nil {
		return nil, err
	}

	br := &BatchResult{
		Name:      in.Name,
		Groups:    groups,
		Conflicts: conflicts,
		Outcome:   c.Outcome,
		Stats:     c.Stats,
	}
	for _, cf := range conflicts {
		r.Log.Warn("Dropped %s (material %q already has %s)", cf.Dropped.ResolvedPath, cf.Key, cf.Role.Label())
		br.Outcome.Conflicted = append(br.Outcome.Conflicted, cf.Dropped.ResolvedPath)
	}
	br.Stats.Conflicts = len(conflicts)
	br.Stats.GroupsCreated = len(groups)

	for _, g := range groups {
		r.Log.Success("Material %s: %s", g.Key, display.Count(len(g.Members), "texture"))
		if unknown := g.Unknown(); len(unknown) > 0 {
			r.Log.Debug(cfg.Verbose, "  %s without a role", display.Count(len(unknown), "texture"))
		}
		for _, m := range g.Members {
			role := "unknown"
			if m.HasRole() {
				role = m.Role.Label()
			}
			r.Log.Debug(cfg.Verbose, "  %-12s %s", role, m.ResolvedPath)
		}
	}
	return br, nil
}

// logSummary prints the end-of-run counters.
func logSummary(log Logger, s *RunStats) {
	log.Info("==============================")
	log.Stat("Total files processed: %d", s.FilesProcessed)
	log.Stat("UDIM files detected: %d", s.UDIMDetected)
	log.Stat("Invalid extensions: %d", s.InvalidExtension)
	log.Stat("Unrecognized files: %d", s.Unrecognized)
	log.Stat("Redirected textures: %d", s.Redirected)
	log.Stat("Hopeless textures: %d", s.Hopeless)
	log.Stat("Files ignored: %d", s.Ignored())
	if s.Conflicts > 0 {
		log.Warn("Dropped conflicting textures: %d", s.Conflicts)
	}
	if s.GroupsCreated == 0 {
		log.Warn("No materials created")
		return
	}
	log.Success("Materials created: %d", s.GroupsCreated)
}

package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotaplan/oncall/config"
	"github.com/rotaplan/oncall/core/schedule"
	"github.com/rotaplan/oncall/infra/logger"
	"github.com/rotaplan/oncall/pkg/export"
)

// Options are the run parameters collected by the CLI.
type Options struct {
	ConfigPath  string
	StartExpr   string
	EndExpr     string
	OutputDir   string
	GenerateICS bool

	// Now fixes "today" and the generation timestamp for tests; zero uses
	// the wall clock.
	Now time.Time

	Log logger.Logger
}

// Result reports what a run produced.
type Result struct {
	Schedule    schedule.Schedule
	Range       schedule.DateRange
	People      int
	TotalShifts int
	Workbook    string
	Timeline    string
	ICSFiles    []string
}

// Service runs the full pipeline: configuration, date resolution, schedule
// construction and the exporters.
type Service struct {
	cfg  *config.Config
	opts Options
	log  logger.Logger
}

// New loads the configuration and prepares a Service.
func New(opts Options) (*Service, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	log := opts.Log
	if log == nil {
		log = logger.New("service")
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	return &Service{cfg: cfg, opts: opts, log: log}, nil
}

// Run builds the schedule and writes every requested output. It returns
// schedule.ErrNoShifts (with a usable Result) when a valid configuration
// produced an empty schedule.
func (s *Service) Run() (*Result, error) {
	sc := s.cfg.Schedule
	today := schedule.Midnight(s.opts.Now)

	rng, err := s.resolveRange(today)
	if err != nil {
		return nil, err
	}
	if rng.Empty() {
		s.log.Warnf("empty date range %s to %s: schedule will contain no shifts",
			rng.Start.Format("2006-01-02"), rng.End.Format("2006-01-02"))
	}

	sched := schedule.Build(sc.OrderedLayers(), rng)
	colors := schedule.AssignColors(sched)
	res := &Result{
		Schedule:    sched,
		Range:       rng,
		People:      colors.Len(),
		TotalShifts: len(sched.Shifts),
	}

	outDir, base := s.outputPaths()
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	res.Workbook = filepath.Join(outDir, base+".xlsx")
	meta := export.WorkbookMeta{
		Name:        sc.Name,
		Description: sc.Description,
		Range:       rng,
		Generated:   s.opts.Now,
	}
	if err := export.WriteWorkbook(res.Workbook, meta, sched, colors); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	layout := schedule.ComputeLayout(sched, rng)
	if layout.Empty {
		s.log.Warnf("no shifts to visualize")
	} else {
		res.Timeline = filepath.Join(outDir, base+".svg")
		if err := export.WriteTimelineSVG(res.Timeline, sc.Name, sched, layout, colors, rng); err != nil {
			return nil, fmt.Errorf("write timeline: %w", err)
		}
	}

	if s.opts.GenerateICS {
		groups, err := schedule.MaterializeEvents(sched, sc.Name, s.opts.Now)
		if err != nil {
			return nil, fmt.Errorf("materialize events: %w", err)
		}
		paths, err := export.WriteICSFiles(filepath.Join(outDir, "ics_files"), groups)
		if err != nil {
			return nil, fmt.Errorf("write ics: %w", err)
		}
		res.ICSFiles = paths
	}

	s.log.Debugw("schedule generated", map[string]any{
		"schedule": sc.Name,
		"start":    rng.Start.Format("2006-01-02"),
		"end":      rng.End.Format("2006-01-02"),
		"days":     rng.Days(),
		"layers":   len(sc.Layers),
		"people":   res.People,
		"shifts":   res.TotalShifts,
	})

	if res.TotalShifts == 0 {
		return res, schedule.ErrNoShifts
	}
	return res, nil
}

// Schedule exposes the loaded schedule configuration.
func (s *Service) Schedule() config.ScheduleConfig { return s.cfg.Schedule }

// resolveRange applies the CLI date expressions over the config defaults. A
// relative end expression is resolved against the resolved start, matching
// the reference behavior, so "--start-date 2026-02-01 --end-date +2m" ends
// on 2026-04-01.
func (s *Service) resolveRange(today time.Time) (schedule.DateRange, error) {
	opts := schedule.RangeOptions{
		ConfigStart:    s.cfg.Schedule.StartDate,
		DurationMonths: s.cfg.Schedule.DurationMonths,
	}
	if s.opts.StartExpr != "" {
		start, err := schedule.ResolveDateExpr(s.opts.StartExpr, today)
		if err != nil {
			return schedule.DateRange{}, err
		}
		opts.StartOverride = &start
	}
	if s.opts.EndExpr != "" {
		ref := today
		if opts.StartOverride != nil {
			ref = *opts.StartOverride
		}
		end, err := schedule.ResolveDateExpr(s.opts.EndExpr, ref)
		if err != nil {
			return schedule.DateRange{}, err
		}
		opts.EndOverride = &end
	}
	return schedule.CalculateRange(opts, today)
}

// outputPaths derives the output directory and file basename from the
// config filename, unless an explicit directory was given.
func (s *Service) outputPaths() (dir, base string) {
	base = strings.TrimSuffix(filepath.Base(s.opts.ConfigPath), filepath.Ext(s.opts.ConfigPath))
	dir = s.opts.OutputDir
	if dir == "" {
		dir = base
	}
	return dir, base
}

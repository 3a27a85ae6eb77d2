package review

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/schoolofai/lessonreview/internal/lessons"
	"github.com/schoolofai/lessonreview/internal/logger"
	"github.com/schoolofai/lessonreview/internal/mastery"
	"github.com/schoolofai/lessonreview/internal/outcome"
	"github.com/schoolofai/lessonreview/internal/priority"
	"github.com/schoolofai/lessonreview/internal/spacedrep"
)

// Service ranks previously taught lessons for review. It keeps no state
// between calls; every call re-reads the store.
type Service struct {
	due     DueSource
	scores  MasterySource
	mapper  *outcome.Mapper
	matcher *lessons.Matcher
	log     *logger.Logger
	now     func() time.Time
	cfg     Config
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithConfig overrides the default limits. Zero fields keep their defaults.
func WithConfig(cfg Config) Option {
	return func(s *Service) { s.cfg = cfg.withDefaults() }
}

// NewService creates a Service reading from st.
func NewService(st Store, opts ...Option) *Service {
	s := &Service{
		due:    st,
		scores: st,
		log:    logger.Nop(),
		now:    time.Now,
		cfg:    DefaultConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.mapper = outcome.NewMapper(st, s.log)
	s.matcher = lessons.NewMatcher(st, s.log, s.now)
	return s
}

// Recommendations returns up to limit overdue lessons, highest priority
// first. A non-positive limit uses the configured default. An empty result
// means nothing is due.
func (s *Service) Recommendations(ctx context.Context, studentID, courseID string, limit int) ([]Recommendation, error) {
	if err := validate(studentID, courseID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}

	records, err := s.due.ListOverdueOutcomes(ctx, studentID, courseID)
	if err != nil {
		return nil, wrap("list overdue outcomes", err)
	}
	if len(records) == 0 {
		return []Recommendation{}, nil
	}

	_, recs, err := s.rankOverdue(ctx, studentID, courseID, records)
	if err != nil {
		return nil, err
	}
	return truncate(recs, limit), nil
}

// Stats summarizes the overdue backlog over the top StatsLimit lessons.
func (s *Service) Stats(ctx context.Context, studentID, courseID string) (*Stats, error) {
	if err := validate(studentID, courseID); err != nil {
		return nil, err
	}

	stats := &Stats{
		TierBreakdown:   make(map[priority.Urgency]int),
		Recommendations: []Recommendation{},
	}

	records, err := s.due.ListOverdueOutcomes(ctx, studentID, courseID)
	if err != nil {
		return nil, wrap("list overdue outcomes", err)
	}
	if len(records) == 0 {
		return stats, nil
	}

	enriched, recs, err := s.rankOverdue(ctx, studentID, courseID, records)
	if err != nil {
		return nil, err
	}
	recs = truncate(recs, s.cfg.StatsLimit)

	stats.TotalOverdueOutcomes = len(enriched)
	for _, e := range enriched {
		if mastery.IsCritical(e.CurrentMastery) {
			stats.CriticalCount++
		}
	}
	for _, r := range recs {
		stats.EstimatedReviewMinutes += r.EstimatedMinutes
		stats.TierBreakdown[r.Urgency]++
	}
	stats.LessonsToReview = len(recs)
	stats.Recommendations = recs
	return stats, nil
}

// Upcoming returns lessons whose outcomes fall due within daysAhead days,
// soonest first. A non-positive daysAhead uses the configured window.
func (s *Service) Upcoming(ctx context.Context, studentID, courseID string, daysAhead int) ([]UpcomingReview, error) {
	if err := validate(studentID, courseID); err != nil {
		return nil, err
	}
	if daysAhead <= 0 {
		daysAhead = s.cfg.UpcomingDays
	}

	records, err := s.due.ListUpcomingOutcomes(ctx, studentID, courseID, daysAhead)
	if err != nil {
		return nil, wrap("list upcoming outcomes", err)
	}
	if len(records) == 0 {
		return []UpcomingReview{}, nil
	}

	_, candidates, err := s.pipeline(ctx, studentID, courseID, records, spacedrep.EnrichUpcoming)
	if err != nil {
		return nil, err
	}

	out := make([]UpcomingReview, 0, len(candidates))
	earliest := make([]time.Time, 0, len(candidates))
	for _, c := range candidates {
		first, days := soonestDue(c.Outcomes)
		out = append(out, UpcomingReview{
			Recommendation: recommend(c),
			EarliestDueAt:  first.UTC().Format(time.RFC3339),
			DaysUntilDue:   days,
		})
		earliest = append(earliest, first)
	}
	sort.Stable(byDue{items: out, due: earliest})

	s.log.Debug("upcoming reviews built",
		"student_id", studentID, "course_id", courseID,
		"due", len(records), "lessons", len(out), "days_ahead", daysAhead)
	return out, nil
}

func (s *Service) rankOverdue(ctx context.Context, studentID, courseID string, records []spacedrep.DueRecord) ([]spacedrep.EnrichedOutcome, []Recommendation, error) {
	enriched, candidates, err := s.pipeline(ctx, studentID, courseID, records, spacedrep.EnrichOverdue)
	if err != nil {
		return nil, nil, err
	}
	recs := make([]Recommendation, len(candidates))
	for i, c := range candidates {
		recs[i] = recommend(c)
	}
	priority.Rank(recs, func(r Recommendation) int { return r.Priority })

	s.log.Debug("review recommendations built",
		"student_id", studentID, "course_id", courseID,
		"due", len(records), "candidates", len(recs))
	return enriched, recs, nil
}

type enrichFunc func([]spacedrep.DueRecord, mastery.Scores, map[string]string, time.Time) []spacedrep.EnrichedOutcome

// pipeline maps references, loads mastery, enriches and matches. The mapping
// and the mastery fetch run concurrently; scores are read by mapped key only
// once both are done.
func (s *Service) pipeline(ctx context.Context, studentID, courseID string, records []spacedrep.DueRecord, enrich enrichFunc) ([]spacedrep.EnrichedOutcome, []lessons.Candidate, error) {
	var (
		mapping map[string]string
		scores  mastery.Scores
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		mapping = s.mapper.BuildIDMapping(gctx, spacedrep.Refs(records), courseID)
		return nil
	})
	g.Go(func() error {
		var err error
		scores, err = s.scores.GetMasteryMap(gctx, studentID, courseID)
		if err != nil {
			return wrap("get mastery map", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	enriched := enrich(records, scores, mapping, s.now())
	candidates, err := s.matcher.FindLessonsForOutcomes(ctx, enriched, courseID, studentID)
	if err != nil {
		return nil, nil, wrap("match lessons", err)
	}
	return enriched, candidates, nil
}

func recommend(c lessons.Candidate) Recommendation {
	b := priority.Score(priority.Input{
		OverdueOutcomes:    len(c.Outcomes),
		AverageDaysOverdue: c.AverageDaysOverdue,
		AverageMastery:     c.AverageMastery,
	})
	return Recommendation{
		LessonID:           c.LessonID,
		LessonTitle:        c.LessonTitle,
		Priority:           b.Priority,
		Urgency:            b.Urgency,
		OverdueOutcomes:    c.Outcomes,
		AverageMastery:     c.AverageMastery,
		DaysSinceCompleted: c.DaysSinceCompleted,
		EstimatedMinutes:   c.EstimatedMinutes,
		ReasonText:         c.ReasonText,
	}
}

func soonestDue(outcomes []spacedrep.EnrichedOutcome) (time.Time, int) {
	var first time.Time
	days := 0
	for i, o := range outcomes {
		if i == 0 || o.DueAt.Before(first) {
			first = o.DueAt
			days = o.DaysUntilDue
		}
	}
	return first, days
}

// byDue sorts upcoming reviews by their earliest due time.
type byDue struct {
	items []UpcomingReview
	due   []time.Time
}

func (b byDue) Len() int           { return len(b.items) }
func (b byDue) Less(i, j int) bool { return b.due[i].Before(b.due[j]) }
func (b byDue) Swap(i, j int) {
	b.items[i], b.items[j] = b.items[j], b.items[i]
	b.due[i], b.due[j] = b.due[j], b.due[i]
}

func truncate(recs []Recommendation, limit int) []Recommendation {
	if limit > 0 && len(recs) > limit {
		return recs[:limit]
	}
	return recs
}

func validate(studentID, courseID string) error {
	if strings.TrimSpace(studentID) == "" {
		return fmt.Errorf("%w: student id is required", ErrInvalidRequest)
	}
	if strings.TrimSpace(courseID) == "" {
		return fmt.Errorf("%w: course id is required", ErrInvalidRequest)
	}
	return nil
}

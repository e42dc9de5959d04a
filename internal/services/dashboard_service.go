package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"sales-dashboard/internal/analytics"
	"sales-dashboard/internal/authz"
	"sales-dashboard/internal/dto"
	"sales-dashboard/internal/entities"
	"sales-dashboard/internal/repositories"
	apperrors "sales-dashboard/pkg/errors"
)

const (
	dashboardGenerationKey = "dashboard:generation"

	// generation, period, start, end, minute of now
	dashboardSnapshotKey = "dashboard:snapshot:%d:%s:%s:%s:%s"
	snapshotBucket       = time.Minute
)

type DashboardServiceInterface interface {
	GetDashboard(ctx context.Context, q dto.DashboardQuery) (*dto.DashboardDTO, error)
	GetMyGoals(ctx context.Context, session *authz.AuthSession, q dto.DashboardQuery) (*dto.MyGoalsDTO, error)
	TodayProgress(ctx context.Context) ([]analytics.UserPerformance, error)
	Invalidate(ctx context.Context) (int64, error)
}

type DashboardRepositories struct {
	Activities   repositories.ActivityRepositoryInterface
	Appointments repositories.AppointmentRepositoryInterface
	Profiles     repositories.ProfileRepositoryInterface
	Goals        repositories.UserGoalRepositoryInterface
	TaskTypes    repositories.TaskTypeRepositoryInterface
	CompanyGoals repositories.CompanyGoalsRepositoryInterface
}

type DashboardService struct {
	*BaseService
	repos    DashboardRepositories
	location *time.Location
	cacheTTL time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

func NewDashboardService(
	repos DashboardRepositories,
	base *BaseService,
	location *time.Location,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		BaseService: base,
		repos:       repos,
		location:    location,
		cacheTTL:    cacheTTL,
		now:         time.Now,
		logger:      logger,
	}
}

func (s *DashboardService) resolve(q dto.DashboardQuery) (analytics.ResolvedPeriod, time.Time) {
	now := s.now().In(s.location)
	return analytics.Resolve(q.Period, now, q.Custom), now
}

// generation reads the current data version; 0 when unknown.
func (s *DashboardService) generation(ctx context.Context) int64 {
	if s.cache == nil {
		return 0
	}
	raw, err := s.cache.Get(ctx, dashboardGenerationKey)
	if err != nil {
		return 0
	}
	gen, _ := strconv.ParseInt(raw, 10, 64)
	return gen
}

// Invalidate bumps the data version so every cached snapshot becomes unreachable.
func (s *DashboardService) Invalidate(ctx context.Context) (int64, error) {
	if s.cache == nil {
		return 0, nil
	}
	gen, err := s.cache.Incr(ctx, dashboardGenerationKey)
	if err != nil {
		return 0, fmt.Errorf("falha ao invalidar o cache do dashboard: %w", err)
	}
	return gen, nil
}

func (s *DashboardService) GetDashboard(ctx context.Context, q dto.DashboardQuery) (*dto.DashboardDTO, error) {
	period, now := s.resolve(q)
	gen := s.generation(ctx)
	// calls today and upcoming appointments move with the clock, so snapshots are per minute
	key := fmt.Sprintf(dashboardSnapshotKey, gen, period.Period,
		period.Start.Format("2006-01-02"), period.End.Format("2006-01-02"),
		now.Truncate(snapshotBucket).Format("200601021504"))

	var cached dto.DashboardDTO
	if s.CacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	in, err := s.load(ctx, period, now)
	if err != nil {
		s.logger.Error("falha ao carregar dados do dashboard", zap.String("period", string(period.Period)), zap.Error(err))
		return nil, apperrors.NewHttpError(500, "Erro ao carregar o dashboard", err, nil)
	}

	result := &dto.DashboardDTO{
		Snapshot:     analytics.Compute(in),
		CompanyGoals: in.CompanyGoals,
		Generation:   gen,
		GeneratedAt:  now,
	}
	s.CacheSet(ctx, key, result, s.cacheTTL)
	return result, nil
}

// load runs the independent reads in parallel and fails on the first error.
func (s *DashboardService) load(ctx context.Context, period analytics.ResolvedPeriod, now time.Time) (analytics.Inputs, error) {
	in := analytics.Inputs{Period: period, Now: now}
	year := analytics.YearOf(now)
	var companyRow *entities.CompanyGoalsRow

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		in.Activities, err = s.repos.Activities.ListBetween(gctx, period.Start, period.End)
		return
	})
	g.Go(func() (err error) {
		in.Appointments, err = s.repos.Appointments.ListBetween(gctx, period.Start, period.End)
		return
	})
	g.Go(func() (err error) {
		in.Profiles, err = s.repos.Profiles.ListActive(gctx)
		return
	})
	g.Go(func() (err error) {
		in.Goals, err = s.repos.Goals.List(gctx)
		return
	})
	g.Go(func() (err error) {
		in.TaskTypes, err = s.repos.TaskTypes.List(gctx)
		return
	})
	g.Go(func() (err error) {
		companyRow, err = s.repos.CompanyGoals.Get(gctx)
		return
	})
	g.Go(func() (err error) {
		in.AnnualLeadEvents, err = s.repos.Activities.ListByActionBetween(gctx, entities.ActionLeadCreated, year.Start, year.End)
		return
	})
	g.Go(func() (err error) {
		in.AnnualAppointments, err = s.repos.Appointments.ListBetween(gctx, year.Start, year.End)
		return
	})
	if err := g.Wait(); err != nil {
		return analytics.Inputs{}, err
	}

	in.CompanyGoals = companyRow.Resolve()
	return in, nil
}

// GetMyGoals evaluates the caller's own goals over the period.
func (s *DashboardService) GetMyGoals(ctx context.Context, session *authz.AuthSession, q dto.DashboardQuery) (*dto.MyGoalsDTO, error) {
	if session == nil {
		return nil, apperrors.ErrUnauthorized
	}
	period, _ := s.resolve(q)

	var (
		activities []entities.ActivityEvent
		goals      []entities.UserGoal
		taskTypes  []entities.TaskType
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		activities, err = s.repos.Activities.ListBetween(gctx, period.Start, period.End)
		return
	})
	g.Go(func() (err error) {
		goals, err = s.repos.Goals.ListByUser(gctx, session.UserID)
		return
	})
	g.Go(func() (err error) {
		taskTypes, err = s.repos.TaskTypes.List(gctx)
		return
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("falha ao carregar metas do usuário", zap.String("userID", session.UserID.String()), zap.Error(err))
		return nil, apperrors.NewHttpError(500, "Erro ao carregar suas metas", err, nil)
	}

	mine := make([]entities.ActivityEvent, 0, len(activities))
	for _, ev := range activities {
		if ev.UserID == session.UserID {
			mine = append(mine, ev)
		}
	}

	progress := analytics.UserProgress(session.UserID, goals, taskTypes, analytics.CountByUser(mine), period.DaysInPeriod)
	if progress == nil {
		progress = []analytics.Progress{}
	}
	return &dto.MyGoalsDTO{
		Period:   period,
		Goals:    progress,
		Headline: analytics.Headline(progress),
	}, nil
}

// TodayProgress evaluates every active user's goals for the current day.
func (s *DashboardService) TodayProgress(ctx context.Context) ([]analytics.UserPerformance, error) {
	period, _ := s.resolve(dto.DashboardQuery{Period: analytics.PeriodToday})

	var (
		activities   []entities.ActivityEvent
		appointments []entities.Appointment
		profiles     []entities.Profile
		goals        []entities.UserGoal
		taskTypes    []entities.TaskType
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		activities, err = s.repos.Activities.ListBetween(gctx, period.Start, period.End)
		return
	})
	g.Go(func() (err error) {
		appointments, err = s.repos.Appointments.ListBetween(gctx, period.Start, period.End)
		return
	})
	g.Go(func() (err error) {
		profiles, err = s.repos.Profiles.ListActive(gctx)
		return
	})
	g.Go(func() (err error) {
		goals, err = s.repos.Goals.List(gctx)
		return
	})
	g.Go(func() (err error) {
		taskTypes, err = s.repos.TaskTypes.List(gctx)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	counts := analytics.CountByUser(activities)
	return analytics.UserPerformances(profiles, goals, taskTypes, counts, analytics.SalesByUser(appointments), period.DaysInPeriod), nil
}

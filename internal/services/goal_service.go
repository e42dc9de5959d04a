package services

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"sales-dashboard/internal/dto"
	"sales-dashboard/internal/entities"
	"sales-dashboard/internal/events"
	"sales-dashboard/internal/repositories"
	apperrors "sales-dashboard/pkg/errors"
)

var taskTypeName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

type GoalServiceInterface interface {
	ListTaskTypes(ctx context.Context) ([]entities.TaskType, error)
	CreateTaskType(ctx context.Context, payload dto.CreateTaskTypeDTO) (*entities.TaskType, error)
	UpdateTaskType(ctx context.Context, id uuid.UUID, payload dto.UpdateTaskTypeDTO) (*entities.TaskType, error)
	DeleteTaskType(ctx context.Context, id uuid.UUID) error

	UpsertUserGoal(ctx context.Context, payload dto.UpsertUserGoalDTO) (*entities.UserGoal, error)
	DeleteUserGoal(ctx context.Context, id uuid.UUID) error

	GetCompanyGoals(ctx context.Context) (entities.CompanyGoals, error)
	UpdateCompanyGoals(ctx context.Context, payload dto.CompanyGoalsDTO) (entities.CompanyGoals, error)
}

type GoalService struct {
	*BaseService
	txManager    repositories.TxManagerInterface
	taskTypes    repositories.TaskTypeRepositoryInterface
	goals        repositories.UserGoalRepositoryInterface
	profiles     repositories.ProfileRepositoryInterface
	companyGoals repositories.CompanyGoalsRepositoryInterface
	logger       *zap.Logger
}

func NewGoalService(
	txManager repositories.TxManagerInterface,
	taskTypes repositories.TaskTypeRepositoryInterface,
	goals repositories.UserGoalRepositoryInterface,
	profiles repositories.ProfileRepositoryInterface,
	companyGoals repositories.CompanyGoalsRepositoryInterface,
	base *BaseService,
	logger *zap.Logger,
) *GoalService {
	return &GoalService{
		BaseService:  base,
		txManager:    txManager,
		taskTypes:    taskTypes,
		goals:        goals,
		profiles:     profiles,
		companyGoals: companyGoals,
		logger:       logger,
	}
}

func (s *GoalService) ListTaskTypes(ctx context.Context) ([]entities.TaskType, error) {
	return s.taskTypes.List(ctx)
}

func (s *GoalService) CreateTaskType(ctx context.Context, payload dto.CreateTaskTypeDTO) (*entities.TaskType, error) {
	name := strings.ToLower(strings.TrimSpace(payload.Name))
	if !taskTypeName.MatchString(name) {
		return nil, apperrors.NewInvalidInputError("nome de tarefa inválido: use letras minúsculas, números e _")
	}
	label := strings.TrimSpace(payload.Label)

	var created *entities.TaskType
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := s.taskTypes.FindByName(ctx, tx, name); err == nil {
			return apperrors.ErrAlreadyExists
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		var txErr error
		created, txErr = s.taskTypes.Create(ctx, tx, entities.TaskType{Name: name, Label: label})
		return txErr
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return nil, apperrors.NewHttpError(http.StatusConflict, "Tipo de tarefa já cadastrado", err, nil)
		}
		return nil, err
	}
	s.PublishChange(ctx, events.TableTaskTypes, events.OpInsert)
	return created, nil
}

func (s *GoalService) UpdateTaskType(ctx context.Context, id uuid.UUID, payload dto.UpdateTaskTypeDTO) (*entities.TaskType, error) {
	var updated *entities.TaskType
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var txErr error
		updated, txErr = s.taskTypes.UpdateLabel(ctx, tx, id, strings.TrimSpace(payload.Label))
		return txErr
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Tipo de tarefa não encontrado")
		}
		return nil, err
	}
	s.PublishChange(ctx, events.TableTaskTypes, events.OpUpdate)
	return updated, nil
}

// DeleteTaskType removes a catalog entry; its user goals go with it.
func (s *GoalService) DeleteTaskType(ctx context.Context, id uuid.UUID) error {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.taskTypes.Delete(ctx, tx, id)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("Tipo de tarefa não encontrado")
		}
		return err
	}
	s.PublishChange(ctx, events.TableTaskTypes, events.OpDelete)
	return nil
}

func (s *GoalService) UpsertUserGoal(ctx context.Context, payload dto.UpsertUserGoalDTO) (*entities.UserGoal, error) {
	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("user_id inválido")
	}
	taskTypeID, err := uuid.Parse(payload.TaskTypeID)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("task_type_id inválido")
	}
	if payload.DailyGoal < 0 {
		return nil, apperrors.NewInvalidInputError("a meta diária não pode ser negativa")
	}

	if _, err := s.profiles.FindByID(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Usuário não encontrado")
		}
		return nil, err
	}
	if _, err := s.taskTypes.FindByID(ctx, taskTypeID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Tipo de tarefa não encontrado")
		}
		return nil, err
	}

	var saved *entities.UserGoal
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var txErr error
		saved, txErr = s.goals.Upsert(ctx, tx, userID, taskTypeID, payload.DailyGoal)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	s.PublishChange(ctx, events.TableUserGoals, events.OpUpdate)
	return saved, nil
}

func (s *GoalService) DeleteUserGoal(ctx context.Context, id uuid.UUID) error {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.goals.Delete(ctx, tx, id)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("Meta não encontrada")
		}
		return err
	}
	s.PublishChange(ctx, events.TableUserGoals, events.OpDelete)
	return nil
}

func (s *GoalService) GetCompanyGoals(ctx context.Context) (entities.CompanyGoals, error) {
	row, err := s.companyGoals.Get(ctx)
	if err != nil {
		return entities.CompanyGoals{}, err
	}
	return row.Resolve(), nil
}

// UpdateCompanyGoals stores the payload as is: omitted targets become NULL and read back as defaults.
func (s *GoalService) UpdateCompanyGoals(ctx context.Context, payload dto.CompanyGoalsDTO) (entities.CompanyGoals, error) {
	row := entities.CompanyGoalsRow{
		RevenueGoal:            null.Float64FromPtr(payload.RevenueGoal),
		SalesGoal:              null.IntFromPtr(payload.SalesGoal),
		DailyAppointmentsGoal:  null.IntFromPtr(payload.DailyAppointmentsGoal),
		DailyConversationsGoal: null.IntFromPtr(payload.DailyConversationsGoal),
	}

	var saved *entities.CompanyGoalsRow
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var txErr error
		saved, txErr = s.companyGoals.Upsert(ctx, tx, row)
		return txErr
	})
	if err != nil {
		return entities.CompanyGoals{}, err
	}
	s.PublishChange(ctx, events.TableCompanyGoals, events.OpUpdate)
	return saved.Resolve(), nil
}

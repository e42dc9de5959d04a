package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"sales-dashboard/internal/dto"
	"sales-dashboard/internal/entities"
	"sales-dashboard/internal/events"
	"sales-dashboard/internal/repositories"
	apperrors "sales-dashboard/pkg/errors"
	"sales-dashboard/pkg/utils"
)

type ProfileServiceInterface interface {
	List(ctx context.Context, search string) ([]dto.ProfileWithGoalsDTO, error)
	Create(ctx context.Context, payload dto.CreateProfileDTO) (*entities.Profile, error)
	Update(ctx context.Context, id uuid.UUID, payload dto.UpdateProfileDTO) (*entities.Profile, error)
}

type ProfileService struct {
	*BaseService
	txManager repositories.TxManagerInterface
	profiles  repositories.ProfileRepositoryInterface
	goals     repositories.UserGoalRepositoryInterface
	taskTypes repositories.TaskTypeRepositoryInterface
	logger    *zap.Logger
}

func NewProfileService(
	txManager repositories.TxManagerInterface,
	profiles repositories.ProfileRepositoryInterface,
	goals repositories.UserGoalRepositoryInterface,
	taskTypes repositories.TaskTypeRepositoryInterface,
	base *BaseService,
	logger *zap.Logger,
) *ProfileService {
	return &ProfileService{
		BaseService: base,
		txManager:   txManager,
		profiles:    profiles,
		goals:       goals,
		taskTypes:   taskTypes,
		logger:      logger,
	}
}

// List returns the profiles with their goals joined to the task type catalog.
func (s *ProfileService) List(ctx context.Context, search string) ([]dto.ProfileWithGoalsDTO, error) {
	profiles, err := s.profiles.List(ctx, search)
	if err != nil {
		return nil, err
	}
	goals, err := s.goals.List(ctx)
	if err != nil {
		return nil, err
	}
	taskTypes, err := s.taskTypes.List(ctx)
	if err != nil {
		return nil, err
	}

	catalog := make(map[uuid.UUID]entities.TaskType, len(taskTypes))
	for _, t := range taskTypes {
		catalog[t.ID] = t
	}
	byUser := make(map[uuid.UUID][]dto.UserGoalDTO)
	for _, g := range goals {
		t, ok := catalog[g.TaskTypeID]
		if !ok {
			continue
		}
		byUser[g.UserID] = append(byUser[g.UserID], dto.UserGoalDTO{
			ID:         g.ID,
			UserID:     g.UserID,
			TaskTypeID: g.TaskTypeID,
			TaskType:   t.Name,
			Label:      t.DisplayLabel(),
			DailyGoal:  g.DailyGoal,
		})
	}

	out := make([]dto.ProfileWithGoalsDTO, 0, len(profiles))
	for _, p := range profiles {
		userGoals := byUser[p.ID]
		if userGoals == nil {
			userGoals = []dto.UserGoalDTO{}
		}
		out = append(out, dto.ProfileWithGoalsDTO{Profile: p, Goals: userGoals})
	}
	return out, nil
}

func (s *ProfileService) Create(ctx context.Context, payload dto.CreateProfileDTO) (*entities.Profile, error) {
	role := entities.Role(strings.ToLower(strings.TrimSpace(payload.Role)))
	if !role.Valid() {
		return nil, apperrors.NewInvalidInputError("perfil desconhecido: %s", payload.Role)
	}
	hash, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusInternalServerError, "Erro ao gerar o hash da senha", err, nil)
	}

	var created *entities.Profile
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var txErr error
		created, txErr = s.profiles.Create(ctx, tx, entities.Profile{
			Email:        payload.Email,
			PasswordHash: hash,
			FullName:     strings.TrimSpace(payload.FullName),
			Role:         role,
			Active:       true,
		})
		return txErr
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return nil, apperrors.NewHttpError(http.StatusConflict, "Já existe um usuário com este e-mail", err, nil)
		}
		return nil, err
	}

	s.logger.Info("usuário criado", zap.String("userID", created.ID.String()), zap.String("role", string(role)))
	s.PublishChange(ctx, events.TableProfiles, events.OpInsert)
	return created, nil
}

// Update applies the non-nil fields of payload.
func (s *ProfileService) Update(ctx context.Context, id uuid.UUID, payload dto.UpdateProfileDTO) (*entities.Profile, error) {
	current, err := s.profiles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Usuário não encontrado")
		}
		return nil, err
	}

	next := *current
	if payload.Email != nil {
		next.Email = *payload.Email
	}
	if payload.FullName != nil {
		next.FullName = strings.TrimSpace(*payload.FullName)
	}
	if payload.Role != nil {
		role := entities.Role(strings.ToLower(strings.TrimSpace(*payload.Role)))
		if !role.Valid() {
			return nil, apperrors.NewInvalidInputError("perfil desconhecido: %s", *payload.Role)
		}
		next.Role = role
	}
	if payload.Active != nil {
		next.Active = *payload.Active
	}

	var hash string
	if payload.Password != nil {
		if hash, err = utils.HashPassword(*payload.Password); err != nil {
			return nil, apperrors.NewHttpError(http.StatusInternalServerError, "Erro ao gerar o hash da senha", err, nil)
		}
	}

	var updated *entities.Profile
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var txErr error
		if updated, txErr = s.profiles.Update(ctx, tx, next); txErr != nil {
			return txErr
		}
		if hash != "" {
			return s.profiles.UpdatePassword(ctx, tx, id, hash)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return nil, apperrors.NewHttpError(http.StatusConflict, "Já existe um usuário com este e-mail", err, nil)
		}
		return nil, err
	}

	s.PublishChange(ctx, events.TableProfiles, events.OpUpdate)
	return updated, nil
}

package service

import (
	"context"
	"errors"
	"time"

	apperrors "channel-stats-backend/internal/common/errors"
	"channel-stats-backend/internal/common/logger"
	"channel-stats-backend/internal/common/validation"

	"channel-stats-backend/internal/features/telegramlink/models"
	"channel-stats-backend/internal/features/telegramlink/repository"
	"channel-stats-backend/internal/features/telegramlink/telegram"
)

// Незавершённый мастер протухает, чтобы не держать кодовые хэши вечно.
const wizardTTL = 10 * time.Minute

// LinkService — пошаговая привязка Telegram-аккаунта к учётной записи.
type LinkService interface {
	StartAuth(ctx context.Context, login string, req models.StartRequest) (*models.StepResponse, error)
	CompleteAuth(ctx context.Context, login string, req models.CompleteRequest) (*models.StepResponse, error)
	CompleteTwoFA(ctx context.Context, login string, req models.TwoFARequest) (*models.StepResponse, error)
	GetLink(ctx context.Context, login string) (*models.LinkRecord, error)
}

type linkService struct {
	wizards repository.WizardRepository
	links   repository.LinkRepository
	flows   telegram.Flows
	clock   func() time.Time
}

func NewLinkService(wizards repository.WizardRepository, links repository.LinkRepository, flows telegram.Flows) LinkService {
	return &linkService{
		wizards: wizards,
		links:   links,
		flows:   flows,
		clock:   time.Now,
	}
}

func (s *linkService) StartAuth(ctx context.Context, login string, req models.StartRequest) (*models.StepResponse, error) {
	if err := validation.ValidatePhoneNumber(req.PhoneNumber); err != nil {
		return nil, apperrors.NewValidationError("phone_number", err.Error())
	}

	if _, err := s.links.Get(ctx, login); err == nil {
		return nil, apperrors.NewConflictError("telegram link", "account is already linked")
	} else if !errors.Is(err, repository.ErrLinkNotFound) {
		return nil, apperrors.NewCacheError("get telegram link", err)
	}

	flow, err := s.flows.Flow(ctx, req.SessionName)
	if err != nil {
		return nil, apperrors.NewTelegramAPIError("start client", err)
	}

	codeHash, err := flow.SendCode(ctx, req.PhoneNumber)
	if err != nil {
		s.flows.Release(req.SessionName)
		return nil, apperrors.NewTelegramAPIError("send code", err)
	}

	state := &models.WizardState{
		SessionName: req.SessionName,
		Phone:       req.PhoneNumber,
		CodeHash:    codeHash,
		Step:        models.StepConfirm,
		UpdatedAt:   s.clock(),
	}
	if err := s.wizards.Save(ctx, state, wizardTTL); err != nil {
		s.flows.Release(req.SessionName)
		return nil, apperrors.NewCacheError("save wizard state", err)
	}

	logger.Info().
		Str("login", login).
		Str("session", req.SessionName).
		Msg("Telegram login started")
	return &models.StepResponse{Status: models.StatusCodeSent}, nil
}

func (s *linkService) CompleteAuth(ctx context.Context, login string, req models.CompleteRequest) (*models.StepResponse, error) {
	if err := validation.ValidateConfirmationCode(req.Code); err != nil {
		return nil, apperrors.NewValidationError("code", err.Error())
	}

	state, err := s.getState(ctx, req.SessionName, models.StepConfirm)
	if err != nil {
		return nil, err
	}

	flow, err := s.flows.Flow(ctx, req.SessionName)
	if err != nil {
		return nil, apperrors.NewTelegramAPIError("start client", err)
	}

	user, err := flow.SignIn(ctx, state.Phone, req.Code, state.CodeHash)
	if errors.Is(err, telegram.ErrPasswordNeeded) {
		state.Step = models.StepTwoFA
		state.UpdatedAt = s.clock()
		if err := s.wizards.Save(ctx, state, wizardTTL); err != nil {
			return nil, apperrors.NewCacheError("save wizard state", err)
		}
		return &models.StepResponse{Status: models.StatusTwoFA}, nil
	}
	if err != nil {
		// Неверный код не двигает мастер: пользователь может повторить ввод.
		return nil, apperrors.NewTelegramAPIError("sign in", err)
	}

	return s.finishLink(ctx, login, state, user)
}

func (s *linkService) CompleteTwoFA(ctx context.Context, login string, req models.TwoFARequest) (*models.StepResponse, error) {
	if req.Password == "" {
		return nil, apperrors.NewValidationError("password", "password cannot be empty")
	}

	state, err := s.getState(ctx, req.SessionName, models.StepTwoFA)
	if err != nil {
		return nil, err
	}

	flow, err := s.flows.Flow(ctx, req.SessionName)
	if err != nil {
		return nil, apperrors.NewTelegramAPIError("start client", err)
	}

	user, err := flow.Password(ctx, req.Password)
	if err != nil {
		return nil, apperrors.NewTelegramAPIError("check password", err)
	}

	return s.finishLink(ctx, login, state, user)
}

func (s *linkService) GetLink(ctx context.Context, login string) (*models.LinkRecord, error) {
	record, err := s.links.Get(ctx, login)
	if errors.Is(err, repository.ErrLinkNotFound) {
		return nil, apperrors.New(apperrors.ErrCodeNotFound, "Telegram account is not linked")
	}
	if err != nil {
		return nil, apperrors.NewCacheError("get telegram link", err)
	}
	return record, nil
}

// getState достаёт состояние мастера и сверяет шаг. Вызов не с того шага
// не меняет состояние.
func (s *linkService) getState(ctx context.Context, sessionName string, want models.Step) (*models.WizardState, error) {
	state, err := s.wizards.Get(ctx, sessionName)
	if errors.Is(err, repository.ErrWizardNotFound) {
		// Состояние протухло, висящий клиент больше не нужен.
		s.flows.Release(sessionName)
		return nil, apperrors.NewValidationError("session_name", "login wizard is not started or has expired")
	}
	if err != nil {
		return nil, apperrors.NewCacheError("get wizard state", err)
	}
	if state.Step != want {
		return nil, apperrors.NewValidationError("session_name", "unexpected wizard step").
			WithDetail("step", string(state.Step))
	}
	return state, nil
}

func (s *linkService) finishLink(ctx context.Context, login string, state *models.WizardState, user *models.LinkedUser) (*models.StepResponse, error) {
	record := &models.LinkRecord{
		User:        *user,
		Phone:       state.Phone,
		SessionName: state.SessionName,
		LinkedAt:    s.clock(),
	}
	if err := s.links.Save(ctx, login, record); err != nil {
		return nil, apperrors.NewCacheError("save telegram link", err)
	}
	if err := s.wizards.Delete(ctx, state.SessionName); err != nil {
		logger.Warn().
			Err(err).
			Str("session", state.SessionName).
			Msg("Failed to drop wizard state")
	}
	s.flows.Release(state.SessionName)

	logger.Info().
		Str("login", login).
		Str("user_id", user.ID).
		Msg("Telegram account linked")
	return &models.StepResponse{Status: models.StatusOK, User: user}, nil
}

package telegram

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
	"go.uber.org/zap"

	"channel-stats-backend/internal/features/telegramlink/models"
)

// ErrPasswordNeeded сигнализирует, что аккаунт защищён облачным паролем
// и вход нужно завершить через Password.
var ErrPasswordNeeded = errors.New("cloud password required")

// Брошенный мастер не должен держать клиента дольше, чем живёт его
// состояние в Redis.
const flowIdleTTL = 10 * time.Minute

// AuthFlow ведёт пошаговый вход в один Telegram-аккаунт.
type AuthFlow interface {
	SendCode(ctx context.Context, phone string) (codeHash string, err error)
	SignIn(ctx context.Context, phone, code, codeHash string) (*models.LinkedUser, error)
	Password(ctx context.Context, password string) (*models.LinkedUser, error)
}

// Flows выдаёт живой AuthFlow для именованной сессии.
type Flows interface {
	Flow(ctx context.Context, sessionName string) (AuthFlow, error)
	Release(sessionName string)
}

// Manager держит по одному запущенному MTProto-клиенту на сессию.
// Клиент живёт между шагами мастера и гасится через Release.
type Manager struct {
	apiID      int
	apiHash    string
	sessionDir string
	log        *zap.Logger

	mu    sync.Mutex
	flows map[string]*gotdFlow
}

func NewManager(apiID int, apiHash, sessionDir string, log *zap.Logger) *Manager {
	return &Manager{
		apiID:      apiID,
		apiHash:    apiHash,
		sessionDir: sessionDir,
		log:        log,
		flows:      make(map[string]*gotdFlow),
	}
}

func (m *Manager) Flow(ctx context.Context, sessionName string) (AuthFlow, error) {
	m.mu.Lock()
	if f, ok := m.flows[sessionName]; ok {
		f.idle.Reset(flowIdleTTL)
		m.mu.Unlock()
		return f, nil
	}
	m.mu.Unlock()

	client := telegram.NewClient(m.apiID, m.apiHash, telegram.Options{
		SessionStorage: &session.FileStorage{
			Path: filepath.Join(m.sessionDir, sessionName+".json"),
		},
		Logger: m.log.Named(sessionName),
	})

	runCtx, cancel := context.WithCancel(context.Background())
	f := &gotdFlow{client: client, cancel: cancel, done: make(chan error, 1)}
	ready := make(chan struct{})

	go func() {
		err := client.Run(runCtx, func(ctx context.Context) error {
			close(ready)
			<-ctx.Done()
			return ctx.Err()
		})
		f.done <- err
		close(f.done)
	}()

	select {
	case <-ready:
	case err := <-f.done:
		cancel()
		if err == nil {
			err = errors.New("telegram client stopped before becoming ready")
		}
		return nil, err
	case <-ctx.Done():
		cancel()
		return nil, ctx.Err()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.flows[sessionName]; ok {
		// Кто-то успел раньше, гасим свой клиент.
		cancel()
		existing.idle.Reset(flowIdleTTL)
		return existing, nil
	}
	f.idle = time.AfterFunc(flowIdleTTL, func() { m.Release(sessionName) })
	m.flows[sessionName] = f
	return f, nil
}

func (m *Manager) Release(sessionName string) {
	m.mu.Lock()
	f, ok := m.flows[sessionName]
	delete(m.flows, sessionName)
	m.mu.Unlock()
	if ok {
		f.idle.Stop()
		f.cancel()
	}
}

type gotdFlow struct {
	client *telegram.Client
	cancel context.CancelFunc
	done   chan error
	idle   *time.Timer
}

func (f *gotdFlow) SendCode(ctx context.Context, phone string) (string, error) {
	sent, err := f.client.Auth().SendCode(ctx, phone, auth.SendCodeOptions{})
	if err != nil {
		return "", err
	}
	code, ok := sent.(*tg.AuthSentCode)
	if !ok {
		return "", fmt.Errorf("unexpected sent code type %T", sent)
	}
	return code.PhoneCodeHash, nil
}

func (f *gotdFlow) SignIn(ctx context.Context, phone, code, codeHash string) (*models.LinkedUser, error) {
	authz, err := f.client.Auth().SignIn(ctx, phone, code, codeHash)
	if errors.Is(err, auth.ErrPasswordAuthNeeded) {
		return nil, ErrPasswordNeeded
	}
	if err != nil {
		return nil, err
	}
	return linkedUser(authz)
}

func (f *gotdFlow) Password(ctx context.Context, password string) (*models.LinkedUser, error) {
	authz, err := f.client.Auth().Password(ctx, password)
	if err != nil {
		return nil, err
	}
	return linkedUser(authz)
}

func linkedUser(authz *tg.AuthAuthorization) (*models.LinkedUser, error) {
	u, ok := authz.User.(*tg.User)
	if !ok {
		return nil, fmt.Errorf("unexpected authorized user type %T", authz.User)
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.Username
	}
	return &models.LinkedUser{
		ID:   strconv.FormatInt(u.ID, 10),
		Name: name,
	}, nil
}

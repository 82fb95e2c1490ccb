package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"civil-defense-app/internal/session/adapter/persistence"
	"civil-defense-app/internal/session/domain/model"
	"civil-defense-app/internal/session/usecase"
	apperrors "civil-defense-app/internal/shared/errors"
	"civil-defense-app/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// Mock backend
type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) Load(ctx context.Context) (model.Session, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.Session), args.Error(1)
}

func (m *mockBackend) Save(ctx context.Context, session model.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockBackend) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockBackend) Close() error {
	args := m.Called()
	return args.Error(0)
}

type StoreTestSuite struct {
	suite.Suite
	ctx     context.Context
	backend *mockBackend
	store   *usecase.Store
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.backend = new(mockBackend)
	s.backend.On("Load", mock.Anything).Return(model.Session{}, nil).Once()

	store, err := usecase.NewStore(s.ctx, s.backend, logger.NewNopLogger())
	s.Require().NoError(err)
	s.store = store
}

func (s *StoreTestSuite) TearDownTest() {
	s.backend.AssertExpectations(s.T())
}

func (s *StoreTestSuite) TestStartsAnonymous() {
	s.False(s.store.Current().IsAuthenticated())
	s.Empty(s.store.Token())
}

func (s *StoreTestSuite) TestSet_PersistsThenExposes() {
	session := model.Session{Token: "tok", UserID: "9"}
	s.backend.On("Save", mock.Anything, session).Return(nil).Once()

	s.Require().NoError(s.store.Set(s.ctx, session))
	s.Equal(session, s.store.Current())
	s.Equal("tok", s.store.Token())
}

func (s *StoreTestSuite) TestSet_BackendFailureKeepsPreviousPair() {
	session := model.Session{Token: "tok", UserID: "9"}
	s.backend.On("Save", mock.Anything, session).Return(errors.New("disk full")).Once()

	err := s.store.Set(s.ctx, session)
	s.Require().Error(err)
	s.Equal(apperrors.ErrorTypeInfrastructure, err.(*apperrors.AppError).Type)
	s.False(s.store.Current().IsAuthenticated())
}

func (s *StoreTestSuite) TestClear() {
	session := model.Session{Token: "tok", UserID: "9"}
	s.backend.On("Save", mock.Anything, session).Return(nil).Once()
	s.backend.On("Clear", mock.Anything).Return(nil).Once()

	s.Require().NoError(s.store.Set(s.ctx, session))
	s.Require().NoError(s.store.Clear(s.ctx))
	s.Equal(model.Session{}, s.store.Current())
}

func (s *StoreTestSuite) TestClear_BackendFailureStillDropsToken() {
	session := model.Session{Token: "tok", UserID: "9"}
	s.backend.On("Save", mock.Anything, session).Return(nil).Once()
	s.backend.On("Clear", mock.Anything).Return(errors.New("read-only fs")).Once()

	s.Require().NoError(s.store.Set(s.ctx, session))
	s.Error(s.store.Clear(s.ctx))
	s.Empty(s.store.Token())
}

func (s *StoreTestSuite) TestClose() {
	s.backend.On("Close").Return(nil).Once()
	s.NoError(s.store.Close())
}

func (s *StoreTestSuite) TestSet_ReadersDoNotWaitOnBackend() {
	old := model.Session{Token: "old", UserID: "1"}
	s.backend.On("Save", mock.Anything, old).Return(nil).Once()
	s.Require().NoError(s.store.Set(s.ctx, old))

	next := model.Session{Token: "new", UserID: "2"}
	saving := make(chan struct{})
	release := make(chan struct{})
	s.backend.On("Save", mock.Anything, next).Run(func(mock.Arguments) {
		close(saving)
		<-release
	}).Return(nil).Once()

	done := make(chan error, 1)
	go func() { done <- s.store.Set(s.ctx, next) }()
	<-saving

	read := make(chan string, 1)
	go func() { read <- s.store.Token() }()
	select {
	case token := <-read:
		s.Equal("old", token)
	case <-time.After(2 * time.Second):
		s.Fail("Token() blocked while the backend was saving")
	}

	close(release)
	s.Require().NoError(<-done)
	s.Equal(next, s.store.Current())
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func TestNewStore_LoadsPersistedSession(t *testing.T) {
	backend := persistence.NewMemoryBackend()
	require.NoError(t, backend.Save(context.Background(), model.Session{Token: "persisted", UserID: "1"}))

	store, err := usecase.NewStore(context.Background(), backend, logger.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, "persisted", store.Token())
	assert.Equal(t, "1", store.Current().UserID)
}

func TestNewStore_LoadFailure(t *testing.T) {
	backend := new(mockBackend)
	backend.On("Load", mock.Anything).Return(model.Session{}, errors.New("boom"))

	_, err := usecase.NewStore(context.Background(), backend, logger.NewNopLogger())
	assert.Error(t, err)
}

func TestStore_ConcurrentReadersSeeWholePairs(t *testing.T) {
	store, err := usecase.NewStore(context.Background(), persistence.NewMemoryBackend(), logger.NewNopLogger())
	require.NoError(t, err)

	pairs := []model.Session{
		{Token: "a", UserID: "1"},
		{Token: "b", UserID: "2"},
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			_ = store.Set(context.Background(), pairs[i%2])
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				cur := store.Current()
				switch cur.Token {
				case "":
					assert.Empty(t, cur.UserID)
				case "a":
					assert.Equal(t, "1", cur.UserID)
				case "b":
					assert.Equal(t, "2", cur.UserID)
				}
			}
		}()
	}
	wg.Wait()
}

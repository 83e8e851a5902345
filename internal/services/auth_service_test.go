package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
	apierrors "github.com/yukikurage/kanban-web/internal/errors"
	"github.com/yukikurage/kanban-web/internal/models"
	"github.com/yukikurage/kanban-web/internal/repository"
	"github.com/yukikurage/kanban-web/internal/testutil"
)

// SessionTestSuite defines the test suite for Session
type SessionTestSuite struct {
	suite.Suite
	ctx     context.Context
	api     *testutil.FakeAPI
	store   *MemoryTokenStore
	session *Session
}

func (suite *SessionTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.api = testutil.NewFakeAPI(suite.T())
	suite.api.SeedUser("alice", "secret123")

	suite.store = &MemoryTokenStore{}
	client := repository.NewClient(suite.api.URL(), nil, suite.store, nil)
	suite.session = NewSession(repository.NewAuthRepository(client), suite.store, nil)
}

func (suite *SessionTestSuite) TestLoginStoresTokensAndLoadsUser() {
	user, err := suite.session.Login(suite.ctx, LoginInput{Username: "alice", Password: "secret123"})

	suite.Require().NoError(err)
	suite.Equal("alice", user.Username)
	suite.True(suite.session.IsAuthenticated())

	tokens, _ := suite.store.Load(suite.ctx)
	suite.NotEmpty(tokens.AccessToken)
	suite.NotEmpty(tokens.RefreshToken)

	current, err := suite.session.User()
	suite.Require().NoError(err)
	suite.Equal(user, current)
}

func (suite *SessionTestSuite) TestLoginWithWrongPassword() {
	_, err := suite.session.Login(suite.ctx, LoginInput{Username: "alice", Password: "nope"})

	suite.Require().Error(err)
	var apiErr *apierrors.APIError
	suite.Require().True(errors.As(err, &apiErr))
	suite.Equal(http.StatusUnauthorized, apiErr.StatusCode)
	suite.Equal("Incorrect username or password", apiErr.Detail)
	suite.False(suite.session.IsAuthenticated())

	tokens, _ := suite.store.Load(suite.ctx)
	suite.Empty(tokens.AccessToken)
}

func (suite *SessionTestSuite) TestLoginRequiresCredentials() {
	_, err := suite.session.Login(suite.ctx, LoginInput{})

	var verr *ValidationError
	suite.Require().True(errors.As(err, &verr))
	suite.Contains(verr.Fields, "username")
	suite.Contains(verr.Fields, "password")
	suite.Zero(suite.api.TotalCalls())
}

func (suite *SessionTestSuite) TestInitRestoresUser() {
	_, err := suite.session.Login(suite.ctx, LoginInput{Username: "alice", Password: "secret123"})
	suite.Require().NoError(err)

	client := repository.NewClient(suite.api.URL(), nil, suite.store, nil)
	restored := NewSession(repository.NewAuthRepository(client), suite.store, nil)
	suite.Require().NoError(restored.Init(suite.ctx))

	user, err := restored.User()
	suite.Require().NoError(err)
	suite.Equal("alice", user.Username)
}

func (suite *SessionTestSuite) TestInitClearsRejectedTokens() {
	suite.Require().NoError(suite.store.Save(suite.ctx, models.Tokens{AccessToken: "stale", RefreshToken: "stale"}))

	suite.Require().NoError(suite.session.Init(suite.ctx))

	suite.False(suite.session.IsAuthenticated())
	tokens, _ := suite.store.Load(suite.ctx)
	suite.Equal(models.Tokens{}, tokens)
}

func (suite *SessionTestSuite) TestInitWithoutTokensMakesNoCalls() {
	suite.Require().NoError(suite.session.Init(suite.ctx))

	suite.False(suite.session.IsAuthenticated())
	suite.Zero(suite.api.TotalCalls())
	_, err := suite.session.User()
	suite.ErrorIs(err, ErrNotAuthenticated)
}

func (suite *SessionTestSuite) TestRegisterDoesNotLogIn() {
	user, err := suite.session.Register(suite.ctx, RegisterInput{
		Username:        "bob",
		Email:           "bob@example.com",
		FullName:        "Bob Builder",
		Password:        "hunter22",
		ConfirmPassword: "hunter22",
	})

	suite.Require().NoError(err)
	suite.Equal("bob", user.Username)
	suite.Equal("Bob Builder", user.FullName)
	suite.False(suite.session.IsAuthenticated())
}

func (suite *SessionTestSuite) TestRegisterValidation() {
	tests := []struct {
		name  string
		input RegisterInput
		field string
	}{
		{"short username", RegisterInput{Username: "ab", Email: "a@b.co", Password: "secret1", ConfirmPassword: "secret1"}, "username"},
		{"bad email", RegisterInput{Username: "bob", Email: "not-an-email", Password: "secret1", ConfirmPassword: "secret1"}, "email"},
		{"short password", RegisterInput{Username: "bob", Email: "a@b.co", Password: "12345", ConfirmPassword: "12345"}, "password"},
		{"mismatch", RegisterInput{Username: "bob", Email: "a@b.co", Password: "secret1", ConfirmPassword: "secret2"}, "confirm_password"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.session.Register(suite.ctx, tt.input)

			var verr *ValidationError
			suite.Require().True(errors.As(err, &verr))
			suite.Contains(verr.Fields, tt.field)
		})
	}
	suite.Zero(suite.api.TotalCalls())
}

func (suite *SessionTestSuite) TestRegisterDuplicateUsername() {
	_, err := suite.session.Register(suite.ctx, RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "secret123", ConfirmPassword: "secret123",
	})

	suite.Require().Error(err)
	suite.Equal(http.StatusBadRequest, apierrors.StatusCode(err))
}

func (suite *SessionTestSuite) TestRefreshRotatesTokens() {
	_, err := suite.session.Login(suite.ctx, LoginInput{Username: "alice", Password: "secret123"})
	suite.Require().NoError(err)
	before, _ := suite.store.Load(suite.ctx)

	suite.Require().NoError(suite.session.Refresh(suite.ctx))

	after, _ := suite.store.Load(suite.ctx)
	suite.NotEqual(before.AccessToken, after.AccessToken)
	suite.NotEqual(before.RefreshToken, after.RefreshToken)
	suite.True(suite.session.IsAuthenticated())
}

func (suite *SessionTestSuite) TestRefreshFailureLogsOut() {
	_, err := suite.session.Login(suite.ctx, LoginInput{Username: "alice", Password: "secret123"})
	suite.Require().NoError(err)
	tokens, _ := suite.store.Load(suite.ctx)
	tokens.RefreshToken = "revoked"
	suite.Require().NoError(suite.store.Save(suite.ctx, tokens))

	suite.Require().Error(suite.session.Refresh(suite.ctx))

	suite.False(suite.session.IsAuthenticated())
	cleared, _ := suite.store.Load(suite.ctx)
	suite.Equal(models.Tokens{}, cleared)
}

func (suite *SessionTestSuite) TestRefreshWithoutToken() {
	suite.ErrorIs(suite.session.Refresh(suite.ctx), ErrNoRefreshToken)
}

func (suite *SessionTestSuite) TestTeardownClearsTokens() {
	_, err := suite.session.Login(suite.ctx, LoginInput{Username: "alice", Password: "secret123"})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.session.Teardown(suite.ctx))

	suite.False(suite.session.IsAuthenticated())
	tokens, _ := suite.store.Load(suite.ctx)
	suite.Equal(models.Tokens{}, tokens)
}

func TestSessionTestSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}

package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"medcard/config"
	"medcard/internal/core"
	"medcard/internal/database/mongodb/model"
	cErr "medcard/internal/pkg/error"
	"medcard/internal/service/vk"
	"medcard/internal/service/vk/mocks"
	"medcard/internal/telemetry"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type AccessServiceSuite struct {
	suite.Suite
	external  *mocks.MockService
	profiles  *memoryProfileStore
	events    *memoryEventStore
	viewLogs  *memoryViewLogStore
	publisher *recordingPublisher
	service   *AccessService

	alice *model.Profile // userId 100, allowView 0
	bob   *model.Profile // userId 200, allowView 0
	carol *model.Profile // userId 300, allowView 1
	dave  *model.Profile // userId 400, allowView 2
}

func TestAccessServiceSuite(t *testing.T) {
	suite.Run(t, new(AccessServiceSuite))
}

func (s *AccessServiceSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.external = mocks.NewMockService(ctrl)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-time.Hour)
	s.alice = model.NewProfile(100, "Alice", "https://vk.test/a.jpg", nil, nil, recent)
	s.bob = model.NewProfile(200, "Bob", "https://vk.test/b.jpg", nil, nil, recent)
	s.carol = model.NewProfile(300, "Carol", "", nil, nil, recent)
	s.carol.AllowView = core.VisibilityByToken
	s.dave = model.NewProfile(400, "Dave", "", nil, nil, recent)
	s.dave.AllowView = core.VisibilityClosed

	s.profiles = newMemoryProfileStore(s.alice, s.bob, s.carol, s.dave)
	s.events = &memoryEventStore{events: map[int64][]model.Event{
		100: {{ID: primitive.NewObjectID(), UserID: 100, Title: "Allergist"}},
		300: {{ID: primitive.NewObjectID(), UserID: 300, Title: "Dentist"}},
	}}
	s.viewLogs = &memoryViewLogStore{logs: []model.ViewLog{
		{ID: primitive.NewObjectID(), ViewerUserID: 100, ViewedUserID: 300, ShareMode: core.ShareModeToken},
		{ID: primitive.NewObjectID(), ViewerUserID: 100, ViewedUserID: 400, ShareMode: core.ShareModeID},
	}}
	s.publisher = &recordingPublisher{}

	conf := &config.Configuration{FloodControl: config.FloodControl{Window: time.Minute}}
	trace, metric, logger := &telemetry.Trace{}, &telemetry.Metric{}, zap.NewNop()
	lifecycle := NewProfileService(trace, metric, logger, conf, s.profiles, s.events, s.viewLogs, s.external)
	lifecycle.now = func() time.Time { return now }

	s.service = NewAccessService(trace, metric, logger, lifecycle, s.profiles, s.events, s.viewLogs, s.publisher)
	s.service.now = func() time.Time { return now }
}

func (s *AccessServiceSuite) requireAppError(err error, httpCode, errorCode int) *cErr.Error {
	s.Require().Error(err)
	var appErr *cErr.Error
	s.Require().True(errors.As(err, &appErr), "expected *cErr.Error, got %T", err)
	s.Equal(httpCode, appErr.HttpCode())
	s.Equal(errorCode, appErr.ErrorCode())
	return appErr
}

func (s *AccessServiceSuite) TestNewTargetRef() {
	s.Equal(TargetRef{Kind: core.TargetSelf}, NewTargetRef("", ""))
	s.Equal(TargetRef{Kind: core.TargetByID, Value: "a1"}, NewTargetRef("a1", ""))
	s.Equal(TargetRef{Kind: core.TargetByToken, Value: "tok"}, NewTargetRef(" ", "tok"))
	// uuid 優先
	s.Equal(TargetRef{Kind: core.TargetByID, Value: "a1"}, NewTargetRef("a1", "tok"))
}

func (s *AccessServiceSuite) TestSelfView_ReturnsOwnHistoryWithoutLogging() {
	view, err := s.service.ResolveAccess(context.Background(), RequesterRef{UserID: 100}, NewTargetRef("", ""))
	s.Require().NoError(err)

	s.Equal(s.alice.ID.Hex(), view.ID)
	s.Equal(s.alice.ShareToken, view.UUIDv4)
	s.Len(view.Events, 1)
	s.Len(view.History, 2)
	s.Equal(2, s.viewLogs.count())
	s.Empty(s.publisher.records)
}

func (s *AccessServiceSuite) TestSelfView_CreatesUnknownRequester() {
	s.external.EXPECT().Fetch(gomock.Any(), int64(999)).Return(&vk.UserInfo{UserName: "Newcomer"}, nil)

	view, err := s.service.ResolveAccess(context.Background(), RequesterRef{UserID: 999}, NewTargetRef("", ""))
	s.Require().NoError(err)
	s.Equal("Newcomer", view.UserName)
	s.Empty(view.History)
	s.NotNil(s.profiles.get(999))
}

func (s *AccessServiceSuite) TestSelfView_OwnReferenceOnEitherChannel() {
	ctx := context.Background()

	byID, err := s.service.ResolveAccess(ctx, RequesterRef{UserID: 100}, NewTargetRef(s.alice.ID.Hex(), ""))
	s.Require().NoError(err)
	s.Len(byID.History, 2)

	byToken, err := s.service.ResolveAccess(ctx, RequesterRef{UserID: 100}, NewTargetRef("", s.alice.ShareToken))
	s.Require().NoError(err)
	s.Len(byToken.History, 2)

	s.Equal(2, s.viewLogs.count())
}

// B(200) 以 uuid 查看 A(100, allowView 0)
func (s *AccessServiceSuite) TestShareByID_Succeeds() {
	view, err := s.service.ResolveAccess(context.Background(), RequesterRef{UserID: 200}, NewTargetRef(s.alice.ID.Hex(), ""))
	s.Require().NoError(err)

	s.Equal(s.alice.ID.Hex(), view.ID)
	s.Equal(int64(100), view.UserID)
	s.Equal("Alice", view.UserName)
	s.Empty(view.History, "history is never disclosed to a share viewer")
	s.NotNil(view.History)
	s.Empty(view.UUIDv4)
	s.Require().Len(view.Events, 1)
	s.Equal("Allergist", view.Events[0].Title)

	s.Require().Equal(3, s.viewLogs.count())
	logged := s.viewLogs.logs[2]
	s.Equal(int64(200), logged.ViewerUserID)
	s.Equal(int64(100), logged.ViewedUserID)
	s.Equal(core.ShareModeID, logged.ShareMode)
	s.Equal("Alice", logged.ViewedUserName)

	s.Require().Len(s.publisher.records, 1)
	s.Equal(0, s.publisher.records[0].ShareMode)
}

func (s *AccessServiceSuite) TestShareByID_DeniedUnlessVisibilityZero() {
	for _, target := range []*model.Profile{s.carol, s.dave} {
		_, err := s.service.ResolveAccess(context.Background(), RequesterRef{UserID: 200}, NewTargetRef(target.ID.Hex(), ""))
		appErr := s.requireAppError(err, http.StatusUnauthorized, cErr.WRONG_SHARE)
		s.Equal("Wrong uuid or wrong type", appErr.ErrorDesc())
	}
	s.Equal(2, s.viewLogs.count())
}

func (s *AccessServiceSuite) TestShareByID_UnknownOrMalformedTarget() {
	ctx := context.Background()

	_, err := s.service.ResolveAccess(ctx, RequesterRef{UserID: 200}, NewTargetRef(primitive.NewObjectID().Hex(), ""))
	s.requireAppError(err, http.StatusNotFound, cErr.NOT_FOUND)

	_, err = s.service.ResolveAccess(ctx, RequesterRef{UserID: 200}, NewTargetRef("not-an-object-id", ""))
	s.requireAppError(err, http.StatusNotFound, cErr.NOT_FOUND)
}

func (s *AccessServiceSuite) TestShareByToken_Succeeds() {
	view, err := s.service.ResolveAccess(context.Background(), RequesterRef{UserID: 200}, NewTargetRef("", s.carol.ShareToken))
	s.Require().NoError(err)

	s.Equal(int64(300), view.UserID)
	s.Empty(view.History)
	s.Require().Len(view.Events, 1)

	s.Require().Equal(3, s.viewLogs.count())
	logged := s.viewLogs.logs[2]
	s.Equal(int64(200), logged.ViewerUserID)
	s.Equal(int64(300), logged.ViewedUserID)
	s.Equal(core.ShareModeToken, logged.ShareMode)
}

func (s *AccessServiceSuite) TestShareByToken_DeniedUnlessVisibilityOne() {
	_, err := s.service.ResolveAccess(context.Background(), RequesterRef{UserID: 200}, NewTargetRef("", s.alice.ShareToken))
	s.requireAppError(err, http.StatusUnauthorized, cErr.WRONG_SHARE)

	_, err = s.service.ResolveAccess(context.Background(), RequesterRef{UserID: 200}, NewTargetRef("", s.dave.ShareToken))
	s.requireAppError(err, http.StatusUnauthorized, cErr.WRONG_SHARE)

	s.Equal(2, s.viewLogs.count())
}

func (s *AccessServiceSuite) TestShareByToken_UnknownToken() {
	_, err := s.service.ResolveAccess(context.Background(), RequesterRef{UserID: 200}, NewTargetRef("", "00000000-0000-4000-8000-000000000000"))
	s.requireAppError(err, http.StatusNotFound, cErr.NOT_FOUND)
}

func (s *AccessServiceSuite) TestShareByToken_RotatedTokenNoLongerWorks() {
	old := s.carol.ShareToken
	_, err := s.service.lifecycle.RotateShareToken(context.Background(), 300)
	s.Require().NoError(err)

	_, err = s.service.ResolveAccess(context.Background(), RequesterRef{UserID: 200}, NewTargetRef("", old))
	s.requireAppError(err, http.StatusNotFound, cErr.NOT_FOUND)
}

func (s *AccessServiceSuite) TestShare_UnknownRequester() {
	_, err := s.service.ResolveAccess(context.Background(), RequesterRef{UserID: 999}, NewTargetRef(s.alice.ID.Hex(), ""))
	s.requireAppError(err, http.StatusNotFound, cErr.PROFILE_NOT_FOUND)
}

func (s *AccessServiceSuite) TestShare_ViewLogFailureDoesNotBlockRead() {
	s.viewLogs.appendErr = errors.New("write concern timeout")

	view, err := s.service.ResolveAccess(context.Background(), RequesterRef{UserID: 200}, NewTargetRef(s.alice.ID.Hex(), ""))
	s.Require().NoError(err)
	s.Equal(int64(100), view.UserID)
	s.Empty(s.publisher.records)
}

func (s *AccessServiceSuite) TestShare_EachViewAppendsExactlyOneEntry() {
	for i := 1; i <= 3; i++ {
		_, err := s.service.ResolveAccess(context.Background(), RequesterRef{UserID: 400}, NewTargetRef(s.alice.ID.Hex(), ""))
		s.Require().NoError(err)
		s.Equal(2+i, s.viewLogs.count())
	}
	s.Len(s.publisher.records, 3)
}

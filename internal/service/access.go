package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"medcard/internal/core"
	fluentdModel "medcard/internal/database/fluentd/model"
	"medcard/internal/database/mongodb/model"
	"medcard/internal/dto"
	cErr "medcard/internal/pkg/error"
	"medcard/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RequesterRef 呼叫者（由 JWT 取得的 VK user id）
type RequesterRef struct {
	UserID int64
}

// TargetRef 查詢目標；Kind 為 TargetSelf 時 Value 忽略
type TargetRef struct {
	Kind  core.TargetKind
	Value string
}

// NewTargetRef uuid 優先於 uuidv4；兩者皆空為自我檢視
func NewTargetRef(uuid, uuidv4 string) TargetRef {
	if uuid = strings.TrimSpace(uuid); uuid != "" {
		return TargetRef{Kind: core.TargetByID, Value: uuid}
	}
	if uuidv4 = strings.TrimSpace(uuidv4); uuidv4 != "" {
		return TargetRef{Kind: core.TargetByToken, Value: uuidv4}
	}
	return TargetRef{Kind: core.TargetSelf}
}

// AccessService 決定 (requester, target) 屬於自我檢視、uuid 分享、uuidv4 分享或拒絕
type AccessService struct {
	trace     *telemetry.Trace
	metric    *telemetry.Metric
	logger    *zap.Logger
	lifecycle *ProfileService
	profiles  ProfileStore
	events    EventStore
	viewLogs  ViewLogStore
	publisher ViewLogPublisher
	now       func() time.Time
}

func NewAccessService(
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	logger *zap.Logger,
	lifecycle *ProfileService,
	profiles ProfileStore,
	events EventStore,
	viewLogs ViewLogStore,
	publisher ViewLogPublisher,
) *AccessService {
	return &AccessService{
		trace:     trace,
		metric:    metric,
		logger:    logger,
		lifecycle: lifecycle,
		profiles:  profiles,
		events:    events,
		viewLogs:  viewLogs,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *AccessService) ResolveAccess(ctx context.Context, requester RequesterRef, target TargetRef) (_ *dto.ProfileViewDto, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	meta := core.TraceProfileAccessMeta{RequesterUserID: requester.UserID, TargetKind: target.Kind.String()}
	defer func() { s.trace.ApplyTraceAttributes(span, meta) }()

	if target.Kind == core.TargetSelf {
		meta.Decision = "self"
		return s.selfView(ctx, requester.UserID)
	}

	requesterProfile, err := s.profiles.FindByUserID(ctx, requester.UserID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.ProfileNotFound("User not found")
		}
		return nil, cErr.DatabaseError("database FindByUserID error").Wrap(err)
	}

	var (
		client *model.Profile
		mode   core.ShareMode
	)
	switch target.Kind {
	case core.TargetByID:
		if requesterProfile.ID.Hex() == target.Value {
			meta.Decision = "self"
			return s.selfView(ctx, requester.UserID)
		}
		client, err = s.findClientByID(ctx, target.Value)
		if err != nil {
			return nil, err
		}
		if client.AllowView != core.VisibilityByID {
			meta.Decision = "denied"
			return nil, cErr.WrongShare()
		}
		mode = core.ShareModeID

	case core.TargetByToken:
		if requesterProfile.ShareToken == target.Value {
			meta.Decision = "self"
			return s.selfView(ctx, requester.UserID)
		}
		client, err = s.profiles.FindByShareToken(ctx, target.Value)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, cErr.NotFound("Client not found")
			}
			return nil, cErr.DatabaseError("database FindByShareToken error").Wrap(err)
		}
		if client.ShareToken != target.Value || client.AllowView != core.VisibilityByToken {
			meta.Decision = "denied"
			return nil, cErr.WrongShare()
		}
		mode = core.ShareModeToken

	default:
		return nil, cErr.BadRequestParams("unknown target kind")
	}

	meta.TargetUserID = client.UserID
	meta.Decision = "share"
	return s.shareView(ctx, requesterProfile, client, mode)
}

func (s *AccessService) selfView(ctx context.Context, userID int64) (*dto.ProfileViewDto, error) {
	view, _, err := s.lifecycle.GetOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProfileViewDto(view, true), nil
}

func (s *AccessService) findClientByID(ctx context.Context, hex string) (*model.Profile, error) {
	clientID, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return nil, cErr.NotFound("Client not found")
	}
	client, err := s.profiles.FindByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.NotFound("Client not found")
		}
		return nil, cErr.DatabaseError("database FindByID error").Wrap(err)
	}
	return client, nil
}

// shareView 分享檢視：附上對方 events、寫入一筆瀏覽紀錄，history 一律為空
func (s *AccessService) shareView(ctx context.Context, requester, client *model.Profile, mode core.ShareMode) (*dto.ProfileViewDto, error) {
	events, err := s.events.FindByUserID(ctx, client.UserID)
	if err != nil {
		return nil, cErr.DatabaseError("database FindEvents error").Wrap(err)
	}

	s.recordView(ctx, requester, client, mode)
	s.metric.IncShareView(mode)

	view := &ProfileView{Profile: client, Events: nonNilEvents(events), History: []model.ViewLog{}}
	return toProfileViewDto(view, false), nil
}

// recordView 寫入失敗只記 warning，不影響合法的讀取
func (s *AccessService) recordView(ctx context.Context, requester, client *model.Profile, mode core.ShareMode) {
	viewLog := &model.ViewLog{
		ViewerUserID:   requester.UserID,
		ViewedUserID:   client.UserID,
		ViewedUserName: client.UserName,
		ViewedPhoto:    client.Photo,
		ShareMode:      mode,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.viewLogs.Append(ctx, viewLog); err != nil {
		oteltrace.SpanFromContext(ctx).RecordError(err)
		s.logger.Warn("append view log failed",
			zap.Int64("viewer", requester.UserID),
			zap.Int64("viewed", client.UserID),
			zap.Int("mode", int(mode)),
			zap.Error(err))
		return
	}

	record := fluentdModel.ProfileViewLog{
		ViewerUserID: requester.UserID,
		ViewedUserID: client.UserID,
		ShareMode:    int(mode),
	}
	if spanContext := oteltrace.SpanContextFromContext(ctx); spanContext.HasTraceID() {
		record.RequestID = spanContext.TraceID().String()
	}
	if err := s.publisher.LogProfileView(ctx, record); err != nil {
		s.logger.Warn("publish view log failed", zap.Error(err))
	}
}

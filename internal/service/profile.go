package service

import (
	"context"
	"errors"
	"time"

	"medcard/config"
	"medcard/internal/core"
	"medcard/internal/database/mongodb/model"
	"medcard/internal/database/mongodb/repository"
	"medcard/internal/dto"
	cErr "medcard/internal/pkg/error"
	"medcard/internal/service/vk"
	"medcard/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ProfileView 個人檔案與附帶的 events / history
type ProfileView struct {
	Profile *model.Profile
	Events  []model.Event
	History []model.ViewLog
}

// ProfileService 個人檔案生命週期：首次建立、過期刷新、擁有者修改
type ProfileService struct {
	trace       *telemetry.Trace
	metric      *telemetry.Metric
	logger      *zap.Logger
	profiles    ProfileStore
	events      EventStore
	viewLogs    ViewLogStore
	external    vk.Service
	floodWindow time.Duration
	now         func() time.Time
}

func NewProfileService(
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	logger *zap.Logger,
	conf *config.Configuration,
	profiles ProfileStore,
	events EventStore,
	viewLogs ViewLogStore,
	external vk.Service,
) *ProfileService {
	return &ProfileService{
		trace:       trace,
		metric:      metric,
		logger:      logger,
		profiles:    profiles,
		events:      events,
		viewLogs:    viewLogs,
		external:    external,
		floodWindow: conf.FloodControl.Window,
		now:         time.Now,
	}
}

// GetOrCreateProfile 不存在時以 VK 資料建立（Created），否則回傳既有檔案並視需要刷新（Found）
func (s *ProfileService) GetOrCreateProfile(ctx context.Context, userID int64) (_ *ProfileView, _ core.LoadState, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	meta := core.TraceProfileAccessMeta{RequesterUserID: userID, TargetKind: core.TargetSelf.String()}
	defer func() { s.trace.ApplyTraceAttributes(span, meta) }()

	profile, err := s.profiles.FindByUserID(ctx, userID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		view, state, createErr := s.createProfile(ctx, userID)
		meta.LoadState = string(state)
		return view, state, createErr
	}
	if err != nil {
		return nil, "", cErr.DatabaseError("database FindByUserID error").Wrap(err)
	}
	meta.LoadState = string(core.LoadStateFound)

	refreshed, err := s.refreshIfStale(ctx, profile)
	if err != nil {
		return nil, "", err
	}
	meta.Refreshed = refreshed

	view, err := s.ownerView(ctx, profile)
	if err != nil {
		return nil, "", err
	}
	return view, core.LoadStateFound, nil
}

func (s *ProfileService) createProfile(ctx context.Context, userID int64) (*ProfileView, core.LoadState, error) {
	info, err := s.external.Fetch(ctx, userID)
	if err != nil {
		return nil, "", upstreamError(err)
	}

	profile := model.NewProfile(userID, info.UserName, info.Photo, info.Sex, info.Birthday, s.now().UTC())
	created, err := s.profiles.Insert(ctx, profile)
	if errors.Is(err, repository.ErrDuplicateProfile) {
		// 併發首次存取：另一個請求已建立
		existing, findErr := s.profiles.FindByUserID(ctx, userID)
		if findErr != nil {
			return nil, "", cErr.DatabaseError("database FindByUserID error").Wrap(findErr)
		}
		view, viewErr := s.ownerView(ctx, existing)
		return view, core.LoadStateFound, viewErr
	}
	if err != nil {
		s.logger.Error("create profile failed", zap.Int64("userId", userID), zap.Error(err))
		return nil, "", cErr.DatabaseError("database Insert profile error").Wrap(err)
	}

	s.logger.Info("profile created", zap.Int64("userId", userID))
	return &ProfileView{Profile: created, Events: []model.Event{}, History: []model.ViewLog{}}, core.LoadStateCreated, nil
}

// refreshIfStale 超過 StaleAfterDays 個完整天數未修改/同步時，重新抓取名稱與頭像
func (s *ProfileService) refreshIfStale(ctx context.Context, profile *model.Profile) (bool, error) {
	now := s.now().UTC()
	if !isStale(profile, now) {
		return false, nil
	}

	info, err := s.external.Fetch(ctx, profile.UserID)
	if err != nil {
		return false, upstreamError(err)
	}
	if _, err := s.profiles.SyncExternalFields(ctx, profile.UserID, info.UserName, info.Photo, now); err != nil {
		return false, cErr.DatabaseError("database SyncExternalFields error").Wrap(err)
	}
	profile.UserName = info.UserName
	profile.Photo = info.Photo
	profile.SyncedAt = &now
	return true, nil
}

// isStale 以完整天數計算（不足一天捨去）
func isStale(profile *model.Profile, now time.Time) bool {
	days := int(now.Sub(profile.LastTouchedAt()).Hours() / 24)
	return days > core.StaleAfterDays
}

// ownerView 擁有者檢視：events 與自己的瀏覽紀錄並行讀取
func (s *ProfileService) ownerView(ctx context.Context, profile *model.Profile) (*ProfileView, error) {
	var (
		events  []model.Event
		history []model.ViewLog
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if events, err = s.events.FindByUserID(gctx, profile.UserID); err != nil {
			return cErr.DatabaseError("database FindEvents error").Wrap(err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if history, err = s.viewLogs.FindByViewerUserID(gctx, profile.UserID); err != nil {
			return cErr.DatabaseError("database FindHistory error").Wrap(err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ProfileView{Profile: profile, Events: nonNilEvents(events), History: nonNilViewLogs(history)}, nil
}

// ==== 疾病 ====

func (s *ProfileService) AddDisease(ctx context.Context, userID int64, in *dto.DiseaseDto) (*dto.DiseaseResponseDto, error) {
	entry := model.Disease{
		ID:        primitive.NewObjectID(),
		Title:     in.Title,
		DateStart: in.DateStart.Time(),
		DateEnd:   in.DateEnd.Time(),
		Color:     in.Color,
	}
	if err := s.pushWithFloodControl(ctx, userID, core.ProfileArrayDiseases, entry); err != nil {
		return nil, err
	}
	return toDiseaseResponseDto(entry), nil
}

// EditDisease 整筆覆寫；找不到 diseaseID 時不做任何事
func (s *ProfileService) EditDisease(ctx context.Context, userID int64, diseaseID primitive.ObjectID, in *dto.DiseaseDto) (*dto.MutationResultDto, error) {
	fields := bson.M{
		"title":     in.Title,
		"dateStart": in.DateStart.Time(),
		"dateEnd":   in.DateEnd.Time(),
		"color":     in.Color,
	}
	return s.updateArrayEntry(ctx, userID, core.ProfileArrayDiseases, diseaseID, fields)
}

func (s *ProfileService) DeleteDisease(ctx context.Context, userID int64, diseaseID primitive.ObjectID) (*dto.MutationResultDto, error) {
	return s.pullArrayEntry(ctx, userID, core.ProfileArrayDiseases, diseaseID)
}

// ==== 過敏原 ====

func (s *ProfileService) AddAllergen(ctx context.Context, userID int64, in *dto.AllergenDto) (*dto.AllergenResponseDto, error) {
	entry := model.Allergen{
		ID:    primitive.NewObjectID(),
		Title: in.Title,
		Date:  in.Date.Time(),
		Color: in.Color,
	}
	if err := s.pushWithFloodControl(ctx, userID, core.ProfileArrayAllergens, entry); err != nil {
		return nil, err
	}
	return toAllergenResponseDto(entry), nil
}

func (s *ProfileService) EditAllergen(ctx context.Context, userID int64, allergenID primitive.ObjectID, in *dto.AllergenDto) (*dto.MutationResultDto, error) {
	fields := bson.M{
		"title": in.Title,
		"date":  in.Date.Time(),
		"color": in.Color,
	}
	return s.updateArrayEntry(ctx, userID, core.ProfileArrayAllergens, allergenID, fields)
}

func (s *ProfileService) DeleteAllergen(ctx context.Context, userID int64, allergenID primitive.ObjectID) (*dto.MutationResultDto, error) {
	return s.pullArrayEntry(ctx, userID, core.ProfileArrayAllergens, allergenID)
}

// ==== 單欄位 ====

func (s *ProfileService) ChangeBirthday(ctx context.Context, userID int64, birthday *time.Time) (*dto.MutationResultDto, error) {
	return s.updateFields(ctx, userID, "birthday", bson.M{"birthday": birthday})
}

func (s *ProfileService) ChangeGender(ctx context.Context, userID int64, sex *int) (*dto.MutationResultDto, error) {
	return s.updateFields(ctx, userID, "sex", bson.M{"sex": sex})
}

func (s *ProfileService) ChangeBloodType(ctx context.Context, userID int64, bloodType int) (*dto.MutationResultDto, error) {
	if bloodType < 0 || bloodType > core.BloodTypeUnknown {
		return nil, cErr.ValidateErr("bloodType must be between 0 and 8")
	}
	return s.updateFields(ctx, userID, "bloodType", bson.M{"bloodType": bloodType})
}

func (s *ProfileService) ChangeVisibility(ctx context.Context, userID int64, mode core.VisibilityMode) (*dto.MutationResultDto, error) {
	if mode < 0 {
		return nil, cErr.ValidateErr("allowView must be a non-negative integer")
	}
	return s.updateFields(ctx, userID, "allowView", bson.M{"allowView": mode})
}

// RotateShareToken 重新產生 uuidv4，舊的分享連結隨即失效
func (s *ProfileService) RotateShareToken(ctx context.Context, userID int64) (*dto.ShareTokenResponseDto, error) {
	token := model.NewShareToken()
	if _, err := s.updateFields(ctx, userID, "uuidv4", bson.M{"uuidv4": token}); err != nil {
		return nil, err
	}
	return &dto.ShareTokenResponseDto{UUIDv4: token}, nil
}

// ==== 共用 ====

// pushWithFloodControl 先查 flood window，再以條件式 push 寫入；
// 兩者之間若有其他寫入，push 不會符合任何文件，同樣視為 flood。
func (s *ProfileService) pushWithFloodControl(ctx context.Context, userID int64, array core.ProfileArray, entry any) (returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	meta := core.TraceProfileMutationMeta{UserID: userID, Op: "push", Array: string(array)}
	defer func() { s.trace.ApplyTraceAttributes(span, meta) }()

	now := s.now().UTC()
	since := now.Add(-s.floodWindow)

	recent, err := s.profiles.ModifiedSince(ctx, userID, since)
	if err != nil {
		return cErr.DatabaseError("database ModifiedSince error").Wrap(err)
	}
	if recent {
		meta.FloodBlocked = true
		return s.floodRejected(userID, array)
	}

	matched, err := s.profiles.PushArrayEntry(ctx, userID, array, entry, since, now)
	if err != nil {
		return cErr.DatabaseError("database PushArrayEntry error").Wrap(err)
	}
	meta.MatchedCount = matched
	if matched > 0 {
		return nil
	}

	if _, err := s.profiles.FindByUserID(ctx, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return cErr.ProfileNotFound("Profile not found")
		}
		return cErr.DatabaseError("database FindByUserID error").Wrap(err)
	}
	meta.FloodBlocked = true
	return s.floodRejected(userID, array)
}

func (s *ProfileService) floodRejected(userID int64, array core.ProfileArray) error {
	s.metric.IncFloodRejected(array)
	s.logger.Info("add rejected by flood control",
		zap.Int64("userId", userID),
		zap.String("array", string(array)),
		zap.Duration("window", s.floodWindow))
	return cErr.FloodControl()
}

func (s *ProfileService) updateArrayEntry(ctx context.Context, userID int64, array core.ProfileArray, entryID primitive.ObjectID, fields bson.M) (_ *dto.MutationResultDto, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	matched, err := s.profiles.UpdateArrayEntryByID(ctx, userID, array, entryID, fields, s.now().UTC())
	s.trace.ApplyTraceAttributes(span, core.TraceProfileMutationMeta{
		UserID: userID, Op: "set", Array: string(array), EntryID: entryID.Hex(), MatchedCount: matched,
	})
	if err != nil {
		return nil, cErr.DatabaseError("database UpdateArrayEntryByID error").Wrap(err)
	}
	return &dto.MutationResultDto{Updated: matched}, nil
}

func (s *ProfileService) pullArrayEntry(ctx context.Context, userID int64, array core.ProfileArray, entryID primitive.ObjectID) (_ *dto.MutationResultDto, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	matched, err := s.profiles.PullArrayEntryByID(ctx, userID, array, entryID, s.now().UTC())
	s.trace.ApplyTraceAttributes(span, core.TraceProfileMutationMeta{
		UserID: userID, Op: "pull", Array: string(array), EntryID: entryID.Hex(), MatchedCount: matched,
	})
	if err != nil {
		return nil, cErr.DatabaseError("database PullArrayEntryByID error").Wrap(err)
	}
	return &dto.MutationResultDto{Updated: matched}, nil
}

func (s *ProfileService) updateFields(ctx context.Context, userID int64, op string, fields bson.M) (_ *dto.MutationResultDto, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	matched, err := s.profiles.UpdateFields(ctx, userID, fields, s.now().UTC())
	s.trace.ApplyTraceAttributes(span, core.TraceProfileMutationMeta{UserID: userID, Op: op, MatchedCount: matched})
	if err != nil {
		return nil, cErr.DatabaseError("database UpdateFields error").Wrap(err)
	}
	if matched == 0 {
		return nil, cErr.ProfileNotFound("Profile not found")
	}
	return &dto.MutationResultDto{Updated: matched}, nil
}

// upstreamError 外部來源失敗一律以 5xx 回傳，不自行產生資料
func upstreamError(err error) error {
	var appErr *cErr.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return cErr.ExternalRequestError(err.Error()).Wrap(err)
}

func nonNilEvents(events []model.Event) []model.Event {
	if events == nil {
		return []model.Event{}
	}
	return events
}

func nonNilViewLogs(viewLogs []model.ViewLog) []model.ViewLog {
	if viewLogs == nil {
		return []model.ViewLog{}
	}
	return viewLogs
}

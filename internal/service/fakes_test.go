package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"medcard/internal/core"
	fluentdModel "medcard/internal/database/fluentd/model"
	"medcard/internal/database/mongodb/model"
	"medcard/internal/database/mongodb/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// memoryProfileStore 以 userId 為 key 的記憶體版 ProfileStore
type memoryProfileStore struct {
	mu       sync.Mutex
	profiles map[int64]*model.Profile
	inserts  int
	// insertHook 在 Insert 前執行，可模擬併發首次存取
	insertHook func(profile *model.Profile)
}

func newMemoryProfileStore(profiles ...*model.Profile) *memoryProfileStore {
	store := &memoryProfileStore{profiles: map[int64]*model.Profile{}}
	for _, profile := range profiles {
		store.profiles[profile.UserID] = profile
	}
	return store
}

func (s *memoryProfileStore) get(userID int64) *model.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profiles[userID]
}

func (s *memoryProfileStore) Insert(_ context.Context, profile *model.Profile) (*model.Profile, error) {
	if s.insertHook != nil {
		s.insertHook(profile)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if _, exists := s.profiles[profile.UserID]; exists {
		return nil, repository.ErrDuplicateProfile
	}
	s.inserts++
	s.profiles[profile.UserID] = profile
	return profile, nil
}

func (s *memoryProfileStore) FindByID(_ context.Context, profileID primitive.ObjectID) (*model.Profile, error) {
	return s.find(func(p *model.Profile) bool { return p.ID == profileID })
}

func (s *memoryProfileStore) FindByUserID(_ context.Context, userID int64) (*model.Profile, error) {
	return s.find(func(p *model.Profile) bool { return p.UserID == userID })
}

func (s *memoryProfileStore) FindByShareToken(_ context.Context, shareToken string) (*model.Profile, error) {
	return s.find(func(p *model.Profile) bool { return p.ShareToken == shareToken })
}

func (s *memoryProfileStore) find(match func(*model.Profile) bool) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, profile := range s.profiles {
		if match(profile) {
			copied := *profile
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *memoryProfileStore) ModifiedSince(_ context.Context, userID int64, since time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	return ok && profile.UpdatedAt.After(since), nil
}

func (s *memoryProfileStore) UpdateFields(_ context.Context, userID int64, setFields bson.M, at time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return 0, nil
	}
	for key, value := range setFields {
		switch key {
		case "birthday":
			profile.Birthday = value.(*time.Time)
		case "sex":
			profile.Sex = value.(*int)
		case "bloodType":
			profile.BloodType = value.(int)
		case "allowView":
			profile.AllowView = value.(core.VisibilityMode)
		case "uuidv4":
			profile.ShareToken = value.(string)
		default:
			return 0, errors.New("unexpected field " + key)
		}
	}
	profile.UpdatedAt = at
	return 1, nil
}

func (s *memoryProfileStore) SyncExternalFields(_ context.Context, userID int64, userName, photo string, at time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return 0, nil
	}
	profile.UserName, profile.Photo, profile.SyncedAt = userName, photo, &at
	return 1, nil
}

func (s *memoryProfileStore) PushArrayEntry(_ context.Context, userID int64, array core.ProfileArray, entry any, notModifiedSince, at time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return 0, nil
	}
	if !notModifiedSince.IsZero() && profile.UpdatedAt.After(notModifiedSince) {
		return 0, nil
	}
	switch array {
	case core.ProfileArrayDiseases:
		profile.Diseases = append(profile.Diseases, entry.(model.Disease))
	case core.ProfileArrayAllergens:
		profile.Allergens = append(profile.Allergens, entry.(model.Allergen))
	}
	profile.UpdatedAt = at
	return 1, nil
}

func (s *memoryProfileStore) PullArrayEntryByID(_ context.Context, userID int64, array core.ProfileArray, entryID primitive.ObjectID, at time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return 0, nil
	}
	var removed int64
	switch array {
	case core.ProfileArrayDiseases:
		kept := profile.Diseases[:0]
		for _, disease := range profile.Diseases {
			if disease.ID == entryID {
				removed = 1
				continue
			}
			kept = append(kept, disease)
		}
		profile.Diseases = kept
	case core.ProfileArrayAllergens:
		kept := profile.Allergens[:0]
		for _, allergen := range profile.Allergens {
			if allergen.ID == entryID {
				removed = 1
				continue
			}
			kept = append(kept, allergen)
		}
		profile.Allergens = kept
	}
	// 與 Mongo 相同：沒有比對到元素時不動 updatedAt
	if removed > 0 {
		profile.UpdatedAt = at
	}
	return removed, nil
}

func (s *memoryProfileStore) UpdateArrayEntryByID(_ context.Context, userID int64, array core.ProfileArray, entryID primitive.ObjectID, fields bson.M, at time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return 0, nil
	}
	switch array {
	case core.ProfileArrayDiseases:
		for i := range profile.Diseases {
			if profile.Diseases[i].ID != entryID {
				continue
			}
			profile.Diseases[i].Title = fields["title"].(string)
			profile.Diseases[i].DateStart = fields["dateStart"].(*time.Time)
			profile.Diseases[i].DateEnd = fields["dateEnd"].(*time.Time)
			profile.Diseases[i].Color = fields["color"].(int)
			profile.UpdatedAt = at
			return 1, nil
		}
	case core.ProfileArrayAllergens:
		for i := range profile.Allergens {
			if profile.Allergens[i].ID != entryID {
				continue
			}
			profile.Allergens[i].Title = fields["title"].(string)
			profile.Allergens[i].Date = fields["date"].(*time.Time)
			profile.Allergens[i].Color = fields["color"].(int)
			profile.UpdatedAt = at
			return 1, nil
		}
	}
	return 0, nil
}

func (s *memoryProfileStore) ListStale(_ context.Context, before time.Time, limit int64) ([]*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var stale []*model.Profile
	for _, profile := range s.profiles {
		if profile.LastTouchedAt().Before(before) {
			copied := *profile
			stale = append(stale, &copied)
		}
	}
	sort.Slice(stale, func(i, j int) bool { return stale[i].UserID < stale[j].UserID })
	if int64(len(stale)) > limit {
		stale = stale[:limit]
	}
	return stale, nil
}

type memoryEventStore struct {
	events map[int64][]model.Event
}

func (s *memoryEventStore) FindByUserID(_ context.Context, userID int64) ([]model.Event, error) {
	return s.events[userID], nil
}

type memoryViewLogStore struct {
	mu        sync.Mutex
	logs      []model.ViewLog
	appendErr error
	findErr   error
}

func (s *memoryViewLogStore) FindByViewerUserID(_ context.Context, viewerUserID int64) ([]model.ViewLog, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.ViewLog
	for _, viewLog := range s.logs {
		if viewLog.ViewerUserID == viewerUserID {
			out = append(out, viewLog)
		}
	}
	return out, nil
}

func (s *memoryViewLogStore) Append(_ context.Context, viewLog *model.ViewLog) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	viewLog.ID = primitive.NewObjectID()
	s.logs = append(s.logs, *viewLog)
	return nil
}

func (s *memoryViewLogStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.logs)
}

type recordingPublisher struct {
	records []fluentdModel.ProfileViewLog
}

func (p *recordingPublisher) LogProfileView(_ context.Context, view fluentdModel.ProfileViewLog) error {
	p.records = append(p.records, view)
	return nil
}

// fakeClock 可手動推進的時鐘
type fakeClock struct {
	mu      sync.Mutex
	current time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

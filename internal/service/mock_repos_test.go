package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"smash-signup/internal/model"
	"smash-signup/internal/repository"
)

var errMockStorage = errors.New("存储故障")

// ── Mock MemberRepository ──

type mockMemberRepo struct {
	members map[string]*model.Member
}

func newMockMemberRepo() *mockMemberRepo {
	return &mockMemberRepo{members: make(map[string]*model.Member)}
}

func (m *mockMemberRepo) GetByStudentID(_ context.Context, studentID string) (*model.Member, error) {
	if mem, ok := m.members[studentID]; ok {
		return mem, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMemberRepo) Upsert(_ context.Context, member *model.Member) error {
	m.members[member.StudentID] = member
	return nil
}

func (m *mockMemberRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.members)), nil
}

// ── Mock ApplicationRepository ──

type mockApplicationRepo struct {
	apps    []model.Application
	members *mockMemberRepo // ListByDay/ListAll 模拟 Preload
	seq     int
}

func newMockApplicationRepo(members *mockMemberRepo) *mockApplicationRepo {
	return &mockApplicationRepo{members: members}
}

func (m *mockApplicationRepo) Create(_ context.Context, app *model.Application) error {
	m.seq++
	if app.ApplicationID == "" {
		app.ApplicationID = fmt.Sprintf("app-%d", m.seq)
	}
	m.apps = append(m.apps, *app)
	return nil
}

func (m *mockApplicationRepo) Exists(_ context.Context, studentID, day, category string) (bool, error) {
	for _, a := range m.apps {
		if a.StudentID == studentID && a.Day == day && a.Category == category {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockApplicationRepo) DeleteByMember(_ context.Context, studentID, day, category string) (int64, error) {
	var kept []model.Application
	var n int64
	for _, a := range m.apps {
		if a.StudentID == studentID && a.Day == day && a.Category == category {
			n++
			continue
		}
		kept = append(kept, a)
	}
	m.apps = kept
	return n, nil
}

func (m *mockApplicationRepo) ListByDay(_ context.Context, day string) ([]model.Application, error) {
	var result []model.Application
	for _, a := range m.apps {
		if a.Day != day {
			continue
		}
		if mem, ok := m.members.members[a.StudentID]; ok {
			a.Member = mem
		}
		result = append(result, a)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockApplicationRepo) ListAll(_ context.Context) ([]model.Application, error) {
	result := make([]model.Application, 0, len(m.apps))
	for _, a := range m.apps {
		if mem, ok := m.members.members[a.StudentID]; ok {
			a.Member = mem
		}
		result = append(result, a)
	}
	return result, nil
}

func (m *mockApplicationRepo) DeleteByLane(_ context.Context, day, category string) (int64, error) {
	var kept []model.Application
	var n int64
	for _, a := range m.apps {
		if a.Day == day && a.Category == category {
			n++
			continue
		}
		kept = append(kept, a)
	}
	m.apps = kept
	return n, nil
}

func (m *mockApplicationRepo) DeleteAll(_ context.Context) error {
	m.apps = nil
	return nil
}

// ── Mock SystemConfigRepository ──

type mockSystemConfigRepo struct {
	cfg     *model.SystemConfig
	failGet bool
}

func newMockSystemConfigRepo() *mockSystemConfigRepo {
	return &mockSystemConfigRepo{}
}

func (m *mockSystemConfigRepo) Get(_ context.Context) (*model.SystemConfig, error) {
	if m.failGet {
		return nil, errMockStorage
	}
	if m.cfg == nil {
		return nil, gorm.ErrRecordNotFound
	}
	c := *m.cfg
	return &c, nil
}

func (m *mockSystemConfigRepo) Update(_ context.Context, cfg *model.SystemConfig) error {
	c := *cfg
	m.cfg = &c
	return nil
}

// ── Mock OverrideRepository ──

type mockOverrideRepo struct {
	overrides map[string]model.BoundaryOverride // key: lane_id + ":" + boundary
	failList  bool
}

func newMockOverrideRepo() *mockOverrideRepo {
	return &mockOverrideRepo{overrides: make(map[string]model.BoundaryOverride)}
}

func (m *mockOverrideRepo) List(_ context.Context) ([]model.BoundaryOverride, error) {
	if m.failList {
		return nil, errMockStorage
	}
	var result []model.BoundaryOverride
	for _, ov := range m.overrides {
		result = append(result, ov)
	}
	return result, nil
}

func (m *mockOverrideRepo) Upsert(_ context.Context, ov *model.BoundaryOverride) error {
	m.overrides[ov.LaneID+":"+ov.Boundary] = *ov
	return nil
}

func (m *mockOverrideRepo) DeleteAll(_ context.Context) error {
	m.overrides = make(map[string]model.BoundaryOverride)
	return nil
}

// ── 聚合 ──

func newMockRepository() (*repository.Repository, *mockMemberRepo, *mockApplicationRepo, *mockSystemConfigRepo, *mockOverrideRepo) {
	members := newMockMemberRepo()
	apps := newMockApplicationRepo(members)
	sysCfg := newMockSystemConfigRepo()
	overrides := newMockOverrideRepo()
	return &repository.Repository{
		Member:       members,
		Application:  apps,
		SystemConfig: sysCfg,
		Override:     overrides,
	}, members, apps, sysCfg, overrides
}

package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/model"
)

// ErrSessionNotFound 세션 없음
var ErrSessionNotFound = errors.New("session not found")

// Session 업로드 파일 하나에 대한 분석 세션
// Holds derived results only for the duration of one analysis session;
// nothing is persisted between runs.
type Session struct {
	ID        string        `json:"id"`
	Filename  string        `json:"filename"`
	CreatedAt time.Time     `json:"createdAt"`
	Report    *model.Report `json:"-"`
}

// MemoryStore 세션 인메모리 저장소
type MemoryStore struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

// NewMemoryStore 저장소 생성
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
	}
}

// Put 분석 결과 저장, 세션 ID 반환
func (s *MemoryStore) Put(filename string, report *model.Report) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := &Session{
		ID:        uuid.New().String(),
		Filename:  filename,
		CreatedAt: time.Now(),
		Report:    report,
	}
	s.sessions[session.ID] = session
	return session
}

// Get 세션 조회
func (s *MemoryStore) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Delete 세션 삭제
func (s *MemoryStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// List 세션 목록 (최신순)
func (s *MemoryStore) List() []*Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		result = append(result, session)
	}
	sort.Slice(result, func(a, b int) bool {
		return result[a].CreatedAt.After(result[b].CreatedAt)
	})
	return result
}

// Count 세션 수
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

package service

import (
	"context"
	"sort"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/maze-runner/domain"
	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}

type memoryMazeRepo struct {
	docs    map[uuid.UUID]*dmn.MazeDocument
	saveErr error
}

func newMemoryMazeRepo() *memoryMazeRepo {
	return &memoryMazeRepo{docs: make(map[uuid.UUID]*dmn.MazeDocument)}
}

func (r *memoryMazeRepo) Save(_ context.Context, doc *dmn.MazeDocument) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.docs[doc.ID] = doc
	return nil
}

func (r *memoryMazeRepo) ByID(_ context.Context, id uuid.UUID) (*dmn.MazeDocument, error) {
	doc, ok := r.docs[id]
	if !ok {
		return nil, dmn.ErrMazeNotFound
	}
	return doc, nil
}

type memoryRecords struct {
	best int
	sync.Mutex
}

func (m *memoryRecords) Record(context.Context) (int, error) {
	m.Lock()
	defer m.Unlock()
	return m.best, nil
}

func (m *memoryRecords) SetRecord(_ context.Context, score int) error {
	m.Lock()
	defer m.Unlock()
	m.best = score
	return nil
}

type memoryLeaderboard struct {
	scores    map[string]int
	submitErr error
}

func newMemoryLeaderboard() *memoryLeaderboard {
	return &memoryLeaderboard{scores: make(map[string]int)}
}

func (l *memoryLeaderboard) Submit(_ context.Context, player string, score int) error {
	if l.submitErr != nil {
		return l.submitErr
	}
	if best, ok := l.scores[player]; !ok || score > best {
		l.scores[player] = score
	}
	return nil
}

func (l *memoryLeaderboard) Top(_ context.Context, n int64) ([]dmn.Score, error) {
	top := make([]dmn.Score, 0, len(l.scores))
	for player, points := range l.scores {
		top = append(top, dmn.Score{Player: player, Points: points})
	}
	sort.Slice(top, func(a, b int) bool {
		if top[a].Points != top[b].Points {
			return top[a].Points > top[b].Points
		}
		return top[a].Player > top[b].Player
	})
	if int64(len(top)) > n {
		top = top[:n]
	}
	return top, nil
}

func (l *memoryLeaderboard) Count(context.Context) (int64, error) {
	return int64(len(l.scores)), nil
}

type stubTokenizer struct {
	claims map[string]interface{}
	ttl    time.Duration
}

func (s *stubTokenizer) Generate(claims map[string]interface{}, ttl time.Duration) (string, error) {
	s.claims = claims
	s.ttl = ttl
	return "signed." + claims[ClaimRoundID].(string), nil
}

func (s *stubTokenizer) Decode(string) (map[string]interface{}, error) {
	return s.claims, nil
}

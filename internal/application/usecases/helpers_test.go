package usecases

import (
	"context"
	"errors"
	"sync"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/entities"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/repositories"
)

type fakeStore struct {
	mu        sync.Mutex
	data      map[string]string
	failGet   bool
	failSet   bool
	failWrite map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]string{}, failWrite: map[string]bool{}}
}

func (s *fakeStore) Get(_ context.Context, scope, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failGet {
		return "", false, repositories.ErrStorageUnavailable
	}
	v, ok := s.data[scope+":"+key]
	return v, ok, nil
}

func (s *fakeStore) Set(_ context.Context, scope, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet || s.failWrite[key] {
		return repositories.ErrStorageUnavailable
	}
	s.data[scope+":"+key] = value
	return nil
}

func (s *fakeStore) Delete(_ context.Context, scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet {
		return repositories.ErrStorageUnavailable
	}
	delete(s.data, scope+":"+key)
	return nil
}

type profileCall struct {
	userID string
	props  map[string]interface{}
}

type recordingCollector struct {
	mu         sync.Mutex
	events     []*entities.Event
	profiles   []profileCall
	increments map[string]int64
}

func newRecordingCollector() *recordingCollector {
	return &recordingCollector{increments: map[string]int64{}}
}

func (c *recordingCollector) Track(_ context.Context, event *entities.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func (c *recordingCollector) SetProfile(_ context.Context, userID string, props map[string]interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profiles = append(c.profiles, profileCall{userID: userID, props: props})
	return nil
}

func (c *recordingCollector) IncrementProfile(_ context.Context, userID, property string, by int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.increments[property] += by
	return nil
}

func (c *recordingCollector) names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, len(c.events))
	for i, e := range c.events {
		names[i] = e.EventName
	}
	return names
}

func (c *recordingCollector) last(name string) *entities.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.events) - 1; i >= 0; i-- {
		if c.events[i].EventName == name {
			return c.events[i]
		}
	}
	return nil
}

func (c *recordingCollector) profileValue(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.profiles) - 1; i >= 0; i-- {
		if v, ok := c.profiles[i].props[key]; ok {
			return v, true
		}
	}
	return nil, false
}

type panickingCollector struct{}

func (panickingCollector) Track(context.Context, *entities.Event) error {
	panic("collector not initialized")
}

func (panickingCollector) SetProfile(context.Context, string, map[string]interface{}) error {
	panic("collector not initialized")
}

func (panickingCollector) IncrementProfile(context.Context, string, string, int64) error {
	panic("collector not initialized")
}

type failingCollector struct{}

func (failingCollector) Track(context.Context, *entities.Event) error {
	return errors.New("network unreachable")
}

func (failingCollector) SetProfile(context.Context, string, map[string]interface{}) error {
	return errors.New("network unreachable")
}

func (failingCollector) IncrementProfile(context.Context, string, string, int64) error {
	return errors.New("network unreachable")
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

package sequence

import (
	"context"
	"errors"
)

type fakeStore struct {
	seed      uint32
	ok        bool
	loadErr   error
	saveErr   error
	loadCalls int
	saveCalls int
}

func (s *fakeStore) Load(context.Context) (uint32, bool, error) {
	s.loadCalls++
	if s.loadErr != nil {
		return 0, false, s.loadErr
	}
	return s.seed, s.ok, nil
}

func (s *fakeStore) Save(_ context.Context, seed uint32) error {
	s.saveCalls++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.seed = seed
	s.ok = true
	return nil
}

func (s *fakeStore) Location() string { return "fake" }

var errDiskFull = errors.New("disk full")

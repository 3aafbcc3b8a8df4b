package usecase

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"planetarium-booking/internal/data/repository"
	"planetarium-booking/internal/data/repository/mocks"
	"planetarium-booking/pkg/storage"
)

type repoMocks struct {
	user        *mocks.UserRepository
	showTheme   *mocks.ShowThemeRepository
	dome        *mocks.PlanetariumDomeRepository
	show        *mocks.AstronomyShowRepository
	session     *mocks.ShowSessionRepository
	reservation *mocks.ReservationRepository
}

func newRepoMocks(t *testing.T) (*repository.Repository, *repoMocks) {
	m := &repoMocks{
		user:        mocks.NewUserRepository(t),
		showTheme:   mocks.NewShowThemeRepository(t),
		dome:        mocks.NewPlanetariumDomeRepository(t),
		show:        mocks.NewAstronomyShowRepository(t),
		session:     mocks.NewShowSessionRepository(t),
		reservation: mocks.NewReservationRepository(t),
	}
	repo := &repository.Repository{
		User:            m.user,
		ShowTheme:       m.showTheme,
		PlanetariumDome: m.dome,
		AstronomyShow:   m.show,
		ShowSession:     m.session,
		Reservation:     m.reservation,
	}
	return repo, m
}

// fakeImageStore keeps saved images in memory.
type fakeImageStore struct {
	saved   map[string][]byte
	removed []string
	next      string
	saveErr   error
	removeErr error
}

func newFakeImageStore(next string) *fakeImageStore {
	return &fakeImageStore{saved: map[string][]byte{}, next: next}
}

func (f *fakeImageStore) Save(src io.Reader, dir, name string) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		return "", storage.ErrInvalidImage
	}
	f.saved[f.next] = data
	return f.next, nil
}

func (f *fakeImageStore) Remove(rel string) error {
	f.removed = append(f.removed, rel)
	return f.removeErr
}

func asValidationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	return verr
}

package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/events"
	"github.com/spec-kit/job-board/internal/repository"
	"github.com/spec-kit/job-board/internal/storage"
)

type fakeUsers struct {
	rows      map[int64]*domain.User
	nextID    int64
	createErr error
}

func newFakeUsers(users ...*domain.User) *fakeUsers {
	f := &fakeUsers{rows: map[int64]*domain.User{}, nextID: 100}
	for _, u := range users {
		f.rows[u.ID] = u
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.emailTaken(u) {
		return repository.ErrEmailTaken
	}
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now()
	cp := *u
	f.rows[u.ID] = &cp
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.rows {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUsers) List(context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(f.rows))
	for _, u := range f.rows {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, u *domain.User) error {
	if _, ok := f.rows[u.ID]; !ok {
		return pgx.ErrNoRows
	}
	if f.emailTaken(u) {
		return repository.ErrEmailTaken
	}
	cp := *u
	f.rows[u.ID] = &cp
	return nil
}

// emailTaken mirrors the users.email unique index.
func (f *fakeUsers) emailTaken(u *domain.User) bool {
	for id, other := range f.rows {
		if id != u.ID && other.Email == u.Email {
			return true
		}
	}
	return false
}

// lateUsers misses the email pre-check, as when a concurrent request commits in between.
type lateUsers struct {
	*fakeUsers
}

func (lateUsers) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id int64, hash string) error {
	u, ok := f.rows[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeUsers) UpdateRole(_ context.Context, id int64, role domain.Role) error {
	u, ok := f.rows[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.Role = role
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.rows, id)
	return nil
}

type fakeJobs struct {
	rows   map[int64]*domain.Job
	nextID int64
}

func newFakeJobs(jobs ...*domain.Job) *fakeJobs {
	f := &fakeJobs{rows: map[int64]*domain.Job{}, nextID: 10}
	for _, j := range jobs {
		f.rows[j.ID] = j
	}
	return f
}

func (f *fakeJobs) Create(_ context.Context, j *domain.Job) error {
	f.nextID++
	j.ID = f.nextID
	cp := *j
	f.rows[j.ID] = &cp
	return nil
}

func (f *fakeJobs) Update(_ context.Context, j *domain.Job) error {
	if _, ok := f.rows[j.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *j
	f.rows[j.ID] = &cp
	return nil
}

func (f *fakeJobs) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeJobs) GetByID(_ context.Context, id int64) (*domain.Job, error) {
	j, ok := f.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *j
	return &cp, nil
}

func (f *fakeJobs) List(context.Context, repository.JobFilter) ([]domain.Job, error) {
	out := make([]domain.Job, 0, len(f.rows))
	for _, j := range f.rows {
		out = append(out, *j)
	}
	return out, nil
}

type fakeSaved struct {
	jobs      *fakeJobs
	marks     map[[2]int64]bool
	toggleErr error
}

func (f *fakeSaved) Toggle(_ context.Context, userID, jobID int64) (bool, error) {
	if f.toggleErr != nil {
		return false, f.toggleErr
	}
	key := [2]int64{userID, jobID}
	if f.marks[key] {
		delete(f.marks, key)
		return false, nil
	}
	f.marks[key] = true
	return true, nil
}

func (f *fakeSaved) ListJobs(_ context.Context, userID int64) ([]domain.Job, error) {
	var out []domain.Job
	for key := range f.marks {
		if key[0] == userID {
			out = append(out, *f.jobs.rows[key[1]])
		}
	}
	return out, nil
}

type fakeApplications struct {
	rows      map[int64]*domain.Application
	nextID    int64
	createErr error
}

func newFakeApplications(apps ...*domain.Application) *fakeApplications {
	f := &fakeApplications{rows: map[int64]*domain.Application{}, nextID: 500}
	for _, a := range apps {
		f.rows[a.ID] = a
	}
	return f
}

func (f *fakeApplications) Create(_ context.Context, a *domain.Application) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	a.ID = f.nextID
	cp := *a
	f.rows[a.ID] = &cp
	return nil
}

func (f *fakeApplications) GetByID(_ context.Context, id int64) (*domain.Application, error) {
	a, ok := f.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

func (f *fakeApplications) Exists(_ context.Context, jobID, applicantID int64) (bool, error) {
	for _, a := range f.rows {
		if a.JobID == jobID && a.ApplicantID == applicantID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeApplications) ListByApplicant(_ context.Context, applicantID int64) ([]domain.Application, error) {
	var out []domain.Application
	for _, a := range f.rows {
		if a.ApplicantID == applicantID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeApplications) List(context.Context) ([]domain.Application, error) {
	var out []domain.Application
	for _, a := range f.rows {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeApplications) UpdateStatus(_ context.Context, id int64, status domain.ApplicationStatus) error {
	a, ok := f.rows[id]
	if !ok {
		return pgx.ErrNoRows
	}
	a.Status = status
	return nil
}

func (f *fakeApplications) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.rows, id)
	return nil
}

type fakeFiles struct {
	saved   []string
	removed []string
	failOn  storage.Kind
}

func (f *fakeFiles) Save(kind storage.Kind, header *multipart.FileHeader) (string, error) {
	if kind == f.failOn {
		return "", fmt.Errorf("%w: %q", storage.ErrUnsupportedType, header.Filename)
	}
	url := fmt.Sprintf("/uploads/%s/%d-%s", kind, len(f.saved)+1, header.Filename)
	f.saved = append(f.saved, url)
	return url, nil
}

func (f *fakeFiles) Remove(url string) {
	if url != "" {
		f.removed = append(f.removed, url)
	}
}

type fakeTokens struct{}

func (fakeTokens) Issue(id int64, email string) (string, time.Time, error) {
	if id == 0 {
		return "", time.Time{}, errors.New("no id")
	}
	return fmt.Sprintf("token-%d-%s", id, email), time.Date(2026, 1, 1, 1, 0, 0, 0, time.UTC), nil
}

type recordedEvents struct {
	events.Dispatcher
	got []events.Event
}

func newRecorder() *recordedEvents {
	r := &recordedEvents{Dispatcher: events.NewInMemoryDispatcher()}
	for _, t := range []events.EventType{
		events.EventJobPosted,
		events.EventApplicationSubmitted,
		events.EventApplicationStatusChanged,
		events.EventAccountDeleted,
	} {
		r.Subscribe(t, func(_ context.Context, e events.Event) error {
			r.got = append(r.got, e)
			return nil
		})
	}
	return r
}

func (r *recordedEvents) types() []events.EventType {
	out := make([]events.EventType, 0, len(r.got))
	for _, e := range r.got {
		out = append(out, e.Type)
	}
	return out
}

func upload(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: 10}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/haierkeys/fast-note-web/internal/domain"
	"github.com/haierkeys/fast-note-web/internal/dto"
	"github.com/haierkeys/fast-note-web/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubNoteRepo 内存实现的 NoteRepository
type stubNoteRepo struct {
	mu         sync.Mutex
	notes      map[int64]*domain.Note
	nextID     int64
	migrations atomic.Int32
	failWith   error
}

func newStubNoteRepo() *stubNoteRepo {
	return &stubNoteRepo{notes: map[int64]*domain.Note{}}
}

func (r *stubNoteRepo) AutoMigrate(ctx context.Context) error {
	time.Sleep(5 * time.Millisecond)
	r.migrations.Add(1)
	return r.failWith
}

func (r *stubNoteRepo) List(ctx context.Context) ([]*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	var list []*domain.Note
	for _, n := range r.notes {
		c := *n
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *stubNoteRepo) GetByID(ctx context.Context, id int64) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notes[id]
	if !ok {
		return nil, fmt.Errorf("note %d: %w", id, gorm.ErrRecordNotFound)
	}
	c := *n
	return &c, nil
}

func (r *stubNoteRepo) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	r.nextID++
	c := *note
	c.ID = r.nextID
	r.notes[c.ID] = &c
	out := c
	return &out, nil
}

func (r *stubNoteRepo) Update(ctx context.Context, note *domain.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notes[note.ID]
	if !ok {
		return fmt.Errorf("note %d: %w", note.ID, gorm.ErrRecordNotFound)
	}
	n.Title, n.TextNote = note.Title, note.TextNote
	return nil
}

func (r *stubNoteRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notes[id]; !ok {
		return fmt.Errorf("note %d: %w", id, gorm.ErrRecordNotFound)
	}
	delete(r.notes, id)
	return nil
}

func (r *stubNoteRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.notes)), nil
}

var fixedNow = time.Date(2024, time.March, 5, 9, 7, 0, 0, time.UTC)

func newTestService(t *testing.T, repo domain.NoteRepository, locale string) NoteService {
	t.Helper()
	svc, err := NewNoteService(repo, NoteServiceConfig{DateLocale: locale}, nil, WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return svc
}

func TestNoteService_CreateStampsDate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, newStubNoteRepo(), "")

	note, err := svc.Create(ctx, &dto.NoteForm{Title: "Groceries", TextNote: "milk, eggs"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), note.ID)
	assert.Equal(t, "05 марта 2024, 09:07", note.DateCreate)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, dto.NoteDTO{ID: 1, Title: "Groceries", TextNote: "milk, eggs", DateCreate: "05 марта 2024, 09:07"}, *list[0])
}

func TestNoteService_EnglishLocale(t *testing.T) {
	svc := newTestService(t, newStubNoteRepo(), "en")

	note, err := svc.Create(context.Background(), &dto.NoteForm{Title: "a", TextNote: "b"})
	require.NoError(t, err)
	assert.Equal(t, "05 March 2024, 09:07", note.DateCreate)
}

func TestNoteService_UnsupportedLocale(t *testing.T) {
	_, err := NewNoteService(newStubNoteRepo(), NoteServiceConfig{DateLocale: "xx"}, nil)
	assert.Error(t, err)
}

func TestNoteService_GetUpdateKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, newStubNoteRepo(), "ru")

	created, err := svc.Create(ctx, &dto.NoteForm{Title: "Groceries", TextNote: "milk, eggs"})
	require.NoError(t, err)

	note, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	note.Apply("Groceries", "milk, eggs, bread")
	require.NoError(t, svc.Update(ctx, note))

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.DateCreate, got.DateCreate)
	assert.Equal(t, "milk, eggs, bread", got.TextNote)
}

func TestNoteService_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, newStubNoteRepo(), "ru")

	_, err := svc.Get(ctx, 99)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, 99), code.ErrorNoteNotFound)
	assert.ErrorIs(t, svc.Update(ctx, &domain.Note{ID: 99}), code.ErrorNoteNotFound)

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNoteService_StoreFailure(t *testing.T) {
	repo := newStubNoteRepo()
	repo.failWith = errors.New("database is locked")
	svc := newTestService(t, repo, "ru")

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, code.ErrorDBQuery)

	_, err = svc.Create(context.Background(), &dto.NoteForm{Title: "a", TextNote: "b"})
	assert.ErrorIs(t, err, code.ErrorDBQuery)

	assert.ErrorIs(t, svc.EnsureSchema(context.Background()), code.ErrorDBQuery)
}

func TestNoteService_EnsureSchemaCoalesced(t *testing.T) {
	repo := newStubNoteRepo()
	svc := newTestService(t, repo, "ru")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.EnsureSchema(context.Background()))
		}()
	}
	wg.Wait()
	require.NoError(t, svc.EnsureSchema(context.Background()))

	assert.Equal(t, int32(1), repo.migrations.Load())
}

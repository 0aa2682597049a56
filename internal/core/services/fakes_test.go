package services

import (
	"context"
	"reflect"
	"sync"

	"shopno-backend/internal/adapters/persistence/models"
	"shopno-backend/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// fakeCollection is an in-memory Collection used by the service tests.
// Create assigns ascending IDs the way the database would; listErr and
// createErr inject storage failures. listCalls counts full-collection
// fetches so aggregation tests can pin their fetch budget.
type fakeCollection[T any] struct {
	mu        sync.Mutex
	records   []T
	nextID    uint
	listErr   error
	createErr error
	listCalls int
}

func newFakeCollection[T any](seed ...T) *fakeCollection[T] {
	f := &fakeCollection[T]{}
	for i := range seed {
		r := seed[i]
		if id := recordID(&r); id == 0 {
			f.nextID++
			setRecordID(&r, f.nextID)
		} else if id > f.nextID {
			f.nextID = id
		}
		f.records = append(f.records, r)
	}
	return f
}

func (f *fakeCollection[T]) List(ctx context.Context) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]T, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeCollection[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if recordID(&f.records[i]) == id {
			r := f.records[i]
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCollection[T]) Create(ctx context.Context, record *T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	setRecordID(record, f.nextID)
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeCollection[T]) Save(ctx context.Context, record *T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := recordID(record)
	for i := range f.records {
		if recordID(&f.records[i]) == id {
			f.records[i] = *record
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeCollection[T]) Delete(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if recordID(&f.records[i]) == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeCollection[T]) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return 0, f.listErr
	}
	return int64(len(f.records)), nil
}

func (f *fakeCollection[T]) ListCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func recordID[T any](record *T) uint {
	v := reflect.ValueOf(record).Elem().FieldByName("ID")
	if !v.IsValid() {
		return 0
	}
	return uint(v.Uint())
}

func setRecordID[T any](record *T, id uint) {
	v := reflect.ValueOf(record).Elem().FieldByName("ID")
	if v.IsValid() && v.CanSet() {
		v.SetUint(uint64(id))
	}
}

// fakeUserRepo backs the activity log's name resolution in tests.
type fakeUserRepo struct {
	*fakeCollection[models.User]
}

func newFakeUserRepo(seed ...models.User) *fakeUserRepo {
	return &fakeUserRepo{fakeCollection: newFakeCollection[models.User](seed...)}
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].Username == username {
			r := f.records[i]
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := f.GetByUsername(ctx, username)
	if err == nil {
		return true, nil
	}
	return false, nil
}

var _ repositories.UserRepository = (*fakeUserRepo)(nil)
var _ repositories.Collection[models.Member] = (*fakeCollection[models.Member])(nil)

// newTestActivityService builds an activity log over in-memory storage.
func newTestActivityService() (*ActivityService, *fakeCollection[models.Activity]) {
	activityRepo := newFakeCollection[models.Activity]()
	return NewActivityService(activityRepo, newFakeUserRepo()), activityRepo
}

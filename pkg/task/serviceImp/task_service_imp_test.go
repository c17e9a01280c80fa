package serviceImp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrismart/entities"
	"agrismart/pkg/apperr"
	repo "agrismart/pkg/task/repository"
	"agrismart/pkg/task/service"
)

type fakeRepo struct {
	rows []entities.Task
}

func (f *fakeRepo) Create(_ context.Context, t *entities.Task) error {
	t.ID = uint(len(f.rows) + 1)
	f.rows = append(f.rows, *t)
	return nil
}

func (f *fakeRepo) ListWithCropName(context.Context) ([]entities.TaskWithCropName, error) {
	out := make([]entities.TaskWithCropName, 0, len(f.rows))
	for _, t := range f.rows {
		out = append(out, entities.TaskWithCropName{Task: t})
	}
	return out, nil
}

func (f *fakeRepo) SetCompleted(_ context.Context, id uint, completed bool) error {
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].Completed = completed
			return nil
		}
	}
	return repo.ErrTaskNotFound
}

func TestCreateTask(t *testing.T) {
	r := &fakeRepo{}
	svc := NewTaskService(r)
	cropID := int64(12)

	id, err := svc.CreateTask(context.Background(), service.NewTask{CropID: &cropID, TaskName: "  Irrigate  "})
	require.NoError(t, err)
	assert.Equal(t, uint(1), id)
	require.Len(t, r.rows, 1)
	assert.Equal(t, "Irrigate", r.rows[0].TaskName)
	assert.False(t, r.rows[0].Completed)
	assert.Equal(t, cropID, *r.rows[0].CropID)
}

func TestCreateTaskRequiresName(t *testing.T) {
	r := &fakeRepo{}
	_, err := NewTaskService(r).CreateTask(context.Background(), service.NewTask{})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Empty(t, r.rows)
}

func TestSetCompletedMapsNotFound(t *testing.T) {
	svc := NewTaskService(&fakeRepo{})
	err := svc.SetCompleted(context.Background(), 5, true)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSetCompletedTwice(t *testing.T) {
	r := &fakeRepo{}
	svc := NewTaskService(r)
	id, err := svc.CreateTask(context.Background(), service.NewTask{TaskName: "Prune"})
	require.NoError(t, err)

	require.NoError(t, svc.SetCompleted(context.Background(), id, true))
	require.NoError(t, svc.SetCompleted(context.Background(), id, true))

	got, err := svc.ListTasks(context.Background())
	require.NoError(t, err)
	assert.True(t, got[0].Completed)
}

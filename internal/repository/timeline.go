package repository

import (
	"context"
	"slices"
	"time"

	"github.com/julianstephens/aisle/internal/constants"
	"github.com/julianstephens/aisle/internal/models"
	"github.com/julianstephens/aisle/internal/storage"
)

type Timeline struct {
	doc document[models.TimelineDetails]
	// Now stamps completed tasks; nil means time.Now.
	Now func() time.Time
}

func NewTimeline(store storage.Provider) *Timeline {
	return &Timeline{doc: document[models.TimelineDetails]{
		store:    store,
		key:      constants.KeyTimeline,
		name:     "timeline",
		defaults: models.NewTimelineDetails,
	}}
}

func (r *Timeline) GetDetails(ctx context.Context) (*models.TimelineDetails, error) {
	return r.doc.load(ctx)
}

func (r *Timeline) SetDetails(ctx context.Context, details models.TimelineDetails) error {
	return r.doc.save(ctx, details)
}

func (r *Timeline) Initialize(ctx context.Context) error {
	return r.doc.initialize(ctx)
}

// AddTask stores task under a freshly generated id. DependsOn is kept as given.
func (r *Timeline) AddTask(ctx context.Context, task models.TimelineTask) (models.TimelineTask, error) {
	details, err := r.doc.loadOrDefault(ctx)
	if err != nil {
		return models.TimelineTask{}, err
	}
	task.ID = newID()
	details.Tasks = append(details.Tasks, task)
	if err := r.doc.save(ctx, *details); err != nil {
		return models.TimelineTask{}, err
	}
	return task, nil
}

func (r *Timeline) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) error {
	details, err := r.doc.loadExisting(ctx)
	if err != nil {
		return err
	}
	for i := range details.Tasks {
		if details.Tasks[i].ID == id {
			patch.Apply(&details.Tasks[i])
		}
	}
	return r.doc.save(ctx, *details)
}

func (r *Timeline) DeleteTask(ctx context.Context, id string) error {
	details, err := r.doc.loadExisting(ctx)
	if err != nil {
		return err
	}
	details.Tasks = slices.DeleteFunc(details.Tasks, func(task models.TimelineTask) bool {
		return task.ID == id
	})
	return r.doc.save(ctx, *details)
}

// UpdateTaskStatus sets the status and keeps CompletedDate in step with it.
func (r *Timeline) UpdateTaskStatus(ctx context.Context, id string, status models.TaskStatus) error {
	details, err := r.doc.loadExisting(ctx)
	if err != nil {
		return err
	}
	for i := range details.Tasks {
		if details.Tasks[i].ID != id {
			continue
		}
		details.Tasks[i].Status = status
		if status == models.TaskStatusCompleted {
			details.Tasks[i].CompletedDate = clock(r.Now).now().UTC().Format(constants.TimestampFormat)
		} else {
			details.Tasks[i].CompletedDate = ""
		}
	}
	return r.doc.save(ctx, *details)
}

func (r *Timeline) UpdateCategoryOrder(ctx context.Context, category models.TaskCategory, order int) error {
	details, err := r.doc.loadExisting(ctx)
	if err != nil {
		return err
	}
	details.Categories = setCategoryOrder(details.Categories, category, order)
	return r.doc.save(ctx, *details)
}

func (r *Timeline) ToggleCategoryVisibility(ctx context.Context, category models.TaskCategory) error {
	details, err := r.doc.loadExisting(ctx)
	if err != nil {
		return err
	}
	details.Categories = toggleCategory(details.Categories, category)
	return r.doc.save(ctx, *details)
}

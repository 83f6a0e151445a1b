package inmem

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kestrel-labs/tableau/internal/util"
	"github.com/kestrel-labs/tableau/server/dao"
)

func NewSubmissionsRepository() *InMemorySubmissionsRepository {
	return &InMemorySubmissionsRepository{
		subs:        make(map[uuid.UUID]dao.Submission),
		byUserIndex: make(map[uuid.UUID][]uuid.UUID),
	}
}

type InMemorySubmissionsRepository struct {
	subs        map[uuid.UUID]dao.Submission
	byUserIndex map[uuid.UUID][]uuid.UUID
}

func (imsr *InMemorySubmissionsRepository) Close() error {
	return nil
}

func (imsr *InMemorySubmissionsRepository) Create(ctx context.Context, sub dao.Submission) (dao.Submission, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Submission{}, fmt.Errorf("could not generate ID: %w", err)
	}

	sub.ID = newUUID
	sub.Created = time.Now()

	imsr.subs[sub.ID] = sub

	byUser := imsr.byUserIndex[sub.UserID]
	byUser = append(byUser, sub.ID)
	imsr.byUserIndex[sub.UserID] = byUser

	return sub, nil
}

func (imsr *InMemorySubmissionsRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.Submission, error) {
	sub, ok := imsr.subs[id]
	if !ok {
		return dao.Submission{}, dao.ErrNotFound
	}

	return sub, nil
}

func (imsr *InMemorySubmissionsRepository) GetAllByUser(ctx context.Context, userID uuid.UUID) ([]dao.Submission, error) {
	byUser := imsr.byUserIndex[userID]

	all := make([]dao.Submission, len(byUser))
	for i := range byUser {
		all[i] = imsr.subs[byUser[i]]
	}

	all = util.SortBy(all, func(l, r dao.Submission) bool {
		return l.Created.After(r.Created)
	})

	return all, nil
}

func (imsr *InMemorySubmissionsRepository) Delete(ctx context.Context, id uuid.UUID) (dao.Submission, error) {
	sub, ok := imsr.subs[id]
	if !ok {
		return dao.Submission{}, dao.ErrNotFound
	}

	byUser := imsr.byUserIndex[sub.UserID]
	updated := util.SliceRemove(sub.ID, byUser)
	imsr.byUserIndex[sub.UserID] = updated
	if len(updated) < 1 {
		delete(imsr.byUserIndex, sub.UserID)
	}

	delete(imsr.subs, sub.ID)

	return sub, nil
}

package inmem

import (
	"fmt"

	"github.com/kestrel-labs/tableau/server/dao"
)

type store struct {
	users *InMemoryUsersRepository
	subs  *InMemorySubmissionsRepository
}

func NewDatastore() dao.Store {
	return &store{
		users: NewUsersRepository(),
		subs:  NewSubmissionsRepository(),
	}
}

func (s *store) Users() dao.UserRepository {
	return s.users
}

func (s *store) Submissions() dao.SubmissionRepository {
	return s.subs
}

func (s *store) Close() error {
	var err error
	var nextErr error

	nextErr = s.users.Close()
	if nextErr != err {
		if err != nil {
			err = fmt.Errorf("%s\nadditionally, %w", err, nextErr)
		} else {
			err = nextErr
		}
	}
	nextErr = s.subs.Close()
	if nextErr != err {
		if err != nil {
			err = fmt.Errorf("%s\nadditionally, %w", err, nextErr)
		} else {
			err = nextErr
		}
	}

	return err
}

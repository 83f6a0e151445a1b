package tunas

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kestrel-labs/tableau/internal/engine"
	"github.com/kestrel-labs/tableau/internal/tableau"
	"github.com/kestrel-labs/tableau/server/dao"
	"github.com/kestrel-labs/tableau/server/serr"
)

// Classify parses s and returns the formula along with its syntactic
// category (§4.1 of the classification scheme). No persistence occurs; this
// is a stateless, read-only operation.
//
// The returned error, if non-nil, will match serr.ErrBadArgument when s could
// not be parsed as a formula.
func (svc Service) Classify(ctx context.Context, s string) (tableau.Formula, tableau.Category, error) {
	f, cat, err := tableau.Parse(s)
	if err != nil {
		return nil, 0, serr.New(err.Error(), err, serr.ErrBadArgument)
	}
	return f, cat, nil
}

// Decide parses s, runs the tableau decision procedure over it using svc's
// configured Engine, and records the outcome as a dao.Submission belonging to
// who. Returns the stored submission.
//
// The returned error, if non-nil, will match serr.ErrBadArgument when s could
// not be parsed as a formula, or serr.ErrDB if persistence failed.
func (svc Service) Decide(ctx context.Context, who uuid.UUID, s string) (dao.Submission, error) {
	f, cat, err := tableau.Parse(s)
	if err != nil {
		return dao.Submission{}, serr.New(err.Error(), err, serr.ErrBadArgument)
	}

	verdict := engine.Decide(f, svc.Engine)

	sub := dao.Submission{
		UserID:   who,
		Formula:  f,
		Category: cat,
		Decided:  true,
		Verdict:  verdict,
	}

	stored, err := svc.DB.Submissions().Create(ctx, sub)
	if err != nil {
		return dao.Submission{}, serr.WrapDB("could not store submission", err)
	}

	return stored, nil
}

// GetSubmission returns the submission with the given ID.
//
// The returned error, if non-nil, will match serr.ErrNotFound if no
// submission with that ID exists, serr.ErrBadArgument if id is not a valid
// UUID, or serr.ErrDB for other persistence failures.
func (svc Service) GetSubmission(ctx context.Context, id string) (dao.Submission, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Submission{}, serr.New("ID is not valid", serr.ErrBadArgument)
	}

	sub, err := svc.DB.Submissions().GetByID(ctx, uuidID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Submission{}, serr.ErrNotFound
		}
		return dao.Submission{}, serr.WrapDB("could not get submission", err)
	}

	return sub, nil
}

// GetSubmissionsForUser returns all submissions previously decided by who,
// most recent first.
func (svc Service) GetSubmissionsForUser(ctx context.Context, who uuid.UUID) ([]dao.Submission, error) {
	subs, err := svc.DB.Submissions().GetAllByUser(ctx, who)
	if err != nil {
		return nil, serr.WrapDB("could not get submissions", err)
	}
	return subs, nil
}

// DeleteSubmission deletes the submission with the given ID and returns it
// as it existed just before deletion.
//
// The returned error, if non-nil, will match serr.ErrNotFound if no
// submission with that ID exists, serr.ErrBadArgument if id is not a valid
// UUID, or serr.ErrDB for other persistence failures.
func (svc Service) DeleteSubmission(ctx context.Context, id string) (dao.Submission, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Submission{}, serr.New("ID is not valid", serr.ErrBadArgument)
	}

	sub, err := svc.DB.Submissions().Delete(ctx, uuidID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Submission{}, serr.ErrNotFound
		}
		return dao.Submission{}, serr.WrapDB("could not delete submission", err)
	}

	return sub, nil
}

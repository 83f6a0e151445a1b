package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/kestrel-labs/tableau/server/dao"
	"github.com/kestrel-labs/tableau/server/middle"
	"github.com/kestrel-labs/tableau/server/result"
	"github.com/kestrel-labs/tableau/server/serr"
)

// HTTPGetSubmission returns a HandlerFunc that retrieves a previously-decided
// submission. All users may retrieve their own submissions, but only an
// admin user may retrieve submissions belonging to others.
//
// The handler has requirements for the request context it receives, and if
// the requirements are not met it may return an HTTP-500. The context must
// contain the ID of the submission being retrieved and the logged-in user of
// the client making the request.
func (api API) HTTPGetSubmission() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetSubmission)
}

func (api API) epGetSubmission(req *http.Request) result.Result {
	id := requireIDParam(req)
	user := req.Context().Value(middle.AuthUser).(dao.User)

	sub, err := api.Backend.GetSubmission(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		} else if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError("could not get submission: " + err.Error())
	}

	if sub.UserID != user.ID && user.Role != dao.Admin {
		return result.Forbidden("user '%s' (role %s) get submission %s: forbidden", user.Username, user.Role, id)
	}

	return result.OK(toSubmissionModel(sub), "user '%s' got submission %s", user.Username, id)
}

// HTTPGetOwnSubmissions returns a HandlerFunc that lists all submissions
// made by the logged-in client, most recent first.
//
// The handler has requirements for the request context it receives, and if
// the requirements are not met it may return an HTTP-500. The context must
// contain the logged-in user of the client making the request.
func (api API) HTTPGetOwnSubmissions() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetOwnSubmissions)
}

func (api API) epGetOwnSubmissions(req *http.Request) result.Result {
	user := req.Context().Value(middle.AuthUser).(dao.User)

	subs, err := api.Backend.GetSubmissionsForUser(req.Context(), user.ID)
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	resp := make([]SubmissionModel, len(subs))
	for i := range subs {
		resp[i] = toSubmissionModel(subs[i])
	}

	return result.OK(resp, "user '%s' got own submissions", user.Username)
}

// HTTPDeleteSubmission returns a HandlerFunc that deletes a submission. All
// users may delete their own submissions, but only an admin user may delete
// submissions belonging to others.
//
// The handler has requirements for the request context it receives, and if
// the requirements are not met it may return an HTTP-500. The context must
// contain the ID of the submission being deleted and the logged-in user of
// the client making the request.
func (api API) HTTPDeleteSubmission() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epDeleteSubmission)
}

func (api API) epDeleteSubmission(req *http.Request) result.Result {
	id := requireIDParam(req)
	user := req.Context().Value(middle.AuthUser).(dao.User)

	existing, err := api.Backend.GetSubmission(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}

	if existing.UserID != user.ID && user.Role != dao.Admin {
		return result.Forbidden("user '%s' (role %s) delete submission %s: forbidden", user.Username, user.Role, id)
	}

	_, err = api.Backend.DeleteSubmission(req.Context(), id.String())
	if err != nil && !errors.Is(err, serr.ErrNotFound) {
		return result.InternalServerError("could not delete submission: " + err.Error())
	}

	return result.NoContent("user '%s' successfully deleted submission %s", user.Username, fmt.Sprint(id))
}

package api

import (
	"net/http"
	"time"

	"github.com/kestrel-labs/tableau/server/dao"
	"github.com/kestrel-labs/tableau/server/middle"
	"github.com/kestrel-labs/tableau/server/result"
)

// HTTPDecide returns a HandlerFunc that parses a formula, runs the tableau
// decision procedure over it, and records the outcome as a submission
// belonging to the logged-in client.
//
// The handler has requirements for the request context it receives, and if
// the requirements are not met it may return an HTTP-500. The context must
// contain the logged-in user of the client making the request.
func (api API) HTTPDecide() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epDecide)
}

func (api API) epDecide(req *http.Request) result.Result {
	user := req.Context().Value(middle.AuthUser).(dao.User)

	var decideReq DecideRequest
	err := parseJSON(req, &decideReq)
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if decideReq.Formula == "" {
		return result.BadRequest("formula: property is empty or missing from request", "empty formula")
	}

	sub, err := api.Backend.Decide(req.Context(), user.ID, decideReq.Formula)
	if err != nil {
		return result.BadRequest(err.Error(), "user '%s' decide %q: %s", user.Username, decideReq.Formula, err.Error())
	}

	resp := toSubmissionModel(sub)

	return result.Created(resp, "user '%s' decided formula %q: %s", user.Username, decideReq.Formula, sub.Verdict)
}

func toSubmissionModel(sub dao.Submission) SubmissionModel {
	m := SubmissionModel{
		URI:      PathPrefix + "/submissions/" + sub.ID.String(),
		ID:       sub.ID.String(),
		Category: sub.Category.String(),
		Decided:  sub.Decided,
		Created:  sub.Created.Format(time.RFC3339),
	}
	if sub.Formula != nil {
		m.Formula = sub.Formula.String()
	}
	if sub.Decided {
		m.Verdict = sub.Verdict.String()
	}
	return m
}

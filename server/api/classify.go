package api

import (
	"net/http"

	"github.com/kestrel-labs/tableau/server/dao"
	"github.com/kestrel-labs/tableau/server/middle"
	"github.com/kestrel-labs/tableau/server/result"
)

// HTTPClassify returns a HandlerFunc that parses a formula and reports its
// syntactic category without deciding satisfiability or persisting anything.
//
// The handler has requirements for the request context it receives, and if
// the requirements are not met it may return an HTTP-500. The context must
// contain the logged-in user of the client making the request.
func (api API) HTTPClassify() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epClassify)
}

func (api API) epClassify(req *http.Request) result.Result {
	user := req.Context().Value(middle.AuthUser).(dao.User)

	var classifyReq ClassifyRequest
	err := parseJSON(req, &classifyReq)
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if classifyReq.Formula == "" {
		return result.BadRequest("formula: property is empty or missing from request", "empty formula")
	}

	f, cat, err := api.Backend.Classify(req.Context(), classifyReq.Formula)
	if err != nil {
		return result.BadRequest(err.Error(), "user '%s' classify %q: %s", user.Username, classifyReq.Formula, err.Error())
	}

	resp := SubmissionModel{
		Formula:  f.String(),
		Category: cat.String(),
	}

	return result.OK(resp, "user '%s' classified formula as %s", user.Username, cat)
}

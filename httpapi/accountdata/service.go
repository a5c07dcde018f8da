// accountdataservice exposes the account data callable functions.
package accountdataservice

import (
	"net/http"

	"github.com/database-playground/account-eraser/httpapi"
	"github.com/database-playground/account-eraser/internal/accountdata"
	"github.com/database-playground/account-eraser/internal/auth"
	"github.com/database-playground/account-eraser/internal/callable"
	"github.com/gin-gonic/gin"
)

// FunctionName is the name clients call the deletion function by.
const FunctionName = "deleteMyAccountData"

// functionMethods are routed to the function so that a wrong method gets a
// callable error instead of a bare 404. OPTIONS stays with the CORS middleware.
var functionMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

type AccountDataService struct {
	verifier auth.Verifier
	deleter  *accountdata.Deleter
}

func NewAccountDataService(verifier auth.Verifier, deleter *accountdata.Deleter) *AccountDataService {
	return &AccountDataService{
		verifier: verifier,
		deleter:  deleter,
	}
}

func (s *AccountDataService) Register(router gin.IRouter) {
	functions := router.Group("/", auth.Middleware(s.verifier, callable.RejectUnauthenticated))

	functions.Match(functionMethods, FunctionName, callable.Handle(s.deleter.Invoke))
}

var _ httpapi.Service = (*AccountDataService)(nil)

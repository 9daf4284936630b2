package httptransport

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"fieldhub/internal/customfields"
	jwttoken "fieldhub/internal/jwt_token"
	"fieldhub/internal/transport/http/mocks"
	"fieldhub/internal/validation"
	"fieldhub/pkg/testutil"
)

//go:generate mockgen -source=handlers_values.go -destination=mocks/service-mocks.go -package=mocks Service

type ValueHandlerSuite struct {
	suite.Suite

	router      http.Handler
	service     *mocks.MockService
	staffToken  string
	clientToken string
}

func TestValueHandlerSuite(t *testing.T) {
	suite.Run(t, new(ValueHandlerSuite))
}

func (s *ValueHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := jwttoken.NewService("test-signing-key", "fieldhub-test")

	var err error
	s.staffToken, err = tokens.GenerateToken("staff-1", true, time.Hour)
	s.Require().NoError(err)
	s.clientToken, err = tokens.GenerateToken("client-1", false, time.Hour)
	s.Require().NoError(err)

	handler := NewHandler(s.service, logger)
	admin := NewAdminHandler(customfields.NewMemoryStore(), logger)
	s.router = NewRouter(handler, admin, tokens, logger)
}

// do routes the request through the full middleware chain with the given
// bearer token.
func (s *ValueHandlerSuite) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return testutil.DoRequest(s.router, req)
}

func (s *ValueHandlerSuite) TestRequiresAuthentication() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/groups/client_details/?model_id=7")
	rr := s.do(req, "")
	s.Equal(http.StatusUnauthorized, rr.Code)
}

func (s *ValueHandlerSuite) TestRejectsInvalidToken() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/groups/client_details/?model_id=7")
	rr := s.do(req, "not-a-token")
	s.Equal(http.StatusUnauthorized, rr.Code)
}

func (s *ValueHandlerSuite) TestGetGroupAsStaff() {
	snapshot := &customfields.Snapshot{
		Group: customfields.Group{ID: 1, Slug: "client_details", Name: "Client details"},
	}
	s.service.EXPECT().
		GetGroup(gomock.Any(), "client_details", int64(7), false).
		Return(snapshot, nil)

	req := testutil.NewRequest(s.T(), http.MethodGet, "/groups/client_details/?model_id=7")
	rr := s.do(req, s.staffToken)

	s.Equal(http.StatusOK, rr.Code)
	body := testutil.UnmarshalResponse[customfields.Snapshot](s.T(), rr)
	s.Equal("client_details", body.Group.Slug)
}

func (s *ValueHandlerSuite) TestGetGroupAsClient() {
	s.service.EXPECT().
		GetGroup(gomock.Any(), "client_details", int64(7), true).
		Return(&customfields.Snapshot{}, nil)

	req := testutil.NewRequest(s.T(), http.MethodGet, "/groups/client_details/?model_id=7")
	rr := s.do(req, s.clientToken)
	s.Equal(http.StatusOK, rr.Code)
}

func (s *ValueHandlerSuite) TestGetGroupNotFound() {
	s.service.EXPECT().
		GetGroup(gomock.Any(), "missing", int64(7), false).
		Return(nil, customfields.ErrNotFound)

	req := testutil.NewRequest(s.T(), http.MethodGet, "/groups/missing/?model_id=7")
	rr := s.do(req, s.staffToken)
	s.Equal(http.StatusNotFound, rr.Code)
}

func (s *ValueHandlerSuite) TestGenerateForm() {
	s.service.EXPECT().
		GenerateForm(gomock.Any(), "client_details", int64(7), true).
		Return(`<div class="form-group"></div>`, nil)

	req := testutil.NewRequest(s.T(), http.MethodGet, "/groups/client_details/form?model_id=7")
	rr := s.do(req, s.clientToken)

	s.Equal(http.StatusOK, rr.Code)
	s.Contains(rr.Header().Get("Content-Type"), "text/html")
	s.Contains(rr.Body.String(), "form-group")
}

func (s *ValueHandlerSuite) TestSaveValuesJSON() {
	form := map[string]string{"CustomFields.phone": "+1 555 0100"}
	s.service.EXPECT().
		ValidateCustomFields(gomock.Any(), "client_details", int64(7), true, form).
		Return(&validation.Result{Valid: true}, nil)
	s.service.EXPECT().
		SaveCustomFields(gomock.Any(), "client_details", int64(7), true, form).
		Return(nil)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/groups/client_details/values?model_id=7", form)
	rr := s.do(req, s.clientToken)

	s.Equal(http.StatusOK, rr.Code)
	body := testutil.UnmarshalResponse[saveResponse](s.T(), rr)
	s.True(body.Saved)
}

func (s *ValueHandlerSuite) TestSaveValuesFormEncoded() {
	form := map[string]string{"CustomFields.phone": "+1 555 0100"}
	s.service.EXPECT().
		ValidateCustomFields(gomock.Any(), "client_details", int64(7), true, form).
		Return(&validation.Result{Valid: true}, nil)
	s.service.EXPECT().
		SaveCustomFields(gomock.Any(), "client_details", int64(7), true, form).
		Return(nil)

	req := testutil.NewFormRequest(s.T(), http.MethodPost,
		"/groups/client_details/values?model_id=7",
		"CustomFields.phone=%2B1+555+0100")
	rr := s.do(req, s.clientToken)
	s.Equal(http.StatusOK, rr.Code)
}

func (s *ValueHandlerSuite) TestSaveValuesValidationFailure() {
	form := map[string]string{"CustomFields.plan": "pro"}
	s.service.EXPECT().
		ValidateCustomFields(gomock.Any(), "client_details", int64(7), true, form).
		Return(&validation.Result{
			Valid:  false,
			Errors: map[string][]string{"phone": {"The phone field is required."}},
		}, nil)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/groups/client_details/values?model_id=7", form)
	rr := s.do(req, s.clientToken)

	s.Equal(http.StatusUnprocessableEntity, rr.Code)
	body := testutil.UnmarshalResponse[saveResponse](s.T(), rr)
	s.False(body.Saved)
	s.Contains(body.Errors, "phone")
}

func (s *ValueHandlerSuite) TestSaveValuesMalformedBody() {
	req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/groups/client_details/values?model_id=7", "{not json")
	rr := s.do(req, s.clientToken)
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *ValueHandlerSuite) TestDeleteValuesRequiresStaff() {
	req := testutil.NewRequest(s.T(), http.MethodDelete, "/groups/client_details/values?model_id=7")
	rr := s.do(req, s.clientToken)
	s.Equal(http.StatusForbidden, rr.Code)
}

func (s *ValueHandlerSuite) TestDeleteValuesAsStaff() {
	s.service.EXPECT().
		DeleteCustomFieldValues(gomock.Any(), "client_details", int64(7)).
		Return(nil)

	req := testutil.NewRequest(s.T(), http.MethodDelete, "/groups/client_details/values?model_id=7")
	rr := s.do(req, s.staffToken)
	s.Equal(http.StatusNoContent, rr.Code)
}

func (s *ValueHandlerSuite) TestGetFieldValue() {
	s.service.EXPECT().
		GetFieldValue(gomock.Any(), "client_details", "phone", int64(7)).
		Return("+1 555 0100", nil)

	req := testutil.NewRequest(s.T(), http.MethodGet, "/groups/client_details/fields/phone/value?model_id=7")
	rr := s.do(req, s.staffToken)

	s.Equal(http.StatusOK, rr.Code)
	body := testutil.UnmarshalResponse[fieldValueResponse](s.T(), rr)
	s.Equal("+1 555 0100", body.Value)
}

func (s *ValueHandlerSuite) TestGetFieldValueNotFound() {
	s.service.EXPECT().
		GetFieldValue(gomock.Any(), "client_details", "phone", int64(7)).
		Return("", customfields.ErrNotFound)

	req := testutil.NewRequest(s.T(), http.MethodGet, "/groups/client_details/fields/phone/value?model_id=7")
	rr := s.do(req, s.staffToken)
	s.Equal(http.StatusNotFound, rr.Code)
}

func (s *ValueHandlerSuite) TestSetFieldValue() {
	s.service.EXPECT().
		SetFieldValue(gomock.Any(), "+1 555 0199", "client_details", "phone", int64(7)).
		Return(nil)

	req := testutil.NewJSONRequest(s.T(), http.MethodPut,
		"/groups/client_details/fields/phone/value?model_id=7",
		fieldValueResponse{Value: "+1 555 0199"})
	rr := s.do(req, s.staffToken)
	s.Equal(http.StatusOK, rr.Code)
}

func (s *ValueHandlerSuite) TestSetFieldValueNotEditable() {
	s.service.EXPECT().
		SetFieldValue(gomock.Any(), "C-123", "client_details", "contract_id", int64(7)).
		Return(customfields.ErrNotEditable)

	req := testutil.NewJSONRequest(s.T(), http.MethodPut,
		"/groups/client_details/fields/contract_id/value?model_id=7",
		fieldValueResponse{Value: "C-123"})
	rr := s.do(req, s.staffToken)
	s.Equal(http.StatusForbidden, rr.Code)
}

func (s *ValueHandlerSuite) TestMissingModelIDDefaultsToZero() {
	s.service.EXPECT().
		GetGroup(gomock.Any(), "client_details", int64(0), false).
		Return(&customfields.Snapshot{}, nil)

	req := testutil.NewRequest(s.T(), http.MethodGet, "/groups/client_details/")
	rr := s.do(req, s.staffToken)
	s.Equal(http.StatusOK, rr.Code)
}

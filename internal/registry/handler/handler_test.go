package handler_test

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"nameledger/internal/naming"
	"nameledger/internal/records/models"
	"nameledger/internal/registry/handler"
	"nameledger/internal/registry/handler/mocks"
	"nameledger/internal/token"
	"nameledger/pkg/domain"
	dErrors "nameledger/pkg/domain-errors"
	"nameledger/pkg/requestcontext"
)

const (
	testApp  = "wallet-app"
	testTick = uint64(1700000000000)
)

type HandlerSuite struct {
	suite.Suite

	ctrl    *gomock.Controller
	service *mocks.MockService
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := handler.New(s.service, logger)
	s.router = chi.NewRouter()
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithTime(r.Context(), time.UnixMilli(int64(testTick)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	h.Register(s.router, stubAuth)
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

// stubAuth stands in for the JWT middleware and injects a fixed identity.
func stubAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithAppID(r.Context(), testApp)
		ctx = requestcontext.WithCaller(ctx, addrHex(0xad))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func addrHex(fill byte) string {
	return strings.Repeat(hex.EncodeToString([]byte{fill}), 32)
}

func mustAddr(s string) naming.Address {
	addr, err := naming.ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}

func (s *HandlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerSuite) TestRegisterName() {
	owner := mustAddr(addrHex(0x11))
	tok := token.Mint(naming.Name("eastagile.sui"), owner, 375)

	s.service.EXPECT().
		RegisterName(gomock.Any(), testApp, "sui", "eastagile", owner, uint64(31536000000), uint64(100), testTick).
		Return(tok, nil)

	w := s.do(http.MethodPost, "/v1/names", map[string]any{
		"tld":         "sui",
		"label":       "eastagile",
		"owner":       addrHex(0x11),
		"duration_ms": 31536000000,
		"payment":     100,
	})

	s.Equal(http.StatusCreated, w.Code)
	var resp map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("eastagile.sui", resp["name"])
	s.Equal(addrHex(0x11), resp["holder"])
	s.Equal(tok.ID.String(), resp["id"])
	s.EqualValues(375, resp["expiry_at_mint"])
}

func (s *HandlerSuite) TestRegisterNameInvalidOwner() {
	w := s.do(http.MethodPost, "/v1/names", map[string]any{
		"tld":   "sui",
		"label": "eastagile",
		"owner": "not-an-address",
	})

	s.Equal(http.StatusBadRequest, w.Code)
	var resp map[string]string
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(string(dErrors.CodeInvalidInput), resp["error"])
}

func (s *HandlerSuite) TestRegisterNameUnavailable() {
	s.service.EXPECT().
		RegisterName(gomock.Any(), testApp, "sui", "taken", gomock.Any(), gomock.Any(), gomock.Any(), testTick).
		Return(nil, dErrors.New(dErrors.CodeLabelUnavailable, "label is not available"))

	w := s.do(http.MethodPost, "/v1/names", map[string]any{
		"tld":   "sui",
		"label": "taken",
		"owner": addrHex(0x11),
	})

	s.Equal(http.StatusConflict, w.Code)
	var resp map[string]string
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(string(dErrors.CodeLabelUnavailable), resp["error"])
}

func (s *HandlerSuite) TestRenewName() {
	tokenID := domain.NewTokenID()

	s.service.EXPECT().
		RenewName(gomock.Any(), testApp, tokenID, uint64(1000), uint64(10), testTick).
		Return(uint64(2375), nil)

	w := s.do(http.MethodPost, "/v1/tokens/"+tokenID.String()+"/renew", map[string]any{
		"duration_ms": 1000,
		"payment":     10,
	})

	s.Equal(http.StatusOK, w.Code)
	var resp handler.RenewResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.EqualValues(2375, resp.Expiry)
}

func (s *HandlerSuite) TestRenewNameBadTokenID() {
	w := s.do(http.MethodPost, "/v1/tokens/not-a-uuid/renew", map[string]any{
		"duration_ms": 1000,
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerSuite) TestRenewNameStaleToken() {
	tokenID := domain.NewTokenID()

	s.service.EXPECT().
		RenewName(gomock.Any(), testApp, tokenID, gomock.Any(), gomock.Any(), testTick).
		Return(uint64(0), dErrors.New(dErrors.CodeTokenExpired, "token no longer controls the name"))

	w := s.do(http.MethodPost, "/v1/tokens/"+tokenID.String()+"/renew", map[string]any{
		"duration_ms": 1000,
	})

	s.Equal(http.StatusForbidden, w.Code)
	var resp map[string]string
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(string(dErrors.CodeTokenExpired), resp["error"])
}

func (s *HandlerSuite) TestReclaimName() {
	tokenID := domain.NewTokenID()
	newOwner := mustAddr(addrHex(0x22))

	s.service.EXPECT().
		ReclaimName(gomock.Any(), testApp, tokenID, "sui", newOwner, testTick).
		Return(nil)

	w := s.do(http.MethodPost, "/v1/tokens/"+tokenID.String()+"/reclaim", map[string]any{
		"tld":       "sui",
		"new_owner": addrHex(0x22),
	})
	s.Equal(http.StatusNoContent, w.Code)
}

func (s *HandlerSuite) TestSetAndUnsetTarget() {
	tokenID := domain.NewTokenID()
	target := mustAddr(addrHex(0x33))

	s.service.EXPECT().
		SetTarget(gomock.Any(), testApp, tokenID, target, testTick).
		Return(nil)
	w := s.do(http.MethodPut, "/v1/tokens/"+tokenID.String()+"/target", map[string]any{
		"target": addrHex(0x33),
	})
	s.Equal(http.StatusNoContent, w.Code)

	s.service.EXPECT().
		UnsetTarget(gomock.Any(), testApp, tokenID, testTick).
		Return(nil)
	w = s.do(http.MethodDelete, "/v1/tokens/"+tokenID.String()+"/target", nil)
	s.Equal(http.StatusNoContent, w.Code)
}

func (s *HandlerSuite) TestDefaultDomainUsesCallerIdentity() {
	tokenID := domain.NewTokenID()
	caller := mustAddr(addrHex(0xad))

	s.service.EXPECT().
		SetDefaultDomain(gomock.Any(), testApp, tokenID, caller, testTick).
		Return(nil)
	w := s.do(http.MethodPut, "/v1/tokens/"+tokenID.String()+"/default-domain", nil)
	s.Equal(http.StatusNoContent, w.Code)

	s.service.EXPECT().
		UnsetDefaultDomain(gomock.Any(), testApp, caller).
		Return(nil)
	w = s.do(http.MethodDelete, "/v1/default-domain", nil)
	s.Equal(http.StatusNoContent, w.Code)
}

func (s *HandlerSuite) TestTransfer() {
	tokenID := domain.NewTokenID()
	to := mustAddr(addrHex(0x44))

	s.service.EXPECT().
		Transfer(gomock.Any(), testApp, tokenID, to).
		Return(nil)

	w := s.do(http.MethodPost, "/v1/tokens/"+tokenID.String()+"/transfer", map[string]any{
		"to": addrHex(0x44),
	})
	s.Equal(http.StatusNoContent, w.Code)
}

func (s *HandlerSuite) TestUpdateImage() {
	tokenID := domain.NewTokenID()
	signature := []byte("sig-bytes")
	digest := []byte("digest-bytes")
	message := "https://img.example/x.png,0000000000000000000000000000000000000000000000000000000000000011,375"

	s.service.EXPECT().
		UpdateImage(gomock.Any(), testApp, tokenID, signature, digest, []byte(message), testTick).
		Return(nil)

	w := s.do(http.MethodPost, "/v1/tokens/"+tokenID.String()+"/image", map[string]any{
		"signature": hex.EncodeToString(signature),
		"digest":    hex.EncodeToString(digest),
		"message":   message,
	})
	s.Equal(http.StatusNoContent, w.Code)
}

func (s *HandlerSuite) TestUpdateImageRejectsBadHex() {
	tokenID := domain.NewTokenID()

	w := s.do(http.MethodPost, "/v1/tokens/"+tokenID.String()+"/image", map[string]any{
		"signature": "zzzz",
		"digest":    "abcd",
		"message":   "m",
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerSuite) TestLookup() {
	owner := mustAddr(addrHex(0x11))
	target := mustAddr(addrHex(0x33))
	tokenID := domain.NewTokenID()
	record := &models.NameRecord{TokenID: tokenID, Owner: owner, Target: &target}

	s.service.EXPECT().
		Lookup(gomock.Any(), naming.Name("eastagile.sui")).
		Return(record, uint64(375), nil)

	w := s.do(http.MethodGet, "/v1/names/eastagile.sui", nil)

	s.Equal(http.StatusOK, w.Code)
	var resp handler.LookupResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("eastagile.sui", resp.Name)
	s.Equal(tokenID.String(), resp.TokenID)
	s.Equal(addrHex(0x11), resp.Owner)
	s.Equal(addrHex(0x33), resp.Target)
	s.EqualValues(375, resp.Expiry)
}

func (s *HandlerSuite) TestLookupNotFound() {
	s.service.EXPECT().
		Lookup(gomock.Any(), naming.Name("ghost.sui")).
		Return(nil, uint64(0), dErrors.New(dErrors.CodeLabelNotExists, "no such name"))

	w := s.do(http.MethodGet, "/v1/names/ghost.sui", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerSuite) TestAvailable() {
	s.service.EXPECT().
		Available(gomock.Any(), "sui", "fresh", testTick).
		Return(true, nil)

	w := s.do(http.MethodGet, "/v1/available?tld=sui&label=fresh", nil)

	s.Equal(http.StatusOK, w.Code)
	var resp handler.AvailableResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.True(resp.Available)
	s.Equal("sui", resp.TLD)
	s.Equal("fresh", resp.Label)
}

func (s *HandlerSuite) TestDefaultDomainLookup() {
	addr := mustAddr(addrHex(0x55))

	s.service.EXPECT().
		DefaultDomain(gomock.Any(), addr).
		Return(naming.Name("primary.sui"), nil)

	w := s.do(http.MethodGet, "/v1/addresses/"+addrHex(0x55)+"/default-domain", nil)

	s.Equal(http.StatusOK, w.Code)
	var resp handler.DefaultDomainResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("primary.sui", resp.Name)
}

func (s *HandlerSuite) TestAdminRoutes() {
	caller := mustAddr(addrHex(0xad))
	key := bytes.Repeat([]byte{0x01}, 32)

	s.service.EXPECT().SetPublicKey(gomock.Any(), caller, key).Return(nil)
	w := s.do(http.MethodPut, "/v1/admin/public-key", map[string]any{
		"key": hex.EncodeToString(key),
	})
	s.Equal(http.StatusNoContent, w.Code)

	s.service.EXPECT().CreateTLD(gomock.Any(), caller, "move").Return(nil)
	w = s.do(http.MethodPost, "/v1/admin/tlds", map[string]any{"tld": "move"})
	s.Equal(http.StatusCreated, w.Code)

	s.service.EXPECT().AuthorizeApp(gomock.Any(), caller, "other-app").Return(nil)
	w = s.do(http.MethodPut, "/v1/admin/apps/other-app", nil)
	s.Equal(http.StatusNoContent, w.Code)

	s.service.EXPECT().DeauthorizeApp(gomock.Any(), caller, "other-app").Return(nil)
	w = s.do(http.MethodDelete, "/v1/admin/apps/other-app", nil)
	s.Equal(http.StatusNoContent, w.Code)

	s.service.EXPECT().Withdraw(gomock.Any(), caller).Return(uint64(110), nil)
	w = s.do(http.MethodPost, "/v1/admin/withdraw", nil)
	s.Equal(http.StatusOK, w.Code)
	var resp handler.WithdrawResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.EqualValues(110, resp.Amount)
}

func (s *HandlerSuite) TestWithdrawEmptyBalance() {
	caller := mustAddr(addrHex(0xad))

	s.service.EXPECT().
		Withdraw(gomock.Any(), caller).
		Return(uint64(0), dErrors.New(dErrors.CodeNoProfits, "nothing to withdraw"))

	w := s.do(http.MethodPost, "/v1/admin/withdraw", nil)
	s.Equal(http.StatusConflict, w.Code)
}

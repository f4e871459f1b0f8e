package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"nameledger/internal/naming"
	"nameledger/internal/records/models"
	"nameledger/internal/token"
	"nameledger/pkg/domain"
	dErrors "nameledger/pkg/domain-errors"
	"nameledger/pkg/platform/httputil"
	"nameledger/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/service_mock.go -package=mocks

// Service defines the registry operations the HTTP layer exposes.
type Service interface {
	RegisterName(ctx context.Context, app, tld, label string, owner naming.Address, duration, payment, now uint64) (*token.Token, error)
	RenewName(ctx context.Context, app string, tokenID domain.TokenID, duration, payment, now uint64) (uint64, error)
	ReclaimName(ctx context.Context, app string, tokenID domain.TokenID, tld string, newOwner naming.Address, now uint64) error
	SetTarget(ctx context.Context, app string, tokenID domain.TokenID, target naming.Address, now uint64) error
	UnsetTarget(ctx context.Context, app string, tokenID domain.TokenID, now uint64) error
	SetDefaultDomain(ctx context.Context, app string, tokenID domain.TokenID, caller naming.Address, now uint64) error
	UnsetDefaultDomain(ctx context.Context, app string, caller naming.Address) error
	Transfer(ctx context.Context, app string, tokenID domain.TokenID, to naming.Address) error
	UpdateImage(ctx context.Context, app string, tokenID domain.TokenID, signature, digest, raw []byte, now uint64) error

	Token(ctx context.Context, tokenID domain.TokenID) (*token.Token, error)
	Lookup(ctx context.Context, name naming.Name) (*models.NameRecord, uint64, error)
	Available(ctx context.Context, tld, label string, now uint64) (bool, error)
	DefaultDomain(ctx context.Context, addr naming.Address) (naming.Name, error)

	SetPublicKey(ctx context.Context, caller naming.Address, key []byte) error
	CreateTLD(ctx context.Context, caller naming.Address, tld string) error
	AuthorizeApp(ctx context.Context, caller naming.Address, app string) error
	DeauthorizeApp(ctx context.Context, caller naming.Address, app string) error
	Withdraw(ctx context.Context, caller naming.Address) (uint64, error)
}

// Handler wires registry endpoints to the registry service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a registry handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts registry endpoints on the router. Reads stay public;
// mutations and admin routes run behind the supplied auth middleware.
func (h *Handler) Register(r chi.Router, auth func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Get("/v1/names/{name}", h.HandleLookup)
		r.Get("/v1/available", h.HandleAvailable)
		r.Get("/v1/tokens/{tokenID}", h.HandleToken)
		r.Get("/v1/addresses/{address}/default-domain", h.HandleDefaultDomain)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Post("/v1/names", h.HandleRegister)
		r.Post("/v1/tokens/{tokenID}/renew", h.HandleRenew)
		r.Post("/v1/tokens/{tokenID}/reclaim", h.HandleReclaim)
		r.Put("/v1/tokens/{tokenID}/target", h.HandleSetTarget)
		r.Delete("/v1/tokens/{tokenID}/target", h.HandleUnsetTarget)
		r.Put("/v1/tokens/{tokenID}/default-domain", h.HandleSetDefaultDomain)
		r.Delete("/v1/default-domain", h.HandleUnsetDefaultDomain)
		r.Post("/v1/tokens/{tokenID}/transfer", h.HandleTransfer)
		r.Post("/v1/tokens/{tokenID}/image", h.HandleUpdateImage)

		r.Put("/v1/admin/public-key", h.HandleSetPublicKey)
		r.Post("/v1/admin/tlds", h.HandleCreateTLD)
		r.Put("/v1/admin/apps/{app}", h.HandleAuthorizeApp)
		r.Delete("/v1/admin/apps/{app}", h.HandleDeauthorizeApp)
		r.Post("/v1/admin/withdraw", h.HandleWithdraw)
	})
}

// HandleRegister handles POST /v1/names requests.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	app := requestcontext.AppID(ctx)
	tok, err := h.service.RegisterName(ctx, app, req.TLD, req.Label, req.ParsedOwner(), req.Duration, req.Payment, requestcontext.Tick(ctx))
	if err != nil {
		h.logger.ErrorContext(ctx, "name registration failed",
			"request_id", requestID,
			"tld", req.TLD,
			"label", req.Label,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "name registered",
		"request_id", requestID,
		"name", tok.BoundName,
		"token_id", tok.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, FromToken(tok))
}

// HandleRenew handles POST /v1/tokens/{tokenID}/renew requests.
func (h *Handler) HandleRenew(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	tokenID, ok := h.tokenID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[RenewRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	app := requestcontext.AppID(ctx)
	expiry, err := h.service.RenewName(ctx, app, tokenID, req.Duration, req.Payment, requestcontext.Tick(ctx))
	if err != nil {
		h.logger.ErrorContext(ctx, "name renewal failed",
			"request_id", requestID,
			"token_id", tokenID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "name renewed",
		"request_id", requestID,
		"token_id", tokenID,
		"expiry", expiry,
	)
	httputil.WriteJSON(w, http.StatusOK, RenewResponse{Expiry: expiry})
}

// HandleReclaim handles POST /v1/tokens/{tokenID}/reclaim requests.
func (h *Handler) HandleReclaim(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	tokenID, ok := h.tokenID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ReclaimRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	app := requestcontext.AppID(ctx)
	if err := h.service.ReclaimName(ctx, app, tokenID, req.TLD, req.ParsedNewOwner(), requestcontext.Tick(ctx)); err != nil {
		h.logger.ErrorContext(ctx, "record reclaim failed",
			"request_id", requestID,
			"token_id", tokenID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSetTarget handles PUT /v1/tokens/{tokenID}/target requests.
func (h *Handler) HandleSetTarget(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	tokenID, ok := h.tokenID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SetTargetRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	app := requestcontext.AppID(ctx)
	if err := h.service.SetTarget(ctx, app, tokenID, req.ParsedTarget(), requestcontext.Tick(ctx)); err != nil {
		h.logger.ErrorContext(ctx, "target update failed",
			"request_id", requestID,
			"token_id", tokenID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleUnsetTarget handles DELETE /v1/tokens/{tokenID}/target requests.
func (h *Handler) HandleUnsetTarget(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	tokenID, ok := h.tokenID(w, r)
	if !ok {
		return
	}

	app := requestcontext.AppID(ctx)
	if err := h.service.UnsetTarget(ctx, app, tokenID, requestcontext.Tick(ctx)); err != nil {
		h.logger.ErrorContext(ctx, "target clear failed",
			"request_id", requestID,
			"token_id", tokenID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSetDefaultDomain handles PUT /v1/tokens/{tokenID}/default-domain requests.
func (h *Handler) HandleSetDefaultDomain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	tokenID, ok := h.tokenID(w, r)
	if !ok {
		return
	}
	caller, ok := h.caller(w, ctx)
	if !ok {
		return
	}

	app := requestcontext.AppID(ctx)
	if err := h.service.SetDefaultDomain(ctx, app, tokenID, caller, requestcontext.Tick(ctx)); err != nil {
		h.logger.ErrorContext(ctx, "default domain update failed",
			"request_id", requestID,
			"token_id", tokenID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleUnsetDefaultDomain handles DELETE /v1/default-domain requests.
func (h *Handler) HandleUnsetDefaultDomain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	caller, ok := h.caller(w, ctx)
	if !ok {
		return
	}

	app := requestcontext.AppID(ctx)
	if err := h.service.UnsetDefaultDomain(ctx, app, caller); err != nil {
		h.logger.ErrorContext(ctx, "default domain clear failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleTransfer handles POST /v1/tokens/{tokenID}/transfer requests.
func (h *Handler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	tokenID, ok := h.tokenID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[TransferRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	app := requestcontext.AppID(ctx)
	if err := h.service.Transfer(ctx, app, tokenID, req.ParsedTo()); err != nil {
		h.logger.ErrorContext(ctx, "token transfer failed",
			"request_id", requestID,
			"token_id", tokenID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleUpdateImage handles POST /v1/tokens/{tokenID}/image requests.
func (h *Handler) HandleUpdateImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	tokenID, ok := h.tokenID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpdateImageRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	app := requestcontext.AppID(ctx)
	err := h.service.UpdateImage(ctx, app, tokenID, req.ParsedSignature(), req.ParsedDigest(), []byte(req.Message), requestcontext.Tick(ctx))
	if err != nil {
		h.logger.ErrorContext(ctx, "image update failed",
			"request_id", requestID,
			"token_id", tokenID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleLookup handles GET /v1/names/{name} requests.
func (h *Handler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name := naming.Name(chi.URLParam(r, "name"))
	record, expiry, err := h.service.Lookup(ctx, name)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRecord(name.String(), record, expiry))
}

// HandleAvailable handles GET /v1/available requests.
func (h *Handler) HandleAvailable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tld := r.URL.Query().Get("tld")
	label := r.URL.Query().Get("label")
	available, err := h.service.Available(ctx, tld, label, requestcontext.Tick(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, AvailableResponse{
		TLD:       tld,
		Label:     label,
		Available: available,
	})
}

// HandleToken handles GET /v1/tokens/{tokenID} requests.
func (h *Handler) HandleToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tokenID, ok := h.tokenID(w, r)
	if !ok {
		return
	}
	tok, err := h.service.Token(ctx, tokenID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromToken(tok))
}

// HandleDefaultDomain handles GET /v1/addresses/{address}/default-domain requests.
func (h *Handler) HandleDefaultDomain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	addr, err := naming.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	name, err := h.service.DefaultDomain(ctx, addr)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, DefaultDomainResponse{
		Address: addr.String(),
		Name:    name.String(),
	})
}

// HandleSetPublicKey handles PUT /v1/admin/public-key requests.
func (h *Handler) HandleSetPublicKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	caller, ok := h.caller(w, ctx)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SetPublicKeyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.SetPublicKey(ctx, caller, req.ParsedKey()); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCreateTLD handles POST /v1/admin/tlds requests.
func (h *Handler) HandleCreateTLD(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	caller, ok := h.caller(w, ctx)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[CreateTLDRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.CreateTLD(ctx, caller, req.TLD); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// HandleAuthorizeApp handles PUT /v1/admin/apps/{app} requests.
func (h *Handler) HandleAuthorizeApp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, ok := h.caller(w, ctx)
	if !ok {
		return
	}
	app := chi.URLParam(r, "app")
	if app == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "app is required"))
		return
	}

	if err := h.service.AuthorizeApp(ctx, caller, app); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDeauthorizeApp handles DELETE /v1/admin/apps/{app} requests.
func (h *Handler) HandleDeauthorizeApp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, ok := h.caller(w, ctx)
	if !ok {
		return
	}
	app := chi.URLParam(r, "app")
	if app == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "app is required"))
		return
	}

	if err := h.service.DeauthorizeApp(ctx, caller, app); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleWithdraw handles POST /v1/admin/withdraw requests.
func (h *Handler) HandleWithdraw(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, ok := h.caller(w, ctx)
	if !ok {
		return
	}
	amount, err := h.service.Withdraw(ctx, caller)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, WithdrawResponse{Amount: amount})
}

func (h *Handler) tokenID(w http.ResponseWriter, r *http.Request) (domain.TokenID, bool) {
	tokenID, err := domain.ParseTokenID(chi.URLParam(r, "tokenID"))
	if err != nil {
		httputil.WriteError(w, err)
		return domain.TokenID{}, false
	}
	return tokenID, true
}

func (h *Handler) caller(w http.ResponseWriter, ctx context.Context) (naming.Address, bool) {
	raw := requestcontext.Caller(ctx)
	if raw == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return naming.Address{}, false
	}
	addr, err := naming.ParseAddress(raw)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "caller identity is not a valid address"))
		return naming.Address{}, false
	}
	return addr, true
}

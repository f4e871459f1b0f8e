package handler

import (
	"nameledger/internal/records/models"
	"nameledger/internal/token"
)

// TokenResponse is the HTTP representation of a minted token.
type TokenResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Holder       string `json:"holder"`
	ImageURL     string `json:"image_url,omitempty"`
	ExpiryAtMint uint64 `json:"expiry_at_mint"`
}

// FromToken converts a minted token to its HTTP representation.
func FromToken(tok *token.Token) *TokenResponse {
	return &TokenResponse{
		ID:           tok.ID.String(),
		Name:         tok.BoundName.String(),
		Holder:       tok.Holder.String(),
		ImageURL:     tok.ImageURL,
		ExpiryAtMint: tok.ExpiryAtMint,
	}
}

// LookupResponse is the HTTP response for GET /v1/names/{name}.
type LookupResponse struct {
	Name    string `json:"name"`
	TokenID string `json:"token_id"`
	Owner   string `json:"owner"`
	Target  string `json:"target,omitempty"`
	Expiry  uint64 `json:"expiry"`
}

// FromRecord converts a name record plus its live expiry to an HTTP response.
func FromRecord(name string, record *models.NameRecord, expiry uint64) *LookupResponse {
	resp := &LookupResponse{
		Name:    name,
		TokenID: record.TokenID.String(),
		Owner:   record.Owner.String(),
		Expiry:  expiry,
	}
	if record.Target != nil {
		resp.Target = record.Target.String()
	}
	return resp
}

// RenewResponse is the HTTP response for POST /v1/tokens/{tokenID}/renew.
type RenewResponse struct {
	Expiry uint64 `json:"expiry"`
}

// AvailableResponse is the HTTP response for GET /v1/available.
type AvailableResponse struct {
	TLD       string `json:"tld"`
	Label     string `json:"label"`
	Available bool   `json:"available"`
}

// DefaultDomainResponse is the HTTP response for default-domain lookups.
type DefaultDomainResponse struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

// WithdrawResponse is the HTTP response for POST /v1/admin/withdraw.
type WithdrawResponse struct {
	Amount uint64 `json:"amount"`
}

package handler

import (
	"encoding/hex"
	"strings"

	"nameledger/internal/naming"
	dErrors "nameledger/pkg/domain-errors"
)

// RegisterRequest is the HTTP request body for POST /v1/names.
type RegisterRequest struct {
	TLD      string `json:"tld"`
	Label    string `json:"label"`
	Owner    string `json:"owner"`
	Duration uint64 `json:"duration_ms"`
	Payment  uint64 `json:"payment"`

	parsedOwner naming.Address
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *RegisterRequest) Validate() error {
	r.TLD = strings.TrimSpace(r.TLD)
	if r.TLD == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "tld is required")
	}
	r.Label = strings.TrimSpace(r.Label)
	if r.Label == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "label is required")
	}
	owner, err := naming.ParseAddress(r.Owner)
	if err != nil {
		return err
	}
	r.parsedOwner = owner
	return nil
}

// ParsedOwner returns the validated owner address.
func (r *RegisterRequest) ParsedOwner() naming.Address {
	return r.parsedOwner
}

// RenewRequest is the HTTP request body for POST /v1/tokens/{tokenID}/renew.
type RenewRequest struct {
	Duration uint64 `json:"duration_ms"`
	Payment  uint64 `json:"payment"`
}

// ReclaimRequest is the HTTP request body for POST /v1/tokens/{tokenID}/reclaim.
type ReclaimRequest struct {
	TLD      string `json:"tld"`
	NewOwner string `json:"new_owner"`

	parsedNewOwner naming.Address
}

func (r *ReclaimRequest) Validate() error {
	r.TLD = strings.TrimSpace(r.TLD)
	if r.TLD == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "tld is required")
	}
	owner, err := naming.ParseAddress(r.NewOwner)
	if err != nil {
		return err
	}
	r.parsedNewOwner = owner
	return nil
}

// ParsedNewOwner returns the validated new owner address.
func (r *ReclaimRequest) ParsedNewOwner() naming.Address {
	return r.parsedNewOwner
}

// SetTargetRequest is the HTTP request body for PUT /v1/tokens/{tokenID}/target.
type SetTargetRequest struct {
	Target string `json:"target"`

	parsedTarget naming.Address
}

func (r *SetTargetRequest) Validate() error {
	target, err := naming.ParseAddress(r.Target)
	if err != nil {
		return err
	}
	r.parsedTarget = target
	return nil
}

// ParsedTarget returns the validated target address.
func (r *SetTargetRequest) ParsedTarget() naming.Address {
	return r.parsedTarget
}

// TransferRequest is the HTTP request body for POST /v1/tokens/{tokenID}/transfer.
type TransferRequest struct {
	To string `json:"to"`

	parsedTo naming.Address
}

func (r *TransferRequest) Validate() error {
	to, err := naming.ParseAddress(r.To)
	if err != nil {
		return err
	}
	r.parsedTo = to
	return nil
}

// ParsedTo returns the validated recipient address.
func (r *TransferRequest) ParsedTo() naming.Address {
	return r.parsedTo
}

// UpdateImageRequest is the HTTP request body for POST /v1/tokens/{tokenID}/image.
// Signature and digest travel hex-encoded; the message is the raw signed text.
type UpdateImageRequest struct {
	Signature string `json:"signature"`
	Digest    string `json:"digest"`
	Message   string `json:"message"`

	parsedSignature []byte
	parsedDigest    []byte
}

func (r *UpdateImageRequest) Validate() error {
	if r.Message == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "message is required")
	}
	sig, err := hex.DecodeString(r.Signature)
	if err != nil || len(sig) == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "signature must be non-empty hex")
	}
	digest, err := hex.DecodeString(r.Digest)
	if err != nil || len(digest) == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "digest must be non-empty hex")
	}
	r.parsedSignature = sig
	r.parsedDigest = digest
	return nil
}

// ParsedSignature returns the decoded signature bytes.
func (r *UpdateImageRequest) ParsedSignature() []byte {
	return r.parsedSignature
}

// ParsedDigest returns the decoded digest bytes.
func (r *UpdateImageRequest) ParsedDigest() []byte {
	return r.parsedDigest
}

// SetPublicKeyRequest is the HTTP request body for PUT /v1/admin/public-key.
type SetPublicKeyRequest struct {
	Key string `json:"key"`

	parsedKey []byte
}

func (r *SetPublicKeyRequest) Validate() error {
	key, err := hex.DecodeString(r.Key)
	if err != nil || len(key) == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "key must be non-empty hex")
	}
	r.parsedKey = key
	return nil
}

// ParsedKey returns the decoded public key bytes.
func (r *SetPublicKeyRequest) ParsedKey() []byte {
	return r.parsedKey
}

// CreateTLDRequest is the HTTP request body for POST /v1/admin/tlds.
type CreateTLDRequest struct {
	TLD string `json:"tld"`
}

func (r *CreateTLDRequest) Validate() error {
	r.TLD = strings.TrimSpace(r.TLD)
	if r.TLD == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "tld is required")
	}
	return nil
}

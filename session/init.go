package session

import (
	"github.com/momentics/bolt-core/api"
	"github.com/momentics/bolt-core/message"
	"github.com/momentics/bolt-core/meta"
	"github.com/momentics/bolt-core/values"
)

// AuthReattempt is the external auth-reattempt collaborator (spec section
// 6): given the attempt number and the error that triggered this retry,
// it either returns a fresh auth token to retry INIT with, or sets
// giveUp to stop retrying and surface the original error.
type AuthReattempt func(attempt int, priorErr error) (authToken values.Value, giveUp bool)

// Init drives the INIT handshake (spec section 4.8): client_id and an
// auth token map of {scheme, principal, credentials, ...}. On SUCCESS,
// CredentialsExpired() reflects the server's credentials_expired flag.
// On a security FAILURE the reattempt callback (if non-nil) is consulted
// for fresh credentials and INIT is retried; reattempt may be nil, in
// which case the first failure is surfaced immediately.
func (s *Session) Init(clientID string, authToken values.Value, reattempt AuthReattempt) error {
	attempt := 0
	for {
		_, err := s.initOnce(clientID, authToken)
		if err == nil {
			return nil
		}
		boltErr, ok := err.(*api.Error)
		if !ok {
			return err
		}
		switch boltErr.Code {
		case api.ErrCodeSecureConnectionRequired:
			return err
		case api.ErrCodeInvalidCredentials, api.ErrCodeAuthRateLimit:
			if reattempt == nil {
				return err
			}
			attempt++
			newToken, giveUp := reattempt(attempt, err)
			if giveUp {
				return err
			}
			authToken = newToken
			continue
		default:
			return err
		}
	}
}

// initOnce enqueues one INIT request and drives it to completion via
// Sync, classifying any FAILURE into the authentication error taxonomy
// of spec section 7.
func (s *Session) initOnce(clientID string, authToken values.Value) (values.Value, error) {
	var outcome values.Value
	var outErr error
	cb := func(cdata any, sig message.Signature, fields []values.Value) (CallbackResult, error) {
		switch sig {
		case message.SigSuccess:
			if len(fields) > 0 {
				outcome = fields[0]
				if v, ok := outcome.MapGet("credentials_expired"); ok {
					if b, ok := v.AsBool(); ok {
						s.mu.Lock()
						s.credentialsExpired = b
						s.mu.Unlock()
					}
				}
			}
			return Done, nil
		case message.SigFailure:
			var metaVal values.Value
			if len(fields) > 0 {
				metaVal = fields[0]
			}
			details, extractErr := meta.ExtractFailure(metaVal)
			if extractErr != nil {
				outErr = extractErr
				return Done, nil
			}
			outErr = classifyAuthFailure(details)
			return Done, nil
		default:
			return Error, api.NewError(api.ErrCodeProtocol, "session: unexpected response to INIT: "+sig.String())
		}
	}

	if err := s.enqueue(newRequest(message.SigInit, []values.Value{values.String(clientID), authToken}, nil, cb, nil)); err != nil {
		return values.Null, err
	}
	if err := s.Sync(nil); err != nil {
		return values.Null, err
	}
	if outErr != nil {
		return values.Null, outErr
	}
	return outcome, nil
}

func classifyAuthFailure(d meta.FailureDetails) error {
	switch d.Code {
	case "Neo.ClientError.Security.EncryptionRequired":
		return api.NewError(api.ErrCodeSecureConnectionRequired, d.Message)
	case "Neo.ClientError.Security.AuthenticationRateLimit":
		return api.NewError(api.ErrCodeAuthRateLimit, d.Message)
	case "Neo.ClientError.Security.Unauthorized":
		return api.NewError(api.ErrCodeInvalidCredentials, d.Message)
	default:
		return api.NewError(api.ErrCodeInvalidCredentials, d.Message).WithContext("code", d.Code)
	}
}

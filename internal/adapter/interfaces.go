// SPDX-License-Identifier: Apache-2.0

// Package adapter provides clients for external services the application
// depends on.
//
// The primary abstraction is [Mailer], which decouples the service layer from
// the outbound mail transport. The package ships an HTTP mail-relay
// implementation ([NewMailRelayClient]).
//
// Error values defined in errors.go are mapped from transport failures so
// that callers can use [errors.Is] for transport-agnostic error handling.
package adapter

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/mailer_mock.go -package=mock

// Mailer delivers transactional email on behalf of the application.
// Implementations are responsible for serialisation, relay authentication,
// and mapping transport-level errors to [ErrDispatchFailed].
type Mailer interface {
	// Send delivers a single HTML email to the given recipient. Returns
	// [ErrDispatchFailed] (wrapped) if the relay rejects the message or
	// cannot be reached.
	Send(ctx context.Context, to string, subject string, html string) error
}

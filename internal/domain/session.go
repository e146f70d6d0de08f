package domain

import "time"

// Flow identifies the multi-step conversation an admin is currently in.
type Flow int

const (
	FlowNone Flow = iota
	FlowBroadcastAudience
	FlowBroadcastPayload
	FlowBroadcastConfirm
	FlowRelaySelect
	FlowRelayChat
	FlowExceptionInput
)

// CancelKind groups flows for the /cancel confirmation text.
type CancelKind string

const (
	CancelBroadcast CancelKind = "broadcast"
	CancelRelay     CancelKind = "relay"
	CancelException CancelKind = "exception"
	CancelGeneric   CancelKind = "generic"
)

// Cancel reports how this flow should be described when cancelled.
// Each flow declares its own cancel behavior instead of matching
// state names by substring.
func (f Flow) Cancel() CancelKind {
	switch f {
	case FlowBroadcastAudience, FlowBroadcastPayload, FlowBroadcastConfirm:
		return CancelBroadcast
	case FlowRelaySelect, FlowRelayChat:
		return CancelRelay
	case FlowExceptionInput:
		return CancelException
	default:
		return CancelGeneric
	}
}

// ExceptionAction selects the mutation an exception-input flow performs.
type ExceptionAction string

const (
	ExceptionAdd    ExceptionAction = "add"
	ExceptionRemove ExceptionAction = "remove"
)

// MessageRef points at a transport-level message without copying its
// content into memory.
type MessageRef struct {
	ChatID    int64
	MessageID int
}

// Session holds ephemeral per-admin conversational state. One session
// per actor; entering a new flow replaces any prior session.
type Session struct {
	Flow        Flow
	InitiatorID int64

	// Broadcast flow
	Audience    string
	Recipients  []User // frozen snapshot, never refreshed mid-send
	Payload     MessageRef
	ContentType string
	Preview     string

	// Relay flow
	PeerID int64

	// Exception flow
	Action ExceptionAction

	StartedAt time.Time
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlow_Cancel(t *testing.T) {
	tests := []struct {
		name     string
		flow     Flow
		expected CancelKind
	}{
		{name: "audience step", flow: FlowBroadcastAudience, expected: CancelBroadcast},
		{name: "payload step", flow: FlowBroadcastPayload, expected: CancelBroadcast},
		{name: "confirm step", flow: FlowBroadcastConfirm, expected: CancelBroadcast},
		{name: "relay selection", flow: FlowRelaySelect, expected: CancelRelay},
		{name: "relay chat", flow: FlowRelayChat, expected: CancelRelay},
		{name: "exception input", flow: FlowExceptionInput, expected: CancelException},
		{name: "no flow", flow: FlowNone, expected: CancelGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.flow.Cancel())
		})
	}
}

func TestUser_Identity(t *testing.T) {
	withHandle := User{ID: 42, Username: "alice"}
	assert.Equal(t, "@alice (ID: 42)", withHandle.Identity())

	bare := User{ID: 42}
	assert.Equal(t, "ID: 42", bare.Identity())
}

func TestLanguage_LocaleCode(t *testing.T) {
	assert.Equal(t, "ru", LangRUS.LocaleCode())
	assert.Equal(t, "en", LangENG.LocaleCode())
	assert.Equal(t, "en", Language("").LocaleCode())
}

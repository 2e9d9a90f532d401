package enode

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrapTicketRoundTrip(t *testing.T) {
	uris := []*NodeURI{
		NewNodeURI(testNodeID(1), "10.0.0.5", 30303),
		NewNodeURIWithDiscPort(testNodeID(2), "node.example.com", 30303, 30301),
	}

	ticket := NewBootstrapTicket(uris)
	encoded, err := ticket.Encode()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, TicketPrefix))

	decoded, err := DecodeBootstrapTicket(encoded)
	require.NoError(t, err)
	require.Len(t, decoded.URIs, 2)
	assert.Equal(t, uris[0].String(), decoded.URIs[0])
	assert.Equal(t, uris[1].String(), decoded.URIs[1])

	parsed, err := decoded.NodeURIs()
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.True(t, uris[0].Equal(parsed[0]))
	assert.True(t, uris[1].Equal(parsed[1]))
}

// encodeRawTicket 构造任意载荷的票据字符串
func encodeRawTicket(t *testing.T, ticket *BootstrapTicket) string {
	t.Helper()
	data, err := json.Marshal(ticket)
	require.NoError(t, err)
	return TicketPrefix + base64.RawURLEncoding.EncodeToString(data)
}

func TestDecodeBootstrapTicketFiltersInvalid(t *testing.T) {
	valid := "enode://" + testIDHex(1) + "@10.0.0.5:30303"

	s := encodeRawTicket(t, &BootstrapTicket{
		URIs: []string{
			"   " + strings.ToUpper(valid) + "   ", // 非规范形式，应被规范化
			"enode://bad@10.0.0.5:30303",
			"garbage",
		},
	})

	decoded, err := DecodeBootstrapTicket(s)
	require.NoError(t, err)
	require.Len(t, decoded.URIs, 1)
	assert.Equal(t, valid, decoded.URIs[0])
}

func TestDecodeBootstrapTicketErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"wrong prefix", "dep2p://abc"},
		{"empty payload", TicketPrefix},
		{"bad base64", TicketPrefix + "%%%"},
		{"bad json", TicketPrefix + base64.RawURLEncoding.EncodeToString([]byte("not json"))},
		{"oversized payload", TicketPrefix + strings.Repeat("A", maxTicketPayload+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBootstrapTicket(tt.input)
			assert.ErrorIs(t, err, ErrInvalidTicket)
		})
	}

	t.Run("no valid uri", func(t *testing.T) {
		s := encodeRawTicket(t, &BootstrapTicket{URIs: []string{"garbage"}})
		_, err := DecodeBootstrapTicket(s)
		assert.ErrorIs(t, err, ErrInvalidTicket)
	})
}

func TestBootstrapTicketExpiry(t *testing.T) {
	ticket := NewBootstrapTicket([]*NodeURI{NewNodeURI(testNodeID(1), "10.0.0.5", 30303)})

	assert.False(t, ticket.IsExpired(time.Hour))

	ticket.Timestamp = time.Now().Add(-2 * time.Hour).Unix()
	assert.True(t, ticket.IsExpired(time.Hour))

	// 无时间戳不过期
	ticket.Timestamp = 0
	assert.False(t, ticket.IsExpired(time.Nanosecond))
}

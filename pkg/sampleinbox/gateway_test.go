package sampleinbox

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRecentIgnoresSession(t *testing.T) {
	g := NewGateway()

	emails, err := g.FetchRecent(context.Background(), nil, 20, nil)
	require.NoError(t, err)
	require.Len(t, emails, 4)

	assert.Equal(t, "1", emails[0].MessageID)
	assert.Equal(t, "sarah.jenkins@techcorp.io", emails[0].Sender)
	assert.Empty(t, emails[0].Category, "sample messages arrive unclassified")
}

func TestFetchRecentHonorsLimit(t *testing.T) {
	g := NewGateway()

	emails, err := g.FetchRecent(context.Background(), nil, 2, nil)
	require.NoError(t, err)
	assert.Len(t, emails, 2)
}

func TestFetchRecentDatesParse(t *testing.T) {
	g := NewGateway()

	emails, err := g.FetchRecent(context.Background(), nil, 20, nil)
	require.NoError(t, err)
	for _, e := range emails {
		_, err := time.Parse(time.RFC1123Z, e.ProviderDate)
		assert.NoError(t, err, "provider date %q must be RFC 1123Z", e.ProviderDate)
	}
}

package mail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Terellreed1/smokers-club-sub000/pkg/config"
	pkgerrors "github.com/Terellreed1/smokers-club-sub000/pkg/errors"
	"github.com/Terellreed1/smokers-club-sub000/pkg/logger"
)

func TestNewClientValidates(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test"})

	_, err := NewClient(config.SendgridConfig{DefaultFrom: "noreply@smokersclub.example"}, logg)
	require.ErrorIs(t, err, errAPIKeyRequired)

	_, err = NewClient(config.SendgridConfig{APIKey: "SG.key"}, logg)
	require.ErrorIs(t, err, errFromRequired)

	_, err = NewClient(config.SendgridConfig{APIKey: "SG.key", DefaultFrom: "noreply@smokersclub.example"}, nil)
	require.ErrorIs(t, err, errMailLogger)

	client, err := NewClient(config.SendgridConfig{APIKey: "SG.key", DefaultFrom: "noreply@smokersclub.example"}, logg)
	require.NoError(t, err)
	require.NotNil(t, client)
}

func TestSendOnNilClientReturnsError(t *testing.T) {
	var client *Client

	err := client.Send(context.Background(), Message{
		ToAddress: "sales@smokersclub.example",
		Subject:   "hello",
	})
	require.Error(t, err)

	domainErr := pkgerrors.As(err)
	require.NotNil(t, domainErr)
	assert.Equal(t, pkgerrors.CodeDependency, domainErr.Code())
}

func TestSendValidatesMessage(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test"})
	client, err := NewClient(config.SendgridConfig{APIKey: "SG.key", DefaultFrom: "noreply@smokersclub.example"}, logg)
	require.NoError(t, err)

	err = client.Send(context.Background(), Message{Subject: "no recipient"})
	require.Error(t, err)

	err = client.Send(context.Background(), Message{ToAddress: "sales@smokersclub.example"})
	require.Error(t, err)
}

package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	s, err := ParseOrderStatus("out_for_delivery")
	require.NoError(t, err)
	require.Equal(t, StatusOutForDelivery, s)

	s, err = ParseOrderStatus("delivered")
	require.NoError(t, err)
	require.Equal(t, StatusDelivered, s)

	_, err = ParseOrderStatus("cooking")
	require.Error(t, err)

	_, err = ParseOrderStatus("")
	require.Error(t, err)
}

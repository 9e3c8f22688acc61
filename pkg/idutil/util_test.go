package idutil

import (
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
)

func Test_RedemptionCode(t *testing.T) {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	code := RedemptionCode(node)
	require.True(t, strings.HasPrefix(code, "SQ-"))
	require.Len(t, strings.Split(code, "-"), 3)

	another := RedemptionCode(node)
	require.NotEqual(t, code, another)
}

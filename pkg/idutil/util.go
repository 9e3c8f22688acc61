package idutil

import (
	"fmt"
	"strings"

	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/crypto"
	"github.com/bwmarrin/snowflake"
)

// RedemptionCode builds a human-readable voucher code. The snowflake part is
// timestamp-derived, so codes sort by issue time; the random suffix keeps them
// hard to guess.
func RedemptionCode(node *snowflake.Node) string {
	return fmt.Sprintf("SQ-%s-%s",
		strings.ToUpper(node.Generate().Base36()),
		crypto.GenerateRandomAlphabet(4),
	)
}

package util

import (
	"strconv"
)

func ItoHex(i int64) string {
	return strconv.FormatInt(i, 16)
}

package utils

import "strconv"

// StrToInt64 parses a decimal string, such as a path parameter, into an int64.
func StrToInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

package service

import "strconv"

// snowflakeToInt64 parses a Discord snowflake string into the int64
// form the data model stores.
func snowflakeToInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

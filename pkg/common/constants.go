package common

const (
	// RedisKeyLatestPrice is the key prefix for the materialized
	// latest-price index, one key per stock name.
	RedisKeyLatestPrice = "stock.latest_price."

	// AuthScheme is the token scheme expected in the Authorization header.
	AuthScheme = "Token"
)

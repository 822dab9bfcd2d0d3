package cache

import "errors"

// ErrCacheMiss is returned by helpers that treat an absent key as an error
// rather than a boolean miss.
var ErrCacheMiss = errors.New("cache miss")

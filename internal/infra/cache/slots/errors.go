package slots

import "errors"

var (
	// ErrCacheMiss значение в кэше отсутствует
	ErrCacheMiss = errors.New("cache miss")
	// ErrCacheUnavailable кэш недоступен
	ErrCacheUnavailable = errors.New("cache unavailable")
	// ErrEncode ошибка сериализации значения
	ErrEncode = errors.New("failed to encode cache value")
	// ErrDecode ошибка десериализации значения
	ErrDecode = errors.New("failed to decode cache value")
)

package errors

import "errors"

// ErrLockNotAcquired 分布式锁已被其他实例持有
var ErrLockNotAcquired = errors.New("锁已被占用")

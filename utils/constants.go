// File: utils/constants.go
package utils

import "time"

// PipelineCachePrefix is the prefix used for Redis pipeline response cache keys.
const PipelineCachePrefix = "pipeline:"

// PipelineCacheTTL is the time-to-live for cached pipeline responses.
const PipelineCacheTTL = 5 * time.Minute

// Package cache provides ExpiringCache, an in-memory string-keyed store whose
// entries expire a fixed TTL after they were written.
//
// Expiry is absolute: reads never extend an entry's lifetime. Expired entries are
// removed lazily when accessed and actively by Cleanup, which an optional
// background sweeper runs on an interval between Start and Stop. Time is read
// through an injectable Clock so expiry can be tested without sleeping.
package cache

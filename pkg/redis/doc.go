// Package redis connects to the Redis server backing the report cache, with
// startup retries and a health probe.
package redis

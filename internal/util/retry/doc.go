// Package retry provides exponential backoff retry logic for transient failures.
//
// [WithExponentialBackoff] retries an operation with configurable max
// attempts, initial delay, and maximum delay. Errors wrapped with [Fatal]
// stop the retry loop immediately. It is used for provider API calls that
// fail transiently, such as deletes racing a dependency teardown.
package retry

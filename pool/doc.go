// Package pool reuses initialized backend+cache bundles across invocations
// of a short-lived execution context, bounding both instance count and the
// cost of repeated engine initialization in serverless containers.
//
// Acquire pops an idle instance when one exists, constructs a new one while
// under the size bound, and otherwise waits for a release up to the
// configured timeout before failing with an exhaustion error. The bounded
// wait replaces the reference implementation's busy-wait recursion, which
// could recurse without bound under sustained exhaustion.
//
// Release clears the instance's cache - never its adapter handle - before
// the instance re-enters the idle list; a release into a full idle list
// drops and closes the instance instead of growing the pool.
package pool

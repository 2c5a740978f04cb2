// Package sink delivers accepted sign-up submissions to an external
// consumer. The form controller calls a Sink exactly once per accepted
// submission; what happens next (logging, writing to a file, posting to a
// backend) is up to the implementation.
package sink

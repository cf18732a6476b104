// Package writers turns merged calls into serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (row layout lives in output).
//   - Engine stays domain-only; Pipeline stays orchestration-only.
//   - A writer runs in its own goroutine and is fed through a channel.
package writers

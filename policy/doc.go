// Package policy gates scripts before they reach the shell.
//
// Rules match program names, the first word of every script line. A policy is
// attached to an executor or carried per call in the context.
package policy

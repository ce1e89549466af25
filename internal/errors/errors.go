// Package errors holds the sentinel errors shared across kr.
package errors

import "errors"

var (
	// ErrNoRepository is returned before anything is spawned when no
	// knowledge repository was given and KNOWLEDGE_REPO is unset.
	ErrNoRepository = errors.New("no knowledge repository specified: pass --repo or set KNOWLEDGE_REPO")

	ErrUnknownFormat      = errors.New("unrecognized post format")
	ErrNoPostPath         = errors.New("post path not given and not found in post header")
	ErrNoRemote           = errors.New("cannot submit without a remote")
	ErrUnrecognizedRemote = errors.New("remote is not a recognized git hosting URL")
	ErrGitOperationFailed = errors.New("git operation failed")
)
